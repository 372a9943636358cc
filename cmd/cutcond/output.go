package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ja7ad/cutcond/pkg/condition"
	"github.com/ja7ad/cutcond/pkg/history"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printResult(w io.Writer, toolID, label string, p condition.Params, r condition.Result, pretty bool) {
	if !pretty {
		fmt.Fprintf(w, "%s, %s, %s, %.1f, %.3f, %.2f, %.1f, %.1f, %.1f, %.3f, %.3f, %s\n",
			toolID, label, r.Operation, r.N, r.Hex, r.Kc, force(r), r.Pc, r.LocalPower, r.Mc, r.LocalTorque, r.La)
		return
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Tool\t%s\n", toolID)
	fmt.Fprintf(tw, "Operation\t%s (%s)\n", label, r.Operation)
	fmt.Fprintf(tw, "Inputs\tVc=%g m/min  D=%g mm  fn=%g mm/rev  ap=%g mm  kr=%s  Y0=%g %%  kc1=%g  m0=%g\n",
		p.Vc, p.D, p.Fn, r.Ap, r.Kr, r.Y0, r.Kc1, r.M0)
	fmt.Fprintln(tw, "----\t----")
	fmt.Fprintf(tw, "n (rpm)\t%.1f\n", r.N)
	fmt.Fprintf(tw, "hex (mm)\t%.3f\n", r.Hex)
	fmt.Fprintf(tw, "kc (N/mm²)\t%.1f\n", r.Kc)
	if r.Operation == condition.Drilling {
		fmt.Fprintf(tw, "Fa (N)\t%.1f\n", r.Fa)
	} else {
		fmt.Fprintf(tw, "Fc (N)\t%.1f\n", r.Fc)
		fmt.Fprintf(tw, "La (mm)\t%s\t(limit %.2f mm)\n", r.La, r.EngagementLimit)
	}
	fmt.Fprintf(tw, "Pc (kW)\t%.2f\t(available %.2f kW, %.0f%%)\n", r.Pc, r.LocalPower, 100*r.PowerUsage)
	fmt.Fprintf(tw, "Mc (Nm)\t%.2f\t(available %.2f Nm, %.0f%%)\n", r.Mc, r.LocalTorque, 100*r.TorqueUsage)
	if b := r.Capacity; b.InRange {
		fmt.Fprintf(tw, "Capacity\tinterpolated between n=%g and n=%g (alpha=%.3f)\n", b.Lower.N, b.Upper.N, b.Alpha)
	} else {
		fmt.Fprintln(tw, "Capacity\toutside sampled range, machine maxima used")
	}
	_ = tw.Flush()
}

func force(r condition.Result) float64 {
	if r.Operation == condition.Drilling {
		return r.Fa
	}
	return r.Fc
}

func printWarnings(w io.Writer, r condition.Result) {
	ws := history.Warnings(r)
	if len(ws) == 0 {
		fmt.Fprintln(w, "\nAll parameters are within the local limits.")
		return
	}
	fmt.Fprintln(w)
	for _, msg := range ws {
		fmt.Fprintf(w, "WARNING: %s\n", msg)
	}
}

// export writes the session history to every requested file.
func (o *opts) export(log *history.Log) error {
	entries := log.Entries()
	targets := []struct {
		path  string
		write func(io.Writer, []history.Entry) error
	}{
		{o.csvPath, history.WriteCSV},
		{o.jsonPath, history.WriteJSON},
		{o.htmlPath, history.WriteHTML},
	}
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		if err := writeFile(t.path, func(w io.Writer) error { return t.write(w, entries) }); err != nil {
			return err
		}
		slog.Info("history written", "path", t.path, "entries", len(entries))
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
