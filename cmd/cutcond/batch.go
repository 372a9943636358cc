package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ja7ad/cutcond/pkg/catalog"
	"github.com/ja7ad/cutcond/pkg/condition"
	"github.com/ja7ad/cutcond/pkg/history"
	"github.com/ja7ad/cutcond/pkg/types"
)

// batchFile is the jobs document. YAML is a superset of JSON, so both parse.
type batchFile struct {
	Jobs []batchJob `yaml:"jobs"`
}

// batchJob names a tool and overrides any of its recommended values.
type batchJob struct {
	ID   string   `yaml:"id"`
	Tool string   `yaml:"tool"`
	Vc   *float64 `yaml:"vc"`
	Fn   *float64 `yaml:"fn"`
	D    *float64 `yaml:"d"`
	Ap   *float64 `yaml:"ap"`
	Hex  *float64 `yaml:"hex"`
	Kr   *float64 `yaml:"kr"`
	M0   *float64 `yaml:"m0"`
	Y0   *float64 `yaml:"y0"`
	Kc1  *float64 `yaml:"kc1"`
}

func (j batchJob) params(tool catalog.Tool) condition.Params {
	p := condition.Recommended(tool)
	for _, o := range []struct {
		src *float64
		dst *float64
	}{
		{j.Vc, &p.Vc}, {j.Fn, &p.Fn}, {j.D, &p.D}, {j.Ap, &p.Ap}, {j.Hex, &p.Hex},
		{j.M0, &p.M0}, {j.Y0, &p.Y0}, {j.Kc1, &p.Kc1},
	} {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	if j.Kr != nil {
		p.Kr = types.Degrees(*j.Kr)
	}
	return p
}

func readBatch(path string, cat *catalog.Catalog) ([]condition.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var bf batchFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&bf); err != nil {
		return nil, fmt.Errorf("batch: decode %s: %w", path, err)
	}
	if len(bf.Jobs) == 0 {
		return nil, fmt.Errorf("batch: %s has no jobs", path)
	}

	jobs := make([]condition.Job, 0, len(bf.Jobs))
	for i, bj := range bf.Jobs {
		tool, err := cat.Lookup(bj.Tool)
		if err != nil {
			return nil, fmt.Errorf("batch: job %d: %w", i+1, err)
		}
		id := bj.ID
		if id == "" {
			id = fmt.Sprintf("job-%d", i+1)
		}
		jobs = append(jobs, condition.Job{ID: id, Tool: tool, Params: bj.params(tool)})
	}
	return jobs, nil
}

func newBatchCmd(o *opts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate a list of jobs (YAML or JSON) in parallel",
		Long: `Evaluate every job of FILE concurrently. FILE holds a "jobs" list; each job
names a catalogue tool and may override vc, fn, d, ap, hex, kr, m0, y0, kc1.

  jobs:
    - id: roughing
      tool: "CNMG 12 04 08-PM 4325"
      vc: 250
      ap: 4
    - tool: "R840-1000-30-A0A 1220"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			cat, err := o.loadCatalog()
			if err != nil {
				return err
			}
			m, err := o.loadMachine()
			if err != nil {
				return err
			}
			jobs, err := readBatch(args[0], cat)
			if err != nil {
				return err
			}

			outcomes, err := condition.EvaluateAll(cmd.Context(), jobs, m, o.limits(), o.workers)
			if err != nil {
				return err
			}

			log := history.NewLog()
			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "JOB\tTOOL\tOP\tn (rpm)\tF (N)\tPc (kW)\tMc (Nm)\tLa (mm)\tSTATUS")
			fmt.Fprintln(tw, "---\t----\t--\t-------\t-----\t-------\t-------\t-------\t------")

			var failed int
			for _, oc := range outcomes {
				if oc.Err != nil {
					failed++
					slog.Warn("job rejected", "job", oc.Job.ID, "tool", oc.Job.Tool.ID, "err", oc.Err)
					fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t-\t-\terror: %v\n", oc.Job.ID, oc.Job.Tool.ID, oc.Err)
					continue
				}
				r := oc.Result
				log.Append(oc.Job.Tool.ID, oc.Job.Tool.Operation, oc.Job.Params, r)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.1f\t%.2f\t%.2f\t%s\t%s\n",
					oc.Job.ID, oc.Job.Tool.ID, r.Operation, r.N, force(r), r.Pc, r.Mc, r.La, status(r))
			}
			_ = tw.Flush()

			slog.Info("batch done", "jobs", len(jobs), "failed", failed, "recorded", log.Len())
			return o.export(log)
		},
	}
	addOutputFlags(cmd, o)
	cmd.Flags().IntVarP(&o.workers, "workers", "w", o.workers, "number of concurrent evaluations")
	return cmd
}

func status(r condition.Result) string {
	switch {
	case r.Flags.Exceeded():
		return "OVER LIMIT"
	case r.Flags.PowerNearLimit || r.Flags.TorqueNearLimit:
		return "near limit"
	default:
		return "ok"
	}
}
