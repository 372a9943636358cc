package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ja7ad/cutcond/pkg/condition"
	"github.com/ja7ad/cutcond/pkg/cutting"
	"github.com/ja7ad/cutcond/pkg/history"
	"github.com/ja7ad/cutcond/pkg/types"
)

// paramFlags are the per-evaluation overrides of the tool's recommended values.
type paramFlags struct {
	vc, fn, d, ap, hex, kr, m0, y0, kc1 float64
}

func (f *paramFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.vc, "vc", 0, "cutting speed Vc in m/min (default: recommended)")
	fs.Float64Var(&f.fn, "fn", 0, "feed per revolution fn in mm/rev (default: recommended)")
	fs.Float64Var(&f.d, "d", 0, "diameter D in mm (default: catalogue or 50)")
	fs.Float64Var(&f.ap, "ap", 0, "depth of cut ap in mm (default: recommended)")
	fs.Float64Var(&f.hex, "hex", 0, "chip thickness hex in mm, boring only (default: recommended)")
	fs.Float64Var(&f.kr, "kr", 0, "entering angle kr in degrees, turning only; drilling and boring use 90 (default: catalogue or 95)")
	fs.Float64Var(&f.m0, "m0", 0, "chip-thickness exponent m0, turning only; drilling and boring use 0.25 (default: 0.25)")
	fs.Float64Var(&f.y0, "y0", 0, "correction percentage Y0, used only when the catalogue has none and no override applies")
	fs.Float64Var(&f.kc1, "kc1", 0, "specific cutting force kc1 in N/mm², turning only; drilling and boring use 400 (default: catalogue or 400)")
}

// apply overwrites p with every flag the user set explicitly.
func (f *paramFlags) apply(cmd *cobra.Command, p condition.Params) condition.Params {
	set := func(name string, dst *float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("vc", &p.Vc, f.vc)
	set("fn", &p.Fn, f.fn)
	set("d", &p.D, f.d)
	set("ap", &p.Ap, f.ap)
	set("hex", &p.Hex, f.hex)
	set("m0", &p.M0, f.m0)
	set("y0", &p.Y0, f.y0)
	set("kc1", &p.Kc1, f.kc1)
	if cmd.Flags().Changed("kr") {
		p.Kr = types.Degrees(f.kr)
	}
	return p
}

// ignored names the explicitly set flags whose value the operation's branch
// replaced.
func (f *paramFlags) ignored(cmd *cobra.Command, r condition.Result) []string {
	var out []string
	check := func(name string, set, used float64) {
		if cmd.Flags().Changed(name) && set != used {
			out = append(out, name)
		}
	}
	check("kr", f.kr, float64(r.Kr))
	check("m0", f.m0, r.M0)
	check("y0", f.y0, r.Y0)
	check("kc1", f.kc1, r.Kc1)
	return out
}

func newCalcCmd(o *opts) *cobra.Command {
	var (
		toolID string
		pf     paramFlags
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate the cutting conditions of one tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			cat, err := o.loadCatalog()
			if err != nil {
				return err
			}
			tool, err := o.lookup(cat, toolID)
			if err != nil {
				return err
			}
			m, err := o.loadMachine()
			if err != nil {
				return err
			}

			p := pf.apply(cmd, condition.Recommended(tool))
			for _, w := range condition.RangeWarnings(p, tool) {
				slog.Warn("parameter outside recommended range", "tool", tool.ID, "detail", w)
			}

			r, err := condition.Evaluate(p, tool, m, o.limits())
			if err != nil {
				if errors.Is(err, cutting.ErrDomain) {
					return fmt.Errorf("invalid input: %w", err)
				}
				return err
			}

			for _, name := range pf.ignored(cmd, r) {
				slog.Warn("flag overridden by the operation's rules", "flag", name, "tool", tool.ID, "operation", r.Operation.String())
			}

			log := history.NewLog()
			log.Append(tool.ID, tool.Operation, p, r)

			out := cmd.OutOrStdout()
			printResult(out, tool.ID, tool.Operation, p, r, o.pretty)
			printWarnings(out, r)
			return o.export(log)
		},
	}

	cmd.Flags().StringVarP(&toolID, "tool", "t", "", "insert id from the catalogue")
	_ = cmd.MarkFlagRequired("tool")
	pf.register(cmd)
	addOutputFlags(cmd, o)
	return cmd
}
