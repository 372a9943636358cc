package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ja7ad/cutcond/pkg/capacity"
)

func newMachineCmd(o *opts) *cobra.Command {
	var n float64

	cmd := &cobra.Command{
		Use:   "machine",
		Short: "Show the machine capacity curve and the capacity available at a speed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			m, err := o.loadMachine()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "n (rpm)\tPower (kW)\tTorque (Nm)")
			fmt.Fprintln(tw, "-------\t----------\t-----------")
			for _, p := range m.Table.Points() {
				fmt.Fprintf(tw, "%g\t%.2f\t%.2f\n", p.N, p.Power, p.Torque)
			}
			_ = tw.Flush()
			fmt.Fprintf(out, "\nGlobal maxima: %.2f kW, %.2f Nm\n", m.MaxPower, m.MaxTorque)

			if !cmd.Flags().Changed("n") {
				return nil
			}
			power, torque := capacity.Local(n, m.Table, m.MaxPower, m.MaxTorque)
			fmt.Fprintf(out, "At n=%g rpm: %.2f kW, %.2f Nm\n", n, power, torque)
			if b := m.Table.Bracket(n); b.InRange {
				fmt.Fprintf(out, "  alpha = (%g - %g) / (%g - %g) = %.3f\n", n, b.Lower.N, b.Upper.N, b.Lower.N, b.Alpha)
				fmt.Fprintf(out, "  P = %.2f + %.3f·(%.2f - %.2f)\n", b.Lower.Power, b.Alpha, b.Upper.Power, b.Lower.Power)
				fmt.Fprintf(out, "  T = %.2f + %.3f·(%.2f - %.2f)\n", b.Lower.Torque, b.Alpha, b.Upper.Torque, b.Lower.Torque)
			} else {
				fmt.Fprintln(out, "  outside the sampled range, maxima used")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&n, "n", 0, "rotation speed in rpm")
	return cmd
}
