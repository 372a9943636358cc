package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ja7ad/cutcond/pkg/condition"
)

func newToolsCmd(o *opts) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List catalogued inserts and their recommended values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := o.loadCatalog()
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "TOOL\tOPERATION\tBRANCH\tMATERIAL\tVc (m/min)\tfn (mm/rev)\tap (mm)\tNOTE")
			fmt.Fprintln(tw, "----\t---------\t------\t--------\t----------\t-----------\t-------\t----")
			for _, id := range cat.IDs() {
				t, err := cat.Lookup(id)
				if err != nil {
					return err
				}
				ap, note := "-", ""
				if t.Ap != nil {
					ap = fmt.Sprintf("%g [%g-%g]", t.Ap.Rec, t.Ap.Min, t.Ap.Max)
				}
				if t.UsesInsertWidth() {
					ap = fmt.Sprintf("%g", t.Override.InsertWidthMM)
					note = "insert width used as ap"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g [%g-%g]\t%g [%g-%g]\t%s\t%s\n",
					id, t.Operation, condition.Classify(t.Operation), t.Material,
					t.Vc.Rec, t.Vc.Min, t.Vc.Max, t.Fn.Rec, t.Fn.Min, t.Fn.Max, ap, note)
			}
			return tw.Flush()
		},
	}
}
