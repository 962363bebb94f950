package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mad-life/pkg/rule"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [rule...]",
		Short: "List rule presets, or print the canonical form of the given rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range rule.Names() {
					fmt.Fprintf(out, "%-16s %s\n", name, rule.Presets[name])
				}
				return nil
			}
			for _, arg := range args {
				r, err := rule.Parse(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}
}
