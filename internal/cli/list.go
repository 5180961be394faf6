package cli

import (
	"github.com/spf13/cobra"

	modelreg "github.com/albertocavalcante/go-modelreg"
)

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list [root]",
		Aliases: []string{"ls"},
		Short:   "List the models of a valid registry",
		Long:    "Validate the registry, then print one row per model with its current version and release count.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, func(rep *reporter, report *modelreg.Report) error {
				return rep.table(report)
			})
		},
	}
}
