package cli

import (
	"github.com/spf13/cobra"

	modelreg "github.com/albertocavalcante/go-modelreg"
)

func newValidateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [root]",
		Short: "Validate the registry rooted at root (default: current directory)",
		Example: `  modelreg validate
  modelreg validate ./registry --all
  modelreg validate --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, func(rep *reporter, report *modelreg.Report) error {
				return rep.success(report)
			})
		},
	}
}
