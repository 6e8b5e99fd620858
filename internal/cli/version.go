package cli

import (
	"github.com/spf13/cobra"

	"github.com/MacroPower/xamlscale/internal/version"
)

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the xamlscale CLI",
		RunE: func(cc *cobra.Command, _ []string) error {
			cc.Println(version.String())

			return nil
		},
	}
}
