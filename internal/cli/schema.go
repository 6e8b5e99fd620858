package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/xamlscale/pkg/config"
)

// NewSchemaCmd returns the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		RunE: func(cc *cobra.Command, _ []string) error {
			s, err := config.Schema()
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}

			fmt.Fprintln(cc.OutOrStdout(), string(s))

			return nil
		},
	}
}
