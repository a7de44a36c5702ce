package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/runtime"
)

// Command creates the config command for printing the effective settings.
func Command(ctx *runtime.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := conf.DumpYAML(ctx.Settings)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}
