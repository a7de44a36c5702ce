package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imagevault/imagevault/cmd/attach"
	configcmd "github.com/imagevault/imagevault/cmd/config"
	"github.com/imagevault/imagevault/cmd/remove"
	"github.com/imagevault/imagevault/cmd/urls"
	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/runtime"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *runtime.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imagevault",
		Short: "ImageVault CLI",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, ctx.Settings)

	configCmd := configcmd.Command(ctx)

	subcommands := []*cobra.Command{
		attach.Command(ctx),
		remove.Command(ctx),
		urls.Command(ctx),
		configCmd,
	}

	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := conf.ValidateSettings(ctx.Settings); err != nil {
			return err
		}

		// The config command only prints settings and needs no storage.
		if cmd.Name() == configCmd.Name() {
			return nil
		}
		return ctx.Init()
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return ctx.Close()
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Storage.Format, "format", viper.GetString("storage.format"), "Variant encoding format: webp, jpeg, png or original")
	rootCmd.PersistentFlags().IntVar(&settings.Storage.Quality, "quality", viper.GetInt("storage.quality"), "Lossy encoding quality between 1 and 100")

	return viper.BindPFlags(rootCmd.PersistentFlags())
}
