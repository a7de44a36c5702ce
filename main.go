package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/imagevault/imagevault/cmd"
	"github.com/imagevault/imagevault/internal/conf"
	"github.com/imagevault/imagevault/internal/logging"
	"github.com/imagevault/imagevault/internal/runtime"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Route logs to the rotated main log file, keeping stdout for command
	// output. Without a log file, structured logs go to stdout.
	if settings.Main.Log.Enabled {
		level := slog.LevelInfo
		if settings.Debug {
			level = slog.LevelDebug
		}
		fileLogger, closeLogger, err := logging.NewFileLogger(
			settings.Main.Log.Path, settings.Main.Name, &settings.Main.Log, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer closeLogger()
		slog.SetDefault(fileLogger)
	} else {
		logging.Init()
	}

	ctx := runtime.NewContext(settings)

	rootCmd := cmd.RootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
