package internal

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	rootVerbose bool
	rootQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "recipe",
	Short: "recipe builds native library packages from recipe files",
	Long: `recipe configures, builds, tests, optionally benchmarks and packages a
native library described by a <name>_recipe.gox file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logger())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "Only log warnings and errors, hide tool output")
	addSessionFlags(rootCmd)
}

func logger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()})
	return slog.New(handler)
}

func logLevel() slog.Level {
	switch {
	case rootVerbose:
		return slog.LevelDebug
	case rootQuiet:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(exitCode(err))
	}
}
