package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/the-profit-must-flow/internal/cli"
	"github.com/Veraticus/the-profit-must-flow/internal/common"
	"github.com/Veraticus/the-profit-must-flow/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profit",
		Short: "📊 Brokerage export profit calculator",
		Long: `the-profit-must-flow: reads a brokerage transaction export (CSV), finds the
deposit and withdrawal rows, and reports the initial deposit, total withdrawals,
profit, and profit percentage.

Run "profit serve" for the upload form or "profit calc <file>" in the terminal.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/profit/config.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(calcCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	// Set up signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless the command already rendered it. Errors
// without a user-facing message get a pointer to the usage text.
func reportError(w io.Writer, err error) {
	if errors.Is(err, errReported) {
		return
	}

	fmt.Fprintln(w, cli.FormatError(err.Error()))
	if !common.IsUserError(err) {
		fmt.Fprintln(w, cli.FormatInfo("Run 'profit --help' for usage"))
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		for _, dir := range config.SearchPaths() {
			viper.AddConfigPath(dir)
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("Configuration loaded", "file", viper.ConfigFileUsed())
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "profit version %s\n", version)
		},
	}
}
