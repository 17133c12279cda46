package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/the-profit-must-flow/internal/cli"
	"github.com/Veraticus/the-profit-must-flow/internal/common"
	"github.com/Veraticus/the-profit-must-flow/internal/config"
	"github.com/Veraticus/the-profit-must-flow/internal/profit"
	"github.com/Veraticus/the-profit-must-flow/internal/statement"
	"github.com/spf13/cobra"
)

const defaultPreviewRows = 20

// errReported marks failures that the command already rendered to its output.
var errReported = errors.New("already reported")

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <file>",
		Short: "Calculate profit from an export on disk",
		Long: `Parse a brokerage transaction export and print the calculated profit.

The first row of the file is treated as a placeholder and skipped. Columns must
be, in order: Time, Deal, Symbol, Type, Direction, Volume, Price, Order,
Commission, Fee, Swap, Profit, Balance, Comment.

Examples:
  profit calc ~/Downloads/report.csv
  profit calc report.csv --show-data
  profit calc report.csv --json`,
		Args: cobra.ExactArgs(1),
		RunE: runCalc,
	}

	cmd.Flags().Bool("json", false, "print the result as JSON")
	cmd.Flags().Bool("show-data", false, "print the parsed rows before the result")
	cmd.Flags().Int("rows", defaultPreviewRows, "maximum rows shown with --show-data (0 for all)")

	return cmd
}

func runCalc(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	showData, _ := cmd.Flags().GetBool("show-data")
	limit, _ := cmd.Flags().GetInt("rows")

	path := config.ExpandPath(args[0])
	f, err := os.Open(path)
	if err != nil {
		return common.NewProcessingError(err)
	}
	defer f.Close()

	rows, err := statement.NewParser().Parse(cmd.Context(), f)
	if err != nil {
		return common.NewProcessingError(err)
	}

	result := profit.Calculate(rows)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		if showData {
			fmt.Fprintln(out, cli.FormatTitle("Original data"))
			fmt.Fprintln(out, cli.RenderTable(rows, limit))
			if limit > 0 && len(rows) > limit {
				fmt.Fprintln(out, cli.FormatInfo("Use --rows 0 to show every row"))
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, cli.RenderResult(result))
	}

	if !result.OK() {
		slog.Debug("Calculation failed", "file", path, "error", result.Err)
		return fmt.Errorf("%w: %w", errReported, result.Err)
	}
	return nil
}
