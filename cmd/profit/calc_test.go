package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/the-profit-must-flow/internal/common"
	"github.com/Veraticus/the-profit-must-flow/internal/profit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExport = `placeholder,,,,,,,,,,,,,
2024.01.02 09:00:00,1,,balance,,,,,0,0,0,"1,000",1000,Deposit
2024.01.03 14:40:00,3,EURUSD,sell,out,0.10,1.0975,12,-0.70,0,0,25.00,1024.30,tp 1.0975
2024.02.01 08:00:00,4,,balance,,,,,0,0,0,-1200,-175.70,Withdrawal
`

func writeExport(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCalc(t *testing.T) {
	out, err := runCommand(t, "calc", writeExport(t, testExport))
	require.NoError(t, err)

	assert.Contains(t, out, "Calculation successful")
	assert.Contains(t, out, "Initial Deposit:")
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "20.00%")
}

func TestCalc_ShowData(t *testing.T) {
	out, err := runCommand(t, "calc", writeExport(t, testExport), "--show-data", "--rows", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Original data")
	assert.Contains(t, out, "Deposit")
	assert.Contains(t, out, "… 2 more rows")
	assert.Contains(t, out, "Use --rows 0 to show every row")
}

func TestCalc_JSON(t *testing.T) {
	out, err := runCommand(t, "calc", writeExport(t, testExport), "--json")
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]float64{
		"initial_deposit":   1000,
		"total_withdrawal":  1200,
		"profit":            200,
		"profit_percentage": 20,
	}, got)
}

func TestCalc_NoMatches(t *testing.T) {
	export := "placeholder,,,,,,,,,,,,,\n2024.01.03,3,EURUSD,sell,out,0.10,1.0975,12,-0.70,0,0,25.00,1024.30,tp\n"

	out, err := runCommand(t, "calc", writeExport(t, export), "--json")

	require.ErrorIs(t, err, profit.ErrNoDepositsOrWithdrawals)
	assert.JSONEq(t, `{"error": "No deposits or withdrawals found in the data"}`, out)
}

func TestCalc_IngestionErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := runCommand(t, "calc", filepath.Join(t.TempDir(), "missing.csv"))

		require.Error(t, err)
		assert.True(t, common.IsUserError(err))
		assert.Contains(t, err.Error(), "Error processing file: ")
	})

	t.Run("bad columns", func(t *testing.T) {
		_, err := runCommand(t, "calc", writeExport(t, "header\n"+strings.Repeat("1,", 14)+"1\n"))

		require.ErrorIs(t, err, common.ErrColumnCount)
		assert.Contains(t, err.Error(), "Error processing file: line 2")
	})
}

func TestCalc_RequiresFile(t *testing.T) {
	_, err := runCommand(t, "calc")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "profit version dev")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runCommand(t, "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestCalc_FailurePrintedOnce(t *testing.T) {
	export := "placeholder,,,,,,,,,,,,,\n2024.01.03,3,EURUSD,sell,out,0.10,1.0975,12,-0.70,0,0,25.00,1024.30,tp\n"

	out, err := runCommand(t, "calc", writeExport(t, export))
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(out, "No deposits or withdrawals found in the data"))

	var stderr bytes.Buffer
	reportError(&stderr, err)
	assert.Empty(t, stderr.String())
}

func TestReportError(t *testing.T) {
	t.Run("user error", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, common.NewProcessingError(common.ErrEmptyFile))

		assert.Contains(t, buf.String(), "Error processing file: file contains no rows")
		assert.NotContains(t, buf.String(), "--help")
	})

	t.Run("other error", func(t *testing.T) {
		_, err := runCommand(t, "calc")
		require.Error(t, err)

		var buf bytes.Buffer
		reportError(&buf, err)

		assert.Contains(t, buf.String(), "accepts 1 arg(s), received 0")
		assert.Contains(t, buf.String(), "Run 'profit --help' for usage")
	})
}
