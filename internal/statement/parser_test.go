package statement

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/the-profit-must-flow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample export. The first line is a placeholder that gets discarded.
const sampleExport = `Time,Deal,Symbol,Type,Direction,Volume,Price,Order,Commission,Fee,Swap,Profit,Balance,Comment
2024.01.02 09:00:00,1,,balance,,,,,0,0,0,"1,000",1000,Deposit
2024.01.03 10:15:00,2,EURUSD,buy,in,0.10,1.0950,11,-0.70,0,0,0,999.30,
2024.01.03 14:40:00,3,EURUSD,sell,out,0.10,1.0975,12,-0.70,0,0,25.00,1023.60,tp 1.0975
2024.02.01 08:00:00,4,,balance,,,,,0,0,0,-1 200,-176.40,Withdrawal
`

func TestParse(t *testing.T) {
	rows, err := NewParser().Parse(context.Background(), strings.NewReader(sampleExport))
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, "2024.01.02 09:00:00", rows[0].Time)
	assert.Equal(t, "1,000", rows[0].Profit)
	assert.Equal(t, "Deposit", rows[0].Comment)
	assert.Equal(t, "EURUSD", rows[1].Symbol)
	assert.Equal(t, "", rows[1].Comment)
	assert.Equal(t, "-1 200", rows[3].Profit)
	assert.True(t, rows[3].IsWithdrawal())
}

func TestParse_DiscardsFirstRowEvenWhenItIsData(t *testing.T) {
	input := "2024.01.01,9,,balance,,,,,0,0,0,500,500,deposit\n" +
		"2024.01.02,10,,balance,,,,,0,0,0,700,1200,deposit\n"

	rows, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "10", rows[0].Deal)
}

func TestParse_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + sampleExport

	rows, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		errMsg  string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: common.ErrEmptyFile,
		},
		{
			name:    "too many columns",
			input:   "header\n" + strings.Repeat("x,", 14) + "x\n",
			wantErr: common.ErrColumnCount,
			errMsg:  "line 2: unexpected number of columns: expected at most 14, got 15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := NewParser().Parse(context.Background(), strings.NewReader(tt.input))

			require.Error(t, err)
			assert.Nil(t, rows)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestParse_PadsShortRows(t *testing.T) {
	input := "header\n" +
		"2024.01.02 09:00:00,1,,balance,,,,,0,0,0,1000,1000,Deposit\n" +
		"2024.01.03 14:40:00,3,EURUSD,sell,out,0.10,1.0975,12,-0.70,0,0,25.00,1025.00\n" +
		"2024.01.04 10:00:00,4\n"

	rows, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "25.00", rows[1].Profit)
	assert.Equal(t, "1025.00", rows[1].Balance)
	assert.Equal(t, "", rows[1].Comment)
	assert.False(t, rows[1].IsDeposit())
	assert.False(t, rows[1].IsWithdrawal())
	assert.Equal(t, "4", rows[2].Deal)
	assert.Len(t, rows[2].Values(), 14)
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := NewParser().Parse(context.Background(), strings.NewReader("only a placeholder\n"))

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().Parse(ctx, strings.NewReader(sampleExport))
	assert.ErrorIs(t, err, context.Canceled)
}
