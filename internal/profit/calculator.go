// Package profit derives deposit, withdrawal and profit figures from a
// brokerage transaction export.
package profit

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Veraticus/the-profit-must-flow/internal/model"
)

var (
	// ErrNoDepositsOrWithdrawals is returned when the export lacks either kind of row.
	ErrNoDepositsOrWithdrawals = errors.New("No deposits or withdrawals found in the data") //nolint:stylecheck // user-facing message

	// ErrAmountOverflow is returned when a total exceeds the float64 range.
	ErrAmountOverflow = errors.New("amounts too large to total")
)

// Summary holds the figures of a successful calculation.
type Summary struct {
	InitialDeposit   float64 `json:"initial_deposit"`
	TotalWithdrawal  float64 `json:"total_withdrawal"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
	DepositCount     int     `json:"-"`
	WithdrawalCount  int     `json:"-"`
}

// Result is either a Summary or an error, never both.
type Result struct {
	Summary *Summary
	Err     error
}

// OK reports whether the calculation succeeded.
func (r Result) OK() bool {
	return r.Err == nil && r.Summary != nil
}

// Message returns the failure message, or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// MarshalJSON encodes the success figures or {"error": message}.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK() {
		msg := r.Message()
		if msg == "" {
			msg = "empty result"
		}
		return json.Marshal(map[string]string{"error": msg})
	}
	return json.Marshal(r.Summary)
}

func failed(err error) Result {
	return Result{Err: err}
}

// Calculate computes the profit summary for rows. It never panics; any
// unexpected failure is reported through the returned Result.
func Calculate(rows model.TransactionSet) Result {
	return calculate(rows, model.TransactionRow.ProfitAmount)
}

func calculate(rows model.TransactionSet, amountOf func(model.TransactionRow) (float64, bool)) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = failed(fmt.Errorf("%v", rec))
		}
	}()

	deposits := rows.Deposits()
	withdrawals := rows.Withdrawals()

	if len(deposits) == 0 || len(withdrawals) == 0 {
		return failed(ErrNoDepositsOrWithdrawals)
	}

	var initialDeposit float64
	for _, row := range deposits {
		if amount, ok := amountOf(row); ok {
			initialDeposit += amount
		}
	}

	var totalWithdrawal float64
	for _, row := range withdrawals {
		if amount, ok := amountOf(row); ok {
			totalWithdrawal += math.Abs(amount)
		}
	}

	// Withdrawals count as absolute values while deposits keep their sign.
	profit := totalWithdrawal - initialDeposit

	percentage := 0.0
	if initialDeposit != 0 {
		percentage = profit / math.Abs(initialDeposit) * 100
	}

	if !finite(initialDeposit, totalWithdrawal, profit, percentage) {
		return failed(ErrAmountOverflow)
	}

	return Result{Summary: &Summary{
		InitialDeposit:   initialDeposit,
		TotalWithdrawal:  totalWithdrawal,
		Profit:           profit,
		ProfitPercentage: percentage,
		DepositCount:     len(deposits),
		WithdrawalCount:  len(withdrawals),
	}}
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Figure is one labelled value of a Summary as displayed to users.
type Figure struct {
	Label string
	Value float64
	Unit  string
}

// Formatted renders the value with two decimals followed by its unit.
func (f Figure) Formatted() string {
	return strconv.FormatFloat(f.Value, 'f', 2, 64) + f.Unit
}

// Figures returns the four labelled result values in display order.
func (s Summary) Figures() []Figure {
	return []Figure{
		{Label: "Initial Deposit", Value: s.InitialDeposit},
		{Label: "Total Withdrawal", Value: s.TotalWithdrawal},
		{Label: "Profit", Value: s.Profit},
		{Label: "Profit Percentage", Value: s.ProfitPercentage, Unit: "%"},
	}
}
