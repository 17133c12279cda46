package model

import (
	"math"
	"strconv"
	"strings"
)

// Columns is the fixed column order of a brokerage export.
var Columns = []string{
	"Time", "Deal", "Symbol", "Type", "Direction", "Volume", "Price",
	"Order", "Commission", "Fee", "Swap", "Profit", "Balance", "Comment",
}

// ColumnCount is the number of fields every exported row carries.
const ColumnCount = 14

const (
	depositKeyword    = "deposit"
	withdrawalKeyword = "withdrawal"
)

// TransactionRow represents a single line of a brokerage transaction export.
// All fields are kept as uploaded; numeric interpretation happens on demand.
type TransactionRow struct {
	Time       string
	Deal       string
	Symbol     string
	Type       string
	Direction  string
	Volume     string
	Price      string
	Order      string
	Commission string
	Fee        string
	Swap       string
	Profit     string // May contain thousands separators or spaces
	Balance    string
	Comment    string
}

// TransactionSet is an ordered sequence of rows as uploaded.
type TransactionSet []TransactionRow

// RowFromFields builds a row from fields in Columns order.
// The caller guarantees len(fields) == ColumnCount.
func RowFromFields(fields []string) TransactionRow {
	return TransactionRow{
		Time:       fields[0],
		Deal:       fields[1],
		Symbol:     fields[2],
		Type:       fields[3],
		Direction:  fields[4],
		Volume:     fields[5],
		Price:      fields[6],
		Order:      fields[7],
		Commission: fields[8],
		Fee:        fields[9],
		Swap:       fields[10],
		Profit:     fields[11],
		Balance:    fields[12],
		Comment:    fields[13],
	}
}

// Values returns the row's fields in Columns order.
func (r TransactionRow) Values() []string {
	return []string{
		r.Time, r.Deal, r.Symbol, r.Type, r.Direction, r.Volume, r.Price,
		r.Order, r.Commission, r.Fee, r.Swap, r.Profit, r.Balance, r.Comment,
	}
}

// ProfitAmount returns the cleaned numeric Profit, or false if it has no value.
func (r TransactionRow) ProfitAmount() (float64, bool) {
	return ParseAmount(r.Profit)
}

// IsDeposit reports whether the comment mentions a deposit.
func (r TransactionRow) IsDeposit() bool {
	return containsFold(r.Comment, depositKeyword)
}

// IsWithdrawal reports whether the comment mentions a withdrawal.
// A row may be both a deposit and a withdrawal.
func (r TransactionRow) IsWithdrawal() bool {
	return containsFold(r.Comment, withdrawalKeyword)
}

// Deposits returns the rows classified as deposits.
func (s TransactionSet) Deposits() TransactionSet {
	return s.filter(TransactionRow.IsDeposit)
}

// Withdrawals returns the rows classified as withdrawals.
func (s TransactionSet) Withdrawals() TransactionSet {
	return s.filter(TransactionRow.IsWithdrawal)
}

func (s TransactionSet) filter(keep func(TransactionRow) bool) TransactionSet {
	out := make(TransactionSet, 0, len(s))
	for _, row := range s {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// ParseAmount strips spaces and commas from s and parses what remains.
// Empty, malformed, and non-finite values report false.
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.NewReplacer(" ", "", ",", "").Replace(s)
	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
