package web

import (
	"html/template"

	"github.com/Veraticus/the-profit-must-flow/internal/model"
	"github.com/Veraticus/the-profit-must-flow/internal/profit"
)

const (
	pageTitle      = "Profit Calculation from CSV"
	pageSubtitle   = "Upload your CSV file to calculate the profit"
	uploadPrompt   = "Please upload a CSV file"
	successMessage = "Calculation successful"
)

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

type pageView struct {
	Title    string
	Subtitle string
	Info     string
	Error    string
	Success  string
	Filename string
	Columns  []string
	Rows     [][]string
	Figures  []profit.Figure
}

func newPageView() *pageView {
	return &pageView{
		Title:    pageTitle,
		Subtitle: pageSubtitle,
		Info:     uploadPrompt,
	}
}

func (v *pageView) setRows(rows model.TransactionSet) {
	v.Columns = model.Columns
	v.Rows = make([][]string, 0, len(rows))
	for _, row := range rows {
		v.Rows = append(v.Rows, row.Values())
	}
}

func (v *pageView) setResult(result profit.Result) {
	if !result.OK() {
		v.Error = result.Message()
		return
	}

	v.Success = successMessage
	v.Figures = result.Summary.Figures()
}
