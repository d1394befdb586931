//go:build !integration

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
)

func cells(row ...string) []*string {
	out := make([]*string, len(row))
	for i := range row {
		out[i] = &row[i]
	}
	return out
}

// petitionPages is a four-page filing with the ARR summary on page 2 and a
// narrative section on page 3.
func petitionPages() []document.MemoryPage {
	summary := document.RawTable{
		cells("Sl. No", "Particulars", "ARR Approval", "Actuals", "TU Sought", "", "Difference"),
		cells("1", "Return on Equity", "100.00", "101.00", "102.00", "", "1.00"),
		cells("2", "Depreciation", "200.00", "210.00", "215.00", "", "15.00"),
		cells("3", "Interest and Finance Charges", "50.00", "55.00", "56.00", "", "6.00"),
		cells("4", "O&M Expenses", "300.00", "320.00", "330.00", "", "30.00"),
		cells("5", "Cost of Generation of Power", "40.00", "45.00", "46.00", "", "6.00"),
		cells("6", "Master Trust", "80.00", "85.00", "86.00", "", "6.00"),
		cells("7", "Exceptional Items", "10.00", "12.00", "12.00", "", "2.00"),
		cells("8", "Intangible assets amortisation", "3.00", "3.50", "3.50", "", "0.50"),
		cells("9", "Less Non-Tariff Income", "(20.00)", "(22.00)", "(22.00)", "", "(2.00)"),
		cells("10", "Other Expenses", "5.00", "6.00", "6.00", "", "1.00"),
		cells("11", "Total", "768.00", "815.50", "834.50", "", "66.50"),
	}
	return []document.MemoryPage{
		{Text: "KSEB Ltd\nTruing up petition for 2023-24"},
		{Text: "Chapter 2 SBU-G Generation\nARR of SBU-G for 2023-24", Tables: []document.RawTable{summary}},
		{Text: "3.4 Return on Equity\nThe ROE claimed shows a variance of 2 Cr.\n3.5 Depreciation\nStraight line."},
		{Text: "Chapter 3 SBU-T Transmission"},
	}
}

// writeDump stores pages as a JSON page dump under dir.
func writeDump(t *testing.T, dir, name string, pages []document.MemoryPage) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{"pages": pages})
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
