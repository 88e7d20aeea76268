// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/timeseries"
)

// Columns of the recommendation table in display order
var Columns = []string{
	"Stock",
	"Industry",
	"Price",
	"PE Ratio",
	"PB Ratio",
	"Dividend Yield",
	"Industry PE",
	"Industry PB",
	"Target Mean Price",
	"Target Median Price",
	"Financial Intrinsic Value",
	"Recommendation",
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	buyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	sellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Cells returns the display text of every column of row
func Cells(row *data.RecommendationRow) []string {
	industry := row.Industry
	if row.Failed() {
		industry = "unavailable"
	}

	return []string{
		row.Ticker,
		industry,
		row.Price.String(),
		row.PE.String(),
		row.PB.String(),
		row.DividendYieldPct.String(),
		row.IndustryPE.String(),
		row.IndustryPB.String(),
		row.TargetMeanPrice.String(),
		row.TargetMedianPrice.String(),
		row.IntrinsicValue.String(),
		string(row.Recommendation),
	}
}

// RecommendationTable renders rows as a bordered terminal table
func RecommendationTable(rows []*data.RecommendationRow) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, row := range rows {
		cells := Cells(row)
		last := len(cells) - 1

		switch {
		case row.Failed():
			for idx := range cells {
				cells[idx] = failedStyle.Render(cells[idx])
			}
		case row.Recommendation == data.Buy:
			cells[last] = buyStyle.Render(cells[last])
		case row.Recommendation == data.Sell:
			cells[last] = sellStyle.Render(cells[last])
		}

		t.Row(cells...)
	}

	return t.Render()
}

// SeriesTable renders the bars of series with the requested indicators
func SeriesTable(series *data.Series, indicators []timeseries.Indicator) string {
	headers := []string{"Datetime", "Open", "High", "Low", "Close", "Volume"}
	for _, indicator := range indicators {
		headers = append(headers, indicator.String())
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, cells := range seriesCells(series, indicators) {
		t.Row(cells...)
	}

	return t.Render()
}
