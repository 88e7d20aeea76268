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
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/timeseries"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const timestampLayout = "2006-01-02 15:04 MST"

// Render formats markdown for the terminal
func Render(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		// detect background color and pick either the default dark or light theme
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}

	return r.Render(markdown)
}

// SeriesSummary describes the series headline metrics in markdown
func SeriesSummary(series *data.Series, summary data.Summary) string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString(fmt.Sprintf("# %s\n\n", series.Ticker))
	builder.WriteString(fmt.Sprintf("Period: %s, interval: %s, %d bars\n\n", series.Period, series.Interval, len(series.Bars)))

	if len(series.Bars) > 0 {
		first := series.Bars[0].Timestamp
		last := series.Bars[len(series.Bars)-1].Timestamp
		builder.WriteString(fmt.Sprintf("From %s to %s\n\n", first.Format(timestampLayout), last.Format(timestampLayout)))
	}

	builder.WriteString("## Summary\n\n")
	builder.WriteString(fmt.Sprintf("  * Last Price: %s\n", summary.LastClose))
	builder.WriteString(fmt.Sprintf("  * Change: %s (%s%%)\n", signed(summary.Change), signed(summary.PctChange)))
	builder.WriteString(fmt.Sprintf("  * High: %s\n", summary.High))
	builder.WriteString(fmt.Sprintf("  * Low: %s\n", summary.Low))
	builder.WriteString(p.Sprintf("  * Volume: %d\n", summary.TotalVolume))

	return builder.String()
}

// BenchmarkSummary lists every industry of both benchmark tables in markdown
func BenchmarkSummary(set *data.BenchmarkSet, now time.Time) string {
	builder := strings.Builder{}
	builder.WriteString("# Industry Benchmarks\n")

	slots := []struct {
		tbl  *data.BenchmarkTable
		name string
	}{
		{set.PE, data.PEBenchmark},
		{set.PB, data.PBBenchmark},
	}

	for _, slot := range slots {
		tbl := slot.tbl
		if tbl == nil {
			continue
		}

		name := tbl.Name
		if name == "" {
			name = slot.name
		}

		title := "Price / Earnings"
		if name == data.PBBenchmark {
			title = "Price / Book"
		}

		builder.WriteString(fmt.Sprintf("\n## %s\n\n", title))
		builder.WriteString(fmt.Sprintf("Source: %s\n\n", tbl.Source))

		builder.WriteString(fmt.Sprintf("Fetched: %s, %d industries\n\n", timeago.English.FormatReference(tbl.FetchedAt, now), tbl.Len()))

		builder.WriteString("| Industry | Ratio |\n|---|---:|\n")
		for _, industry := range tbl.Industries() {
			builder.WriteString(fmt.Sprintf("| %s | %s |\n", escapeCell(industry), tbl.Lookup(industry)))
		}
	}

	return builder.String()
}

// RunSummary describes a recommendation run in markdown
func RunSummary(rows []*data.RecommendationRow, summary *data.RunSummary) string {
	counts := map[data.Recommendation]int{}
	for _, row := range rows {
		if row.Failed() {
			continue
		}
		counts[row.Recommendation]++
	}

	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Run %s: %d tickers, %d buy, %d hold, %d sell, %d unavailable\n",
		summary.RunID.String()[:8], summary.NumTickers, counts[data.Buy], counts[data.Hold], counts[data.Sell], summary.NumFailed))

	if len(summary.MissingIndustries) > 0 {
		builder.WriteString(fmt.Sprintf("No benchmark for: %s\n", strings.Join(summary.MissingIndustries, ", ")))
	}

	return builder.String()
}

func signed(v data.Value) string {
	f, ok := v.Float()
	if !ok {
		return v.String()
	}

	return fmt.Sprintf("%+.2f", f)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func seriesCells(series *data.Series, indicators []timeseries.Indicator) [][]string {
	p := message.NewPrinter(language.English)
	rows := make([][]string, 0, len(series.Bars))

	for idx, bar := range series.Bars {
		cells := []string{
			bar.Timestamp.Format(timestampLayout),
			fmt.Sprintf("%.2f", bar.Open),
			fmt.Sprintf("%.2f", bar.High),
			fmt.Sprintf("%.2f", bar.Low),
			fmt.Sprintf("%.2f", bar.Close),
			p.Sprintf("%d", bar.Volume),
		}

		for _, indicator := range indicators {
			cells = append(cells, indicatorValue(series, indicator, idx).String())
		}

		rows = append(rows, cells)
	}

	return rows
}

func indicatorValue(series *data.Series, indicator timeseries.Indicator, idx int) data.Value {
	var values []data.Value
	switch indicator {
	case timeseries.SMA20:
		values = series.SMA20
	case timeseries.EMA20:
		values = series.EMA20
	}

	if idx >= len(values) {
		return data.Unavailable()
	}

	return values[idx]
}
