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
package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/report"
	"github.com/penny-vault/valuedash/timeseries"
)

func sampleRows() []*data.RecommendationRow {
	return []*data.RecommendationRow{
		{
			Ticker:            "MSFT",
			Industry:          "Software (System & Application)",
			Price:             data.Available(400),
			PE:                data.Available(10),
			PB:                data.Available(1),
			DividendYieldPct:  data.Available(0.75),
			IndustryPE:        data.Available(25),
			IndustryPB:        data.Available(4),
			TargetMeanPrice:   data.Available(450),
			TargetMedianPrice: data.Available(455),
			Recommendation:    data.Buy,
		},
		{
			Ticker:         "BAD",
			Recommendation: data.Hold,
			Err:            "provider returned no data: BAD",
		},
	}
}

var _ = Describe("Export", func() {
	It("writes csv with the output table columns", func() {
		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, sampleRows())).To(Succeed())

		records, err := csv.NewReader(&buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(3))
		Expect(records[0]).To(Equal(report.Columns))

		Expect(records[1][0]).To(Equal("MSFT"))
		Expect(records[1][3]).To(Equal("10"))
		Expect(records[1][10]).To(Equal(""))
		Expect(records[1][11]).To(Equal("Buy"))

		Expect(records[2][0]).To(Equal("BAD"))
		Expect(records[2][2]).To(Equal(""))
		Expect(records[2][11]).To(Equal("Hold"))
	})

	It("writes json with null for unavailable values", func() {
		var buf bytes.Buffer
		Expect(report.WriteJSON(&buf, sampleRows())).To(Succeed())

		var decoded []map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
		Expect(decoded).To(HaveLen(2))

		Expect(decoded[0]["stock"]).To(Equal("MSFT"))
		Expect(decoded[0]["pe_ratio"]).To(Equal(10.0))
		Expect(decoded[0]["financial_intrinsic_value"]).To(BeNil())
		Expect(decoded[0]).NotTo(HaveKey("error"))

		Expect(decoded[1]["error"]).To(Equal("provider returned no data: BAD"))
		Expect(decoded[1]["price"]).To(BeNil())
	})

	It("parses output formats", func() {
		format, err := report.ParseFormat(" CSV ")
		Expect(err).NotTo(HaveOccurred())
		Expect(format).To(Equal(report.FormatCSV))

		_, err = report.ParseFormat("xml")
		Expect(err).To(HaveOccurred())
	})

	It("writes series csv with indicator columns", func() {
		nyc, err := time.LoadLocation("America/New_York")
		Expect(err).NotTo(HaveOccurred())

		series := &data.Series{
			Ticker: "AAPL",
			Bars: []*data.Bar{
				{Timestamp: time.Date(2024, 1, 2, 9, 30, 0, 0, nyc), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100},
			},
			SMA20: []data.Value{data.Unavailable()},
			EMA20: []data.Value{data.Available(1.25)},
		}

		var buf bytes.Buffer
		Expect(report.WriteSeriesCSV(&buf, series)).To(Succeed())

		records, err := csv.NewReader(&buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(records[0]).To(Equal([]string{"Datetime", "Open", "High", "Low", "Close", "Volume", "SMA 20", "EMA 20"}))
		Expect(records[1]).To(Equal([]string{"2024-01-02T09:30:00-05:00", "1", "2", "0.5", "1.5", "100", "", "1.25"}))
	})
})

var _ = Describe("Rendering", func() {
	It("renders every row of the recommendation table", func() {
		out := report.RecommendationTable(sampleRows())
		Expect(out).To(ContainSubstring("MSFT"))
		Expect(out).To(ContainSubstring("BAD"))
		Expect(out).To(ContainSubstring("Financial Intrinsic Value"))
		Expect(out).To(ContainSubstring("N/A"))
	})

	It("shows failed rows as unavailable", func() {
		cells := report.Cells(sampleRows()[1])
		Expect(cells[1]).To(Equal("unavailable"))
		Expect(cells[2]).To(Equal("N/A"))
		Expect(cells[11]).To(Equal("Hold"))
	})

	It("summarizes a series with thousands separators", func() {
		series := &data.Series{
			Ticker:   "AAPL",
			Period:   "1 week",
			Interval: "30m",
			Bars: []*data.Bar{
				{Timestamp: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), Close: 100},
				{Timestamp: time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC), Close: 110},
			},
		}

		summary := data.Summary{
			LastClose:   data.Available(110),
			Change:      data.Available(10),
			PctChange:   data.Available(10),
			High:        data.Available(112),
			Low:         data.Available(99),
			TotalVolume: 1234567,
		}

		md := report.SeriesSummary(series, summary)
		Expect(md).To(ContainSubstring("# AAPL"))
		Expect(md).To(ContainSubstring("Last Price: 110.00"))
		Expect(md).To(ContainSubstring("Change: +10.00 (+10.00%)"))
		Expect(md).To(ContainSubstring("Volume: 1,234,567"))
	})

	It("renders the series table with selected indicators", func() {
		series := &data.Series{
			Bars:  []*data.Bar{{Timestamp: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), Close: 100, Volume: 5000}},
			SMA20: []data.Value{data.Unavailable()},
			EMA20: []data.Value{data.Available(99.5)},
		}

		out := report.SeriesTable(series, []timeseries.Indicator{timeseries.EMA20})
		Expect(out).To(ContainSubstring("EMA 20"))
		Expect(out).NotTo(ContainSubstring("SMA 20"))
		Expect(out).To(ContainSubstring("99.50"))
		Expect(out).To(ContainSubstring("5,000"))
	})

	It("lists benchmark industries", func() {
		now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
		set := &data.BenchmarkSet{
			PE: data.NewBenchmarkTable(data.PEBenchmark, "pe.html", now.Add(-2*time.Hour), []data.BenchmarkRow{
				{Industry: "Apparel", Ratio: "19.32", HasRatio: true},
				{Industry: "Shipbuilding & Marine", Ratio: "NA", HasRatio: true},
			}),
			PB: data.NewBenchmarkTable(data.PBBenchmark, "pb.html", now.Add(-2*time.Hour), []data.BenchmarkRow{
				{Industry: "Apparel", Ratio: "3.47", HasRatio: true},
			}),
		}

		md := report.BenchmarkSummary(set, now)
		Expect(md).To(ContainSubstring("## Price / Earnings"))
		Expect(md).To(ContainSubstring("## Price / Book"))
		Expect(md).To(ContainSubstring("| Apparel | 19.32 |"))
		Expect(md).To(ContainSubstring("| Shipbuilding & Marine | N/A |"))
		Expect(md).To(ContainSubstring("hours ago"))
	})

	It("titles unnamed benchmark tables by their place in the set", func() {
		now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
		set := &data.BenchmarkSet{
			PB: data.NewBenchmarkTable("", "pb.html", now, []data.BenchmarkRow{
				{Industry: "Apparel", Ratio: "3.47", HasRatio: true},
			}),
		}

		md := report.BenchmarkSummary(set, now)
		Expect(md).To(ContainSubstring("## Price / Book"))
		Expect(md).NotTo(ContainSubstring("## Price / Earnings"))
	})

	It("summarizes a run", func() {
		summary := &data.RunSummary{RunID: uuid.New(), NumTickers: 2, NumFailed: 1}
		out := report.RunSummary(sampleRows(), summary)
		Expect(strings.TrimSpace(out)).To(HaveSuffix("2 tickers, 1 buy, 0 hold, 0 sell, 1 unavailable"))
	})
})
