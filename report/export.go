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
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/goccy/go-json"
	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/timeseries"
)

// Format selects how the recommendation table is written
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Write writes rows to w in the requested format
func Write(w io.Writer, format Format, rows []*data.RecommendationRow) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		_, err := fmt.Fprintln(w, RecommendationTable(rows))
		return err
	}
}

// WriteCSV writes rows with the recommendation table's column headers.
// Unavailable values are written as empty cells.
func WriteCSV(w io.Writer, rows []*data.RecommendationRow) error {
	return gocsv.Marshal(rows, w)
}

// WriteJSON writes rows as an indented array. Unavailable values are null.
func WriteJSON(w io.Writer, rows []*data.RecommendationRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

type seriesRecord struct {
	Datetime string     `csv:"Datetime"`
	Open     float64    `csv:"Open"`
	High     float64    `csv:"High"`
	Low      float64    `csv:"Low"`
	Close    float64    `csv:"Close"`
	Volume   int64      `csv:"Volume"`
	SMA20    data.Value `csv:"SMA 20"`
	EMA20    data.Value `csv:"EMA 20"`
}

// WriteSeriesCSV writes every bar with both indicators. Timestamps are
// RFC 3339 in the series' time zone.
func WriteSeriesCSV(w io.Writer, series *data.Series) error {
	records := make([]*seriesRecord, 0, len(series.Bars))
	for idx, bar := range series.Bars {
		records = append(records, &seriesRecord{
			Datetime: bar.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			Volume:   bar.Volume,
			SMA20:    indicatorValue(series, timeseries.SMA20, idx),
			EMA20:    indicatorValue(series, timeseries.EMA20, idx),
		})
	}

	return gocsv.Marshal(records, w)
}
