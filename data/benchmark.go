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
package data

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PEBenchmark = "pe"
	PBBenchmark = "pb"
)

// BenchmarkRow is a single scraped row before it is keyed into a table.
// HasRatio is false when the row did not have a cell at the ratio column.
type BenchmarkRow struct {
	Industry string
	Ratio    string
	HasRatio bool
}

// BenchmarkTable maps a whitespace-normalized industry name to the ratio text
// scraped for it. Ratios are kept as text and parsed on lookup.
type BenchmarkTable struct {
	Name      string
	Source    string
	FetchedAt time.Time

	ratios map[string]*string
}

// BenchmarkSet holds the two benchmark tables used by a run. It is built once
// and only read afterwards.
type BenchmarkSet struct {
	PE *BenchmarkTable
	PB *BenchmarkTable
}

// NormalizeIndustry collapses every run of whitespace to a single space and
// trims the ends.
func NormalizeIndustry(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NewBenchmarkTable keys rows by normalized industry name. Rows with an empty
// name are dropped; when a name repeats the later row wins.
func NewBenchmarkTable(name, source string, fetchedAt time.Time, rows []BenchmarkRow) *BenchmarkTable {
	table := &BenchmarkTable{
		Name:      name,
		Source:    source,
		FetchedAt: fetchedAt,
		ratios:    make(map[string]*string, len(rows)),
	}

	for _, row := range rows {
		industry := NormalizeIndustry(row.Industry)
		if industry == "" {
			continue
		}

		if !row.HasRatio {
			table.ratios[industry] = nil
			continue
		}

		ratio := strings.TrimSpace(row.Ratio)
		table.ratios[industry] = &ratio
	}

	return table
}

// Lookup returns the parsed ratio for industry. Missing industries and ratio
// text that is not a number are unavailable.
func (table *BenchmarkTable) Lookup(industry string) Value {
	if table == nil {
		return Unavailable()
	}

	text, ok := table.ratios[NormalizeIndustry(industry)]
	if !ok || text == nil {
		return Unavailable()
	}

	return ParseRatio(*text)
}

// Raw returns the scraped ratio text for industry.
func (table *BenchmarkTable) Raw(industry string) (string, bool) {
	if table == nil {
		return "", false
	}

	text, ok := table.ratios[NormalizeIndustry(industry)]
	if !ok || text == nil {
		return "", false
	}

	return *text, true
}

func (table *BenchmarkTable) Len() int {
	if table == nil {
		return 0
	}

	return len(table.ratios)
}

// Industries returns all industry names in the table, sorted.
func (table *BenchmarkTable) Industries() []string {
	if table == nil {
		return []string{}
	}

	industries := make([]string, 0, len(table.ratios))
	for industry := range table.ratios {
		industries = append(industries, industry)
	}

	sort.Strings(industries)

	return industries
}

// ParseRatio converts benchmark cell text to a Value.
func ParseRatio(text string) Value {
	dec, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return Unavailable()
	}

	return Available(dec.InexactFloat64())
}
