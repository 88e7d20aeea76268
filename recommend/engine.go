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
package recommend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/google/uuid"
	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/fundamentals"
	"github.com/penny-vault/valuedash/industry"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
)

// Engine joins per-ticker fundamentals with industry benchmarks and labels
// each ticker Buy, Hold or Sell.
type Engine struct {
	fetcher       *fundamentals.Fetcher
	canonicalizer *industry.Canonicalizer
	benchmarks    *data.BenchmarkSet
	workers       int
}

// NewEngine creates an engine. A nil canonicalizer uses the default alias
// table; workers below 1 fetch one ticker at a time.
func NewEngine(fetcher *fundamentals.Fetcher, canonicalizer *industry.Canonicalizer, benchmarks *data.BenchmarkSet, workers int) *Engine {
	if canonicalizer == nil {
		canonicalizer, _ = industry.New()
	}

	if benchmarks == nil {
		benchmarks = &data.BenchmarkSet{}
	}

	if workers < 1 {
		workers = 1
	}

	return &Engine{
		fetcher:       fetcher,
		canonicalizer: canonicalizer,
		benchmarks:    benchmarks,
		workers:       workers,
	}
}

// Build produces one row per ticker in input order. Tickers that cannot be
// fetched are returned as failed rows; the batch is never aborted.
func (engine *Engine) Build(ctx context.Context, tickers []string) ([]*data.RecommendationRow, *data.RunSummary) {
	return engine.BuildWithID(ctx, uuid.New(), tickers)
}

// BuildWithID is Build with a caller chosen run id
func (engine *Engine) BuildWithID(ctx context.Context, runID uuid.UUID, tickers []string) ([]*data.RecommendationRow, *data.RunSummary) {
	summary := &data.RunSummary{
		RunID:     runID,
		StartTime: time.Now(),
	}

	subLog := zerolog.Ctx(ctx).With().Str("RunID", summary.RunID.String()).Logger()
	ctx = subLog.WithContext(ctx)

	tickers = NormalizeTickers(tickers)
	summary.NumTickers = len(tickers)

	mapper := iter.Mapper[string, *data.RecommendationRow]{
		MaxGoroutines: engine.workers,
	}

	// industries without a usable benchmark, reported once per run
	missing := haxmap.New[string, string]()

	rows := mapper.Map(tickers, func(ticker *string) *data.RecommendationRow {
		row := engine.Row(ctx, *ticker)
		if row.Failed() || (row.IndustryPE.IsAvailable() && row.IndustryPB.IsAvailable()) {
			return row
		}

		if _, loaded := missing.GetOrSet(row.Industry, row.Ticker); !loaded {
			subLog.Warn().Str("Industry", row.Industry).Str("Ticker", row.Ticker).Msg("industry has no usable benchmark; its tickers are rated Hold")
		}

		return row
	})

	missing.ForEach(func(industry string, _ string) bool {
		summary.MissingIndustries = append(summary.MissingIndustries, industry)
		return true
	})
	sort.Strings(summary.MissingIndustries)

	for _, row := range rows {
		if row.Failed() {
			summary.NumFailed++
		}
	}

	summary.EndTime = time.Now()
	return rows, summary
}

// Row fetches and classifies a single ticker
func (engine *Engine) Row(ctx context.Context, ticker string) *data.RecommendationRow {
	logger := zerolog.Ctx(ctx)

	snapshot, err := engine.fetcher.Fetch(ctx, ticker)
	if err != nil {
		logger.Warn().Err(err).Str("Ticker", ticker).Msg("could not fetch fundamentals; ticker marked unavailable")
		return &data.RecommendationRow{
			Ticker:         ticker,
			Recommendation: data.Hold,
			Err:            err.Error(),
		}
	}

	canonical := engine.canonicalizer.Canonicalize(snapshot.RawIndustry)
	industryPE := engine.benchmarks.PE.Lookup(canonical)
	industryPB := engine.benchmarks.PB.Lookup(canonical)

	row := &data.RecommendationRow{
		Ticker:            snapshot.Ticker,
		Industry:          canonical,
		Price:             snapshot.Price,
		PE:                snapshot.PE,
		PB:                snapshot.PB,
		DividendYieldPct:  snapshot.DividendYieldPct,
		IndustryPE:        industryPE,
		IndustryPB:        industryPB,
		TargetMeanPrice:   snapshot.TargetMeanPrice,
		TargetMedianPrice: snapshot.TargetMedianPrice,
		IntrinsicValue:    snapshot.IntrinsicValue,
		Recommendation:    Classify(snapshot.PE, industryPE, snapshot.PB, industryPB),
	}

	if !industryPE.IsAvailable() || !industryPB.IsAvailable() {
		logger.Debug().Str("Ticker", ticker).Str("RawIndustry", snapshot.RawIndustry).Str("Industry", canonical).Msg("industry has no benchmark")
	}

	logger.Debug().Object("Row", row).Msg("classified ticker")

	return row
}

// NormalizeTickers trims and upper-cases tickers and drops empty entries.
// Order and duplicates are kept.
func NormalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	for _, ticker := range tickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker == "" {
			continue
		}
		out = append(out, ticker)
	}

	return out
}
