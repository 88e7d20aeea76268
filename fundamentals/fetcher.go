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
package fundamentals

import (
	"context"
	"fmt"

	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/provider"
	"github.com/rs/zerolog"
)

// Fetcher reads a fundamentals snapshot for a ticker from a provider
type Fetcher struct {
	provider provider.Provider
}

func NewFetcher(prov provider.Provider) *Fetcher {
	return &Fetcher{
		provider: prov,
	}
}

// Fetch retrieves the provider's info for ticker and resolves every snapshot
// field. A provider error fails only this ticker.
func (fetcher *Fetcher) Fetch(ctx context.Context, ticker string) (*data.Snapshot, error) {
	logger := zerolog.Ctx(ctx)

	info, err := fetcher.provider.Info(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals for %s: %w", ticker, err)
	}

	snapshot := FromInfo(ticker, info)
	logger.Debug().Object("Snapshot", snapshot).Msg("fetched fundamentals")

	return snapshot, nil
}

// FromInfo resolves a snapshot from provider fields
func FromInfo(ticker string, info *provider.Info) *data.Snapshot {
	pe := PE(info)
	eps := EPS(info)
	growth := EarningsGrowth(info)

	return &data.Snapshot{
		Ticker:            ticker,
		Price:             Price(info),
		PE:                pe,
		PB:                PB(info),
		DividendYieldPct:  DividendYieldPct(info),
		TargetMeanPrice:   TargetMeanPrice(info),
		TargetMedianPrice: TargetMedianPrice(info),
		EPS:               eps,
		EarningsGrowth:    growth,
		IntrinsicValue:    IntrinsicValue(eps, growth, pe),
		RawIndustry:       RawIndustry(info),
	}
}
