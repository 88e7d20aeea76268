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
package benchmark

import (
	"context"

	"github.com/penny-vault/valuedash/data"
	"github.com/rs/zerolog"
)

// Sources names the pages and ratio columns of the two benchmark tables
type Sources struct {
	PEURL    string
	PEColumn int
	PBURL    string
	PBColumn int

	Options
}

// DefaultSources returns the industry P/E and P/B pages and their columns
func DefaultSources() Sources {
	return Sources{
		PEURL:    DefaultPEURL,
		PEColumn: DefaultPEColumn,
		PBURL:    DefaultPBURL,
		PBColumn: DefaultPBColumn,
	}
}

// Load scrapes both benchmark tables. Either table failing fails the load.
func Load(ctx context.Context, sources Sources) (*data.BenchmarkSet, error) {
	logger := zerolog.Ctx(ctx)
	scraper := New(sources.Options)

	pe, err := scraper.Fetch(ctx, data.PEBenchmark, sources.PEURL, sources.PEColumn)
	if err != nil {
		return nil, err
	}

	pb, err := scraper.Fetch(ctx, data.PBBenchmark, sources.PBURL, sources.PBColumn)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("PEIndustries", pe.Len()).Int("PBIndustries", pb.Len()).Msg("loaded industry benchmarks")

	return &data.BenchmarkSet{
		PE: pe,
		PB: pb,
	}, nil
}
