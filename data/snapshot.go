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
	"github.com/rs/zerolog"
)

// UnknownIndustry is used when the provider does not report an industry
const UnknownIndustry = "Unknown"

// Snapshot is a single point-in-time fundamentals read for one ticker.
type Snapshot struct {
	Ticker            string
	Price             Value
	PE                Value
	PB                Value
	DividendYieldPct  Value
	TargetMeanPrice   Value
	TargetMedianPrice Value
	EPS               Value
	EarningsGrowth    Value
	IntrinsicValue    Value

	// RawIndustry is the industry label exactly as the provider reported it
	RawIndustry string
}

func (snapshot *Snapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", snapshot.Ticker)
	e.Str("RawIndustry", snapshot.RawIndustry)
	e.Stringer("Price", snapshot.Price)
	e.Stringer("PE", snapshot.PE)
	e.Stringer("PB", snapshot.PB)
	e.Stringer("IntrinsicValue", snapshot.IntrinsicValue)
}
