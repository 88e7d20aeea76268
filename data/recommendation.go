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

type Recommendation string

const (
	Buy  Recommendation = "Buy"
	Hold Recommendation = "Hold"
	Sell Recommendation = "Sell"
)

// RecommendationRow is one line of the overview table. Err is set when the
// ticker could not be fetched; such rows carry only unavailable values and a
// Hold recommendation.
type RecommendationRow struct {
	Ticker            string         `csv:"Stock" json:"stock"`
	Industry          string         `csv:"Industry" json:"industry"`
	Price             Value          `csv:"Price" json:"price"`
	PE                Value          `csv:"PE Ratio" json:"pe_ratio"`
	PB                Value          `csv:"PB Ratio" json:"pb_ratio"`
	DividendYieldPct  Value          `csv:"Dividend Yield" json:"dividend_yield"`
	IndustryPE        Value          `csv:"Industry PE" json:"industry_pe"`
	IndustryPB        Value          `csv:"Industry PB" json:"industry_pb"`
	TargetMeanPrice   Value          `csv:"Target Mean Price" json:"target_mean_price"`
	TargetMedianPrice Value          `csv:"Target Median Price" json:"target_median_price"`
	IntrinsicValue    Value          `csv:"Financial Intrinsic Value" json:"financial_intrinsic_value"`
	Recommendation    Recommendation `csv:"Recommendation" json:"recommendation"`
	Err               string         `csv:"-" json:"error,omitempty"`
}

// Failed reports whether the row stands in for a ticker that could not be fetched
func (row *RecommendationRow) Failed() bool {
	return row.Err != ""
}

func (row *RecommendationRow) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", row.Ticker)
	e.Str("Industry", row.Industry)
	e.Stringer("PE", row.PE)
	e.Stringer("IndustryPE", row.IndustryPE)
	e.Stringer("PB", row.PB)
	e.Stringer("IndustryPB", row.IndustryPB)
	e.Str("Recommendation", string(row.Recommendation))
}
