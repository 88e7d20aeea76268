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
	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/provider"
)

// Provider field names read from the info endpoint
const (
	FieldPreviousClose     = "regularMarketPreviousClose"
	FieldTrailingPE        = "trailingPE"
	FieldForwardPE         = "forwardPE"
	FieldPriceToBook       = "priceToBook"
	FieldDividendYield     = "dividendYield"
	FieldTargetMeanPrice   = "targetMeanPrice"
	FieldTargetMedianPrice = "targetMedianPrice"
	FieldTrailingEPS       = "trailingEps"
	FieldEarningsGrowth    = "earningsGrowth"
	FieldIndustry          = "industry"
)

func Price(info *provider.Info) data.Value {
	return info.Float(FieldPreviousClose)
}

// PE is the trailing P/E, falling back to the forward P/E
func PE(info *provider.Info) data.Value {
	if pe := info.Float(FieldTrailingPE); pe.IsAvailable() {
		return pe
	}

	return info.Float(FieldForwardPE)
}

func PB(info *provider.Info) data.Value {
	return info.Float(FieldPriceToBook)
}

// DividendYieldPct is the dividend yield in percent. Securities that do not
// report a yield pay no dividend, so a missing yield is 0.
func DividendYieldPct(info *provider.Info) data.Value {
	yield := info.Float(FieldDividendYield)
	if !yield.IsAvailable() {
		return data.Available(0)
	}

	return yield.MulScalar(100)
}

func TargetMeanPrice(info *provider.Info) data.Value {
	return info.Float(FieldTargetMeanPrice)
}

func TargetMedianPrice(info *provider.Info) data.Value {
	return info.Float(FieldTargetMedianPrice)
}

func EPS(info *provider.Info) data.Value {
	return info.Float(FieldTrailingEPS)
}

func EarningsGrowth(info *provider.Info) data.Value {
	return info.Float(FieldEarningsGrowth)
}

// IntrinsicValue is eps * (1 + growth) * pe. pe is the resolved P/E and may
// be the forward P/E.
func IntrinsicValue(eps, growth, pe data.Value) data.Value {
	if !eps.IsAvailable() || !growth.IsAvailable() {
		return data.Unavailable()
	}

	return eps.Mul(growth.AddScalar(1)).Mul(pe)
}

func RawIndustry(info *provider.Info) string {
	if industry, ok := info.String(FieldIndustry); ok && industry != "" {
		return industry
	}

	return data.UnknownIndustry
}
