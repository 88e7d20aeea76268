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
package timeseries

import (
	"github.com/penny-vault/valuedash/data"
)

// Summarize computes headline metrics over the series. Change and PctChange
// compare the last close with the first close of the window, not with the
// prior session.
func Summarize(series *data.Series) data.Summary {
	summary := data.Summary{}
	if series == nil || len(series.Bars) == 0 {
		return summary
	}

	first := series.Bars[0]
	last := series.Bars[len(series.Bars)-1]

	summary.LastClose = data.Available(last.Close)
	summary.Change = data.Available(last.Close - first.Close)
	summary.PctChange = summary.Change.Div(data.Available(first.Close)).MulScalar(100)

	high := first.High
	low := first.Low
	for _, bar := range series.Bars {
		if bar.High > high {
			high = bar.High
		}

		if bar.Low < low {
			low = bar.Low
		}

		summary.TotalVolume += bar.Volume
	}

	summary.High = data.Available(high)
	summary.Low = data.Available(low)

	return summary
}
