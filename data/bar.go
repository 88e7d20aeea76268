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
	"time"
)

type Bar struct {
	Timestamp time.Time `json:"timestamp" csv:"Datetime"`
	Open      float64   `json:"open" csv:"Open"`
	High      float64   `json:"high" csv:"High"`
	Low       float64   `json:"low" csv:"Low"`
	Close     float64   `json:"close" csv:"Close"`
	Volume    int64     `json:"volume" csv:"Volume"`
}

// Series is an ordered set of bars for one ticker along with the derived
// indicator series. SMA20 and EMA20 always have the same length as Bars.
type Series struct {
	Ticker   string  `json:"ticker"`
	Period   string  `json:"period"`
	Interval string  `json:"interval"`
	Bars     []*Bar  `json:"bars"`
	SMA20    []Value `json:"sma_20"`
	EMA20    []Value `json:"ema_20"`
}

// Closes returns the closing price of every bar in order
func (series *Series) Closes() []float64 {
	closes := make([]float64, len(series.Bars))
	for idx, bar := range series.Bars {
		closes[idx] = bar.Close
	}

	return closes
}

// Summary holds headline metrics over the fetched window. Change and
// PctChange are measured against the first bar of the window.
type Summary struct {
	LastClose   Value `json:"last_close"`
	Change      Value `json:"change"`
	PctChange   Value `json:"pct_change"`
	High        Value `json:"high"`
	Low         Value `json:"low"`
	TotalVolume int64 `json:"total_volume"`
}
