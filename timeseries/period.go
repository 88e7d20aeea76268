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
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPeriod    = errors.New("unknown period")
	ErrUnknownIndicator = errors.New("unknown indicator")
)

// Period is a lookback window offered by the dashboard
type Period string

const (
	PeriodDay   Period = "1 day"
	PeriodWeek  Period = "1 week"
	PeriodMonth Period = "1 month"
	PeriodYear  Period = "1 year"
	PeriodMax   Period = "max"
)

// Periods lists every period in display order
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodMax}

var periodCodes = map[Period]string{
	PeriodDay:   "1d",
	PeriodWeek:  "1wk",
	PeriodMonth: "1mo",
	PeriodYear:  "1y",
	PeriodMax:   "max",
}

var defaultIntervals = map[Period]string{
	PeriodDay:   "1m",
	PeriodWeek:  "30m",
	PeriodMonth: "1d",
	PeriodYear:  "1wk",
	PeriodMax:   "1wk",
}

// ParsePeriod accepts either a period label ("1 week") or its provider code
// ("1wk"). Matching ignores case and surrounding whitespace.
func ParsePeriod(s string) (Period, error) {
	needle := strings.ToLower(strings.Join(strings.Fields(s), " "))
	for _, period := range Periods {
		if needle == string(period) || needle == periodCodes[period] {
			return period, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Code is the provider's native range parameter for the period
func (period Period) Code() string {
	return periodCodes[period]
}

// DefaultInterval is the bar size used when none is requested
func (period Period) DefaultInterval() string {
	return defaultIntervals[period]
}

func (period Period) String() string {
	return string(period)
}

// Indicator is a derived series that can be shown alongside the bars
type Indicator string

const (
	SMA20 Indicator = "SMA 20"
	EMA20 Indicator = "EMA 20"
)

var Indicators = []Indicator{SMA20, EMA20}

// ParseIndicator accepts "SMA 20", "sma20", "ema-20" and similar spellings
func ParseIndicator(s string) (Indicator, error) {
	needle := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	switch needle {
	case "sma20", "sma":
		return SMA20, nil
	case "ema20", "ema":
		return EMA20, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIndicator, s)
	}
}

func (indicator Indicator) String() string {
	return string(indicator)
}
