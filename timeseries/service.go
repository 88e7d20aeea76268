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
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/provider"
	"github.com/rs/zerolog"
)

const (
	// IndicatorWindow is the lookback of the SMA and EMA series
	IndicatorWindow = 20

	ReportingTimezone = "America/New_York"

	weekLookback = 7 * 24 * time.Hour
)

// Service fetches OHLCV series for a single ticker
type Service struct {
	provider provider.Provider
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, which anchors the 1 week window
func WithClock(now func() time.Time) Option {
	return func(service *Service) {
		service.now = now
	}
}

func NewService(prov provider.Provider, opts ...Option) *Service {
	service := &Service{
		provider: prov,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Request builds the provider request for period. The 1 week period is an
// explicit window ending now; every other period uses the provider's range.
func (service *Service) Request(period Period, interval string) provider.HistoryRequest {
	if interval == "" {
		interval = period.DefaultInterval()
	}

	if period == PeriodWeek {
		end := service.now()
		return provider.HistoryRequest{
			Start:    end.Add(-weekLookback),
			End:      end,
			Interval: interval,
		}
	}

	return provider.HistoryRequest{
		Range:    period.Code(),
		Interval: interval,
	}
}

// Fetch returns the bars for ticker over period in US Eastern time, sorted
// and de-duplicated by timestamp, with SMA and EMA series over the closes.
func (service *Service) Fetch(ctx context.Context, ticker string, period Period, interval string) (*data.Series, error) {
	logger := zerolog.Ctx(ctx)

	if _, ok := periodCodes[period]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}

	nyc, err := time.LoadLocation(ReportingTimezone)
	if err != nil {
		logger.Error().Err(err).Msg("could not load timezone")
		return nil, err
	}

	req := service.Request(period, interval)
	bars, err := service.provider.History(ctx, ticker, req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history for %s: %w", period, ticker, err)
	}

	bars = normalize(bars, nyc)
	series := &data.Series{
		Ticker:   ticker,
		Period:   string(period),
		Interval: req.Interval,
		Bars:     bars,
	}

	closes := series.Closes()
	series.SMA20 = movingAverage(closes, talib.Sma)
	series.EMA20 = movingAverage(closes, ema)

	logger.Debug().Str("Ticker", ticker).Str("Period", string(period)).Str("Interval", req.Interval).Int("NumBars", len(bars)).Msg("fetched series")

	return series, nil
}

// normalize converts timestamps to loc, sorts bars and keeps the last bar
// for each timestamp. Bars without a zone are treated as UTC.
func normalize(bars []*data.Bar, loc *time.Location) []*data.Bar {
	out := make([]*data.Bar, 0, len(bars))
	for _, bar := range bars {
		if bar == nil {
			continue
		}
		bar.Timestamp = bar.Timestamp.In(loc)
		out = append(out, bar)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	deduped := out[:0]
	for _, bar := range out {
		last := len(deduped) - 1
		if last >= 0 && deduped[last].Timestamp.Equal(bar.Timestamp) {
			deduped[last] = bar
			continue
		}
		deduped = append(deduped, bar)
	}

	return deduped
}

// movingAverage applies fn with the indicator window. Entries before the
// window is full are unavailable.
func movingAverage(closes []float64, fn func([]float64, int) []float64) []data.Value {
	values := make([]data.Value, len(closes))
	if len(closes) < IndicatorWindow {
		return values
	}

	averaged := fn(closes, IndicatorWindow)
	for idx := IndicatorWindow - 1; idx < len(closes) && idx < len(averaged); idx++ {
		values[idx] = data.Available(averaged[idx])
	}

	return values
}

// ema is an exponential moving average with alpha 2/(window+1) seeded with
// the first close rather than an SMA.
func ema(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}

	alpha := 2.0 / float64(window+1)
	out[0] = closes[0]
	for idx := 1; idx < len(closes); idx++ {
		out[idx] = alpha*closes[idx] + (1-alpha)*out[idx-1]
	}

	return out
}
