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
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/penny-vault/valuedash/data"
)

var (
	ErrInvalidStatusCode = errors.New("invalid status code received")
	ErrNoData            = errors.New("provider returned no data")
)

// Provider is a source of per-ticker market data
type Provider interface {
	Name() string
	Description() string

	// Info returns the provider's snapshot fields for ticker. Which keys are
	// present depends on the provider and the security.
	Info(ctx context.Context, ticker string) (*Info, error)

	// History returns OHLCV bars for ticker. Bars are returned in the order
	// the provider sent them with UTC timestamps.
	History(ctx context.Context, ticker string, req HistoryRequest) ([]*data.Bar, error)
}

// HistoryRequest selects a window of bars. When Start is set the window runs
// from Start to End; otherwise Range is passed to the provider as its native
// period (e.g. 1d, 1mo, 1y, max).
type HistoryRequest struct {
	Range    string
	Start    time.Time
	End      time.Time
	Interval string
}

// Windowed reports whether the request uses an explicit start/end window
func (req HistoryRequest) Windowed() bool {
	return !req.Start.IsZero()
}
