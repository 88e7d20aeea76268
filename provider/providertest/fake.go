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
// Package providertest implements an in-memory provider.Provider for tests
package providertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/penny-vault/valuedash/data"
	"github.com/penny-vault/valuedash/provider"
)

// Fake serves info and bars from maps. Tickers without an entry return
// provider.ErrNoData; entries in Errors are returned as is.
type Fake struct {
	Infos  map[string]string
	Bars   map[string][]*data.Bar
	Errors map[string]error

	mu       sync.Mutex
	requests []provider.HistoryRequest
	calls    []string
}

func New() *Fake {
	return &Fake{
		Infos:  make(map[string]string),
		Bars:   make(map[string][]*data.Bar),
		Errors: make(map[string]error),
	}
}

func (fake *Fake) Name() string {
	return "fake"
}

func (fake *Fake) Description() string {
	return "in-memory provider"
}

func (fake *Fake) Info(_ context.Context, ticker string) (*provider.Info, error) {
	fake.mu.Lock()
	fake.calls = append(fake.calls, ticker)
	fake.mu.Unlock()

	if err, ok := fake.Errors[ticker]; ok {
		return nil, err
	}

	obj, ok := fake.Infos[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrNoData, ticker)
	}

	return provider.NewInfo(ticker, obj)
}

func (fake *Fake) History(_ context.Context, ticker string, req provider.HistoryRequest) ([]*data.Bar, error) {
	fake.mu.Lock()
	fake.requests = append(fake.requests, req)
	fake.mu.Unlock()

	if err, ok := fake.Errors[ticker]; ok {
		return nil, err
	}

	bars, ok := fake.Bars[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrNoData, ticker)
	}

	// hand out copies so callers may modify them
	out := make([]*data.Bar, len(bars))
	for idx, bar := range bars {
		cp := *bar
		out[idx] = &cp
	}

	return out, nil
}

// Requests returns every history request received
func (fake *Fake) Requests() []provider.HistoryRequest {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	out := make([]provider.HistoryRequest, len(fake.requests))
	copy(out, fake.requests)
	return out
}

// Calls returns the tickers passed to Info in call order
func (fake *Fake) Calls() []string {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	out := make([]string, len(fake.calls))
	copy(out, fake.calls)
	return out
}
