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
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
)

// Config holds the settings shared by every provider
type Config struct {
	UserAgent string

	// RateLimit is the maximum number of requests per minute
	RateLimit int

	// QueryURL and CookieURL override the provider's endpoints; empty values
	// use the production hosts
	QueryURL  string
	CookieURL string
}

var factories = map[string]func(Config) Provider{
	"yahoo": func(config Config) Provider {
		cookieURL := config.CookieURL
		if cookieURL == "" {
			cookieURL = YahooCookieURL
		}

		return NewYahoo(YahooConfig{
			QueryURL:  config.QueryURL,
			CookieURL: cookieURL,
			UserAgent: config.UserAgent,
			RateLimit: config.RateLimit,
		})
	},
}

// New returns the provider registered under name
func New(name string, config Config) (Provider, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	return factory(config), nil
}

// Names returns the name of every registered provider, sorted
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
