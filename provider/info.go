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
	"fmt"

	"github.com/penny-vault/valuedash/data"
	"github.com/tidwall/gjson"
)

// Info is a loosely-typed set of snapshot fields keyed by the provider's
// field names. Lookups never fail; missing or mistyped keys are reported as
// unavailable.
type Info struct {
	Ticker string

	fields map[string]gjson.Result
}

// NewInfo builds an Info from a flat JSON object, e.g. {"trailingPE": 21.4}.
func NewInfo(ticker string, obj string) (*Info, error) {
	if !gjson.Valid(obj) {
		return nil, fmt.Errorf("info for %s is not valid json", ticker)
	}

	parsed := gjson.Parse(obj)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("info for %s is not a json object", ticker)
	}

	info := &Info{
		Ticker: ticker,
		fields: make(map[string]gjson.Result),
	}

	parsed.ForEach(func(key, value gjson.Result) bool {
		info.set(key.String(), value)
		return true
	})

	return info, nil
}

// set stores value under key unless the key is already present. Yahoo wraps
// numbers as {"raw": 1.2, "fmt": "1.20"}; the raw member is unwrapped and
// empty objects are ignored.
func (info *Info) set(key string, value gjson.Result) {
	if _, ok := info.fields[key]; ok {
		return
	}

	if value.IsObject() {
		raw := value.Get("raw")
		if !raw.Exists() {
			return
		}
		value = raw
	}

	if value.Type == gjson.Null {
		return
	}

	info.fields[key] = value
}

// Has reports whether key is present with a non-null value
func (info *Info) Has(key string) bool {
	_, ok := info.fields[key]
	return ok
}

// Float returns the numeric value stored at key
func (info *Info) Float(key string) data.Value {
	value, ok := info.fields[key]
	if !ok || value.Type != gjson.Number {
		return data.Unavailable()
	}

	return data.Available(value.Float())
}

// String returns the string value stored at key
func (info *Info) String(key string) (string, bool) {
	value, ok := info.fields[key]
	if !ok || value.Type != gjson.String {
		return "", false
	}

	return value.String(), true
}

// Len returns the number of fields present
func (info *Info) Len() int {
	return len(info.fields)
}
