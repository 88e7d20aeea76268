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
package industry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyAlias       = errors.New("industry alias has an empty label")
	ErrChainedAlias     = errors.New("industry alias target is itself rewritten")
	ErrConflictingAlias = errors.New("industry alias is defined with two targets")
)

// Alias rewrites the provider label Raw to the benchmark label Canonical
type Alias struct {
	Raw       string `mapstructure:"raw" toml:"raw"`
	Canonical string `mapstructure:"canonical" toml:"canonical"`
}

// DefaultAliases maps provider industry labels to the benchmark taxonomy.
// Rules are matched exactly and in order.
var DefaultAliases = []Alias{
	{Raw: "Semiconductors", Canonical: "Semiconductor"},
	{Raw: "Semiconductor Equipment & Materials", Canonical: "Semiconductor"},
	{Raw: "Software - Infrastructure", Canonical: "Software (System & Application)"},
	{Raw: "Information Technology Services", Canonical: "Software (System & Application)"},
	{Raw: "Consumer Electronics", Canonical: "Software (Entertainment)"},
	{Raw: "Internet Content & Information", Canonical: "Software (Internet)"},
	{Raw: "Internet Retail", Canonical: "Software (Internet)"},
	{Raw: "Confectioners", Canonical: "Food Processing"},
	{Raw: "Beverages - Non-Alcoholic", Canonical: "Beverage (Soft)"},
	{Raw: "Credit Services", Canonical: "Financial Svcs. (Non-bank & Insurance)"},
	{Raw: "Footwear & Accessories", Canonical: "Apparel"},
}

// Canonicalizer resolves raw industry labels with an ordered alias table
type Canonicalizer struct {
	aliases []Alias
	lookup  map[string]string
}

var defaultCanonicalizer = mustNew(DefaultAliases)

// Canonicalize rewrites raw with the default alias table. Labels without a
// rule are returned unchanged.
func Canonicalize(raw string) string {
	return defaultCanonicalizer.Canonicalize(raw)
}

// New returns a canonicalizer using the default aliases followed by extra.
// An extra alias that repeats a default rule with the same target is
// accepted; one that would rewrite an existing source to a different target
// or whose target is itself a source is rejected.
func New(extra ...Alias) (*Canonicalizer, error) {
	aliases := make([]Alias, 0, len(DefaultAliases)+len(extra))
	aliases = append(aliases, DefaultAliases...)
	aliases = append(aliases, extra...)

	return build(aliases)
}

func mustNew(aliases []Alias) *Canonicalizer {
	canonicalizer, err := build(aliases)
	if err != nil {
		panic(err)
	}

	return canonicalizer
}

func build(aliases []Alias) (*Canonicalizer, error) {
	canonicalizer := &Canonicalizer{
		aliases: make([]Alias, 0, len(aliases)),
		lookup:  make(map[string]string, len(aliases)),
	}

	for _, alias := range aliases {
		alias.Raw = strings.TrimSpace(alias.Raw)
		alias.Canonical = strings.TrimSpace(alias.Canonical)

		if alias.Raw == "" || alias.Canonical == "" {
			return nil, fmt.Errorf("%w: %q -> %q", ErrEmptyAlias, alias.Raw, alias.Canonical)
		}

		if existing, ok := canonicalizer.lookup[alias.Raw]; ok {
			if existing != alias.Canonical {
				return nil, fmt.Errorf("%w: %q -> %q and %q", ErrConflictingAlias, alias.Raw, existing, alias.Canonical)
			}
			continue
		}

		canonicalizer.lookup[alias.Raw] = alias.Canonical
		canonicalizer.aliases = append(canonicalizer.aliases, alias)
	}

	for _, alias := range canonicalizer.aliases {
		if alias.Raw == alias.Canonical {
			continue
		}

		if next, ok := canonicalizer.lookup[alias.Canonical]; ok && next != alias.Canonical {
			return nil, fmt.Errorf("%w: %q -> %q -> %q", ErrChainedAlias, alias.Raw, alias.Canonical, next)
		}
	}

	return canonicalizer, nil
}

// Canonicalize rewrites raw to its benchmark label. Labels without a rule
// are returned unchanged.
func (canonicalizer *Canonicalizer) Canonicalize(raw string) string {
	if canonical, ok := canonicalizer.lookup[raw]; ok {
		return canonical
	}

	return raw
}

// Aliases returns the rules in the order they were added
func (canonicalizer *Canonicalizer) Aliases() []Alias {
	aliases := make([]Alias, len(canonicalizer.aliases))
	copy(aliases, canonicalizer.aliases)
	return aliases
}
