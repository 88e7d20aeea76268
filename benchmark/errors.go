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
package benchmark

import (
	"errors"
	"fmt"
)

var (
	ErrDownload = errors.New("benchmark page could not be downloaded")
	ErrNoTable  = errors.New("benchmark page has no table")
)

// ScrapeError is returned when a benchmark table cannot be built. Reason is
// one of ErrDownload or ErrNoTable; Err is the underlying cause, if any.
type ScrapeError struct {
	URL    string
	Reason error
	Err    error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scrape %s: %s: %s", e.URL, e.Reason, e.Err)
	}

	return fmt.Sprintf("scrape %s: %s", e.URL, e.Reason)
}

func (e *ScrapeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Reason != nil {
		errs = append(errs, e.Reason)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}
