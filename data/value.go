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
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// Value is a float64 that may be unavailable. The zero value is unavailable.
type Value struct {
	val   float64
	valid bool
}

// Available wraps f. NaN and infinities are treated as unavailable.
func Available(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}

	return Value{val: f, valid: true}
}

// Unavailable returns the explicit missing marker.
func Unavailable() Value {
	return Value{}
}

func (v Value) IsAvailable() bool {
	return v.valid
}

// Float returns the underlying number and whether it is available.
func (v Value) Float() (float64, bool) {
	return v.val, v.valid
}

// MustFloat returns the underlying number and panics when v is unavailable.
func (v Value) MustFloat() float64 {
	if !v.valid {
		panic("data: MustFloat called on unavailable value")
	}

	return v.val
}

// Or returns the underlying number or def when unavailable.
func (v Value) Or(def float64) float64 {
	if !v.valid {
		return def
	}

	return v.val
}

func (v Value) Mul(o Value) Value {
	if !v.valid || !o.valid {
		return Value{}
	}

	return Available(v.val * o.val)
}

func (v Value) Add(o Value) Value {
	if !v.valid || !o.valid {
		return Value{}
	}

	return Available(v.val + o.val)
}

func (v Value) Sub(o Value) Value {
	if !v.valid || !o.valid {
		return Value{}
	}

	return Available(v.val - o.val)
}

// Div returns v / o; division by zero is unavailable.
func (v Value) Div(o Value) Value {
	if !v.valid || !o.valid || o.val == 0 {
		return Value{}
	}

	return Available(v.val / o.val)
}

func (v Value) AddScalar(f float64) Value {
	return v.Add(Available(f))
}

func (v Value) MulScalar(f float64) Value {
	return v.Mul(Available(f))
}

// Less reports v < o. ok is false when either operand is unavailable.
func (v Value) Less(o Value) (less bool, ok bool) {
	if !v.valid || !o.valid {
		return false, false
	}

	return v.val < o.val, true
}

// Greater reports v > o. ok is false when either operand is unavailable.
func (v Value) Greater(o Value) (greater bool, ok bool) {
	if !v.valid || !o.valid {
		return false, false
	}

	return v.val > o.val, true
}

func (v Value) String() string {
	if !v.valid {
		return "N/A"
	}

	return fmt.Sprintf("%.2f", v.val)
}

// MarshalCSV is used by gocsv when writing report rows
func (v Value) MarshalCSV() (string, error) {
	if !v.valid {
		return "", nil
	}

	return fmt.Sprintf("%g", v.val), nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}

	return json.Marshal(v.val)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value{}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	*v = Available(f)
	return nil
}
