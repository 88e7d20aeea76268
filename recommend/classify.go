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
package recommend

import (
	"github.com/penny-vault/valuedash/data"
)

// Classify compares a stock's P/E and P/B against its industry. Buy when both
// are below the industry, Sell when both are above, Hold otherwise including
// whenever a value is unavailable.
func Classify(pe, industryPE, pb, industryPB data.Value) data.Recommendation {
	peLess, peOk := pe.Less(industryPE)
	pbLess, pbOk := pb.Less(industryPB)
	if !peOk || !pbOk {
		return data.Hold
	}

	if peLess && pbLess {
		return data.Buy
	}

	peGreater, _ := pe.Greater(industryPE)
	pbGreater, _ := pb.Greater(industryPB)
	if peGreater && pbGreater {
		return data.Sell
	}

	return data.Hold
}
