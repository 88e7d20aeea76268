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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry defaults", func() {
	It("points the yahoo provider at the production session cookie host", func() {
		prov, err := New("yahoo", Config{})
		Expect(err).NotTo(HaveOccurred())

		yahoo, ok := prov.(*Yahoo)
		Expect(ok).To(BeTrue())
		Expect(yahoo.config.CookieURL).To(Equal(YahooCookieURL))
		Expect(yahoo.config.QueryURL).To(Equal(YahooQueryURL))
	})
})
