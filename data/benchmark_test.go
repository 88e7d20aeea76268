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
package data_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/valuedash/data"
)

var _ = Describe("BenchmarkTable", func() {
	var table *data.BenchmarkTable

	BeforeEach(func() {
		table = data.NewBenchmarkTable(data.PEBenchmark, "http://example.com/pe.html", time.Now(), []data.BenchmarkRow{
			{Industry: "Semiconductor", Ratio: "18.00", HasRatio: true},
			{Industry: "Software (System &\n\t\tApplication)", Ratio: " 31.5 ", HasRatio: true},
			{Industry: "  Apparel  ", Ratio: "NA", HasRatio: true},
			{Industry: "Beverage (Soft)", HasRatio: false},
			{Industry: "   ", Ratio: "1", HasRatio: true},
			{Industry: "Semiconductor", Ratio: "19.00", HasRatio: true},
		})
	})

	It("normalizes whitespace in industry names", func() {
		Expect(data.NormalizeIndustry("  Software (System &\n\t\tApplication) ")).To(Equal("Software (System & Application)"))
		Expect(table.Lookup("Software (System & Application)").MustFloat()).To(Equal(31.5))
	})

	It("drops rows without a name", func() {
		Expect(table.Len()).To(Equal(4))
		Expect(table.Industries()).To(Equal([]string{
			"Apparel",
			"Beverage (Soft)",
			"Semiconductor",
			"Software (System & Application)",
		}))
	})

	It("lets a repeated industry overwrite an earlier one", func() {
		Expect(table.Lookup("Semiconductor").MustFloat()).To(Equal(19.0))
	})

	It("returns unavailable for unparseable ratios", func() {
		Expect(table.Lookup("Apparel").IsAvailable()).To(BeFalse())
		raw, ok := table.Raw("Apparel")
		Expect(ok).To(BeTrue())
		Expect(raw).To(Equal("NA"))
	})

	It("returns unavailable for missing cells and missing industries", func() {
		Expect(table.Lookup("Beverage (Soft)").IsAvailable()).To(BeFalse())
		Expect(table.Lookup("Tobacco").IsAvailable()).To(BeFalse())
		_, ok := table.Raw("Beverage (Soft)")
		Expect(ok).To(BeFalse())
	})

	It("tolerates a nil table", func() {
		var empty *data.BenchmarkTable
		Expect(empty.Lookup("Apparel").IsAvailable()).To(BeFalse())
		Expect(empty.Len()).To(Equal(0))
		Expect(empty.Industries()).To(BeEmpty())
	})

	DescribeTable("ParseRatio",
		func(text string, ok bool, expected float64) {
			v := data.ParseRatio(text)
			Expect(v.IsAvailable()).To(Equal(ok))
			if ok {
				Expect(v.MustFloat()).To(BeNumerically("~", expected, 1e-9))
			}
		},
		Entry("plain", "25.34", true, 25.34),
		Entry("padded", "  4.1 ", true, 4.1),
		Entry("integer", "12", true, 12.0),
		Entry("negative", "-3.5", true, -3.5),
		Entry("NA", "NA", false, 0.0),
		Entry("empty", "", false, 0.0),
		Entry("percent", "12%", false, 0.0),
	)
})
