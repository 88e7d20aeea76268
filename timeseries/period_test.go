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
package timeseries_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/valuedash/timeseries"
)

var _ = Describe("Period", func() {
	DescribeTable("ParsePeriod",
		func(input string, expected timeseries.Period) {
			period, err := timeseries.ParsePeriod(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(period).To(Equal(expected))
		},
		Entry("1 day", "1 day", timeseries.PeriodDay),
		Entry("1d", "1d", timeseries.PeriodDay),
		Entry("1 week", "1 week", timeseries.PeriodWeek),
		Entry("1wk", "1wk", timeseries.PeriodWeek),
		Entry("upper case with extra spaces", "  1   WEEK ", timeseries.PeriodWeek),
		Entry("1 month", "1 month", timeseries.PeriodMonth),
		Entry("1mo", "1mo", timeseries.PeriodMonth),
		Entry("1 year", "1 year", timeseries.PeriodYear),
		Entry("1y", "1y", timeseries.PeriodYear),
		Entry("max", "max", timeseries.PeriodMax),
	)

	It("rejects unknown periods", func() {
		_, err := timeseries.ParsePeriod("5 years")
		Expect(err).To(MatchError(timeseries.ErrUnknownPeriod))
	})

	DescribeTable("default intervals",
		func(period timeseries.Period, code, interval string) {
			Expect(period.Code()).To(Equal(code))
			Expect(period.DefaultInterval()).To(Equal(interval))
		},
		Entry("1 day", timeseries.PeriodDay, "1d", "1m"),
		Entry("1 week", timeseries.PeriodWeek, "1wk", "30m"),
		Entry("1 month", timeseries.PeriodMonth, "1mo", "1d"),
		Entry("1 year", timeseries.PeriodYear, "1y", "1wk"),
		Entry("max", timeseries.PeriodMax, "max", "1wk"),
	)
})

var _ = Describe("Indicator", func() {
	DescribeTable("ParseIndicator",
		func(input string, expected timeseries.Indicator) {
			indicator, err := timeseries.ParseIndicator(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(indicator).To(Equal(expected))
		},
		Entry("SMA 20", "SMA 20", timeseries.SMA20),
		Entry("sma20", "sma20", timeseries.SMA20),
		Entry("ema-20", "ema-20", timeseries.EMA20),
		Entry("EMA", "EMA", timeseries.EMA20),
	)

	It("rejects unknown indicators", func() {
		_, err := timeseries.ParseIndicator("RSI 14")
		Expect(err).To(MatchError(timeseries.ErrUnknownIndicator))
	})
})
