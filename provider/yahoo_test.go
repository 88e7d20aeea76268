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
package provider_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/valuedash/provider"
)

const quoteSummaryBody = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {
        "regularMarketPreviousClose": {"raw": 189.5, "fmt": "189.50"},
        "trailingPE": {"raw": 29.4, "fmt": "29.40"},
        "forwardPE": {"raw": 27.0, "fmt": "27.00"},
        "dividendYield": {"raw": 0.0051, "fmt": "0.51%"}
      },
      "defaultKeyStatistics": {
        "forwardPE": {"raw": 99.0, "fmt": "99.00"},
        "priceToBook": {"raw": 47.2, "fmt": "47.20"},
        "trailingEps": {"raw": 6.43, "fmt": "6.43"}
      },
      "financialData": {
        "targetMeanPrice": {"raw": 210.0, "fmt": "210.00"},
        "targetMedianPrice": {"raw": 212.5, "fmt": "212.50"},
        "earningsGrowth": {}
      },
      "assetProfile": {
        "industry": "Consumer Electronics",
        "sector": "Technology"
      }
    }],
    "error": null
  }
}`

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "exchangeTimezoneName": "America/New_York", "dataGranularity": "1d"},
      "timestamp": [1704205800, 1704292200, 1704378600],
      "indicators": {
        "quote": [{
          "open": [187.15, null, 182.15],
          "high": [188.44, 185.88, 183.09],
          "low": [183.89, 183.43, 180.88],
          "close": [185.64, 184.25, 181.91],
          "volume": [82488700, 58414500, null]
        }]
      }
    }],
    "error": null
  }
}`

var _ = Describe("Yahoo", func() {
	var (
		server       *httptest.Server
		yahoo        *provider.Yahoo
		crumbCalls   atomic.Int32
		cookieCalls  atomic.Int32
		lastQuery    atomic.Value
		crumbStatus  int
		chartPayload string
		ctx          context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		crumbCalls.Store(0)
		cookieCalls.Store(0)
		crumbStatus = http.StatusOK
		chartPayload = chartBody

		mux := http.NewServeMux()
		mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
			cookieCalls.Add(1)
			http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
			crumbCalls.Add(1)
			w.WriteHeader(crumbStatus)
			fmt.Fprint(w, "abc123")
		})
		mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
			lastQuery.Store(r.URL.RawQuery)
			if strings.HasSuffix(r.URL.Path, "/MISSING") {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"quoteSummary": {"result": null, "error": {"code": "Not Found", "description": "Quote not found for ticker symbol: MISSING"}}}`)
				return
			}
			fmt.Fprint(w, quoteSummaryBody)
		})
		mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
			lastQuery.Store(r.URL.RawQuery)
			fmt.Fprint(w, chartPayload)
		})

		server = httptest.NewServer(mux)
		yahoo = provider.NewYahoo(provider.YahooConfig{
			QueryURL:  server.URL,
			CookieURL: server.URL + "/cookie",
			RateLimit: 60000,
		})
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Info", func() {
		It("flattens quoteSummary modules", func() {
			info, err := yahoo.Info(ctx, "AAPL")
			Expect(err).NotTo(HaveOccurred())

			Expect(info.Ticker).To(Equal("AAPL"))
			Expect(info.Float("regularMarketPreviousClose").MustFloat()).To(Equal(189.5))
			Expect(info.Float("trailingPE").MustFloat()).To(Equal(29.4))
			Expect(info.Float("priceToBook").MustFloat()).To(Equal(47.2))
			Expect(info.Float("dividendYield").MustFloat()).To(Equal(0.0051))
			Expect(info.Float("targetMedianPrice").MustFloat()).To(Equal(212.5))
			Expect(info.Float("earningsGrowth").IsAvailable()).To(BeFalse())

			industry, ok := info.String("industry")
			Expect(ok).To(BeTrue())
			Expect(industry).To(Equal("Consumer Electronics"))
		})

		It("keeps the first module's value when keys collide", func() {
			info, err := yahoo.Info(ctx, "AAPL")
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Float("forwardPE").MustFloat()).To(Equal(27.0))
		})

		It("sends the crumb and requested modules", func() {
			_, err := yahoo.Info(ctx, "AAPL")
			Expect(err).NotTo(HaveOccurred())

			query := lastQuery.Load().(string)
			Expect(query).To(ContainSubstring("crumb=abc123"))
			Expect(query).To(ContainSubstring("modules=summaryDetail%2CdefaultKeyStatistics%2CfinancialData%2CassetProfile"))
		})

		It("performs the crumb handshake once", func() {
			_, err := yahoo.Info(ctx, "AAPL")
			Expect(err).NotTo(HaveOccurred())
			_, err = yahoo.Info(ctx, "MSFT")
			Expect(err).NotTo(HaveOccurred())

			Expect(cookieCalls.Load()).To(Equal(int32(1)))
			Expect(crumbCalls.Load()).To(Equal(int32(1)))
		})

		It("returns an error for invalid status codes", func() {
			_, err := yahoo.Info(ctx, "MISSING")
			Expect(err).To(MatchError(provider.ErrInvalidStatusCode))
		})

		It("fails when a crumb cannot be obtained", func() {
			crumbStatus = http.StatusUnauthorized
			_, err := yahoo.Info(ctx, "AAPL")
			Expect(err).To(MatchError(provider.ErrCrumb))
		})
	})

	Describe("History", func() {
		It("decodes bars and skips incomplete rows", func() {
			bars, err := yahoo.History(ctx, "AAPL", provider.HistoryRequest{Range: "1mo", Interval: "1d"})
			Expect(err).NotTo(HaveOccurred())
			Expect(bars).To(HaveLen(2))

			Expect(bars[0].Timestamp).To(Equal(time.Unix(1704205800, 0).UTC()))
			Expect(bars[0].Close).To(Equal(185.64))
			Expect(bars[0].Volume).To(Equal(int64(82488700)))

			Expect(bars[1].Close).To(Equal(181.91))
			Expect(bars[1].Volume).To(Equal(int64(0)))
		})

		It("passes the native range", func() {
			_, err := yahoo.History(ctx, "AAPL", provider.HistoryRequest{Range: "1y", Interval: "1wk"})
			Expect(err).NotTo(HaveOccurred())

			query := lastQuery.Load().(string)
			Expect(query).To(ContainSubstring("range=1y"))
			Expect(query).To(ContainSubstring("interval=1wk"))
			Expect(query).NotTo(ContainSubstring("period1"))
		})

		It("passes an explicit window", func() {
			end := time.Date(2024, 3, 8, 15, 0, 0, 0, time.UTC)
			start := end.Add(-7 * 24 * time.Hour)
			_, err := yahoo.History(ctx, "AAPL", provider.HistoryRequest{Start: start, End: end, Interval: "30m"})
			Expect(err).NotTo(HaveOccurred())

			query := lastQuery.Load().(string)
			Expect(query).To(ContainSubstring(fmt.Sprintf("period1=%d", start.Unix())))
			Expect(query).To(ContainSubstring(fmt.Sprintf("period2=%d", end.Unix())))
			Expect(query).NotTo(ContainSubstring("range="))
		})

		It("reports chart errors", func() {
			chartPayload = `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`
			_, err := yahoo.History(ctx, "GONE", provider.HistoryRequest{Range: "1d", Interval: "1m"})
			Expect(err).To(MatchError(provider.ErrNoData))
		})
	})
})
