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
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/penny-vault/valuedash/data"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	YahooQueryURL  = "https://query1.finance.yahoo.com"
	YahooCookieURL = "https://fc.yahoo.com"

	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultRateLimit = 120
)

var (
	ErrCrumb = errors.New("could not obtain yahoo crumb")
)

// quoteSummaryModules are queried in order; when two modules report the same
// field the first one wins.
var quoteSummaryModules = []string{
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
	"assetProfile",
}

type YahooConfig struct {
	// QueryURL is the base URL for the quoteSummary, chart and crumb endpoints
	QueryURL string

	// CookieURL is requested once to obtain a session cookie before the crumb
	// is fetched. Leave empty to skip the cookie request.
	CookieURL string

	UserAgent string

	// RateLimit is the maximum number of requests per minute
	RateLimit int
}

// Yahoo retrieves quotes, fundamentals and bars from Yahoo Finance
type Yahoo struct {
	client  *resty.Client
	limiter *rate.Limiter
	config  YahooConfig

	mu    sync.Mutex
	crumb string
}

func NewYahoo(config YahooConfig) *Yahoo {
	if config.QueryURL == "" {
		config.QueryURL = YahooQueryURL
	}

	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	if config.RateLimit <= 0 {
		config.RateLimit = DefaultRateLimit
	}

	client := resty.New().
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json,text/html;q=0.9,*/*;q=0.8").
		SetTimeout(30 * time.Second).
		SetTLSClientConfig(&tls.Config{MinVersion: tls.VersionTLS12})

	return &Yahoo{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(config.RateLimit)/float64(60)), 1),
		config:  config,
	}
}

func (yahoo *Yahoo) Name() string {
	return "yahoo"
}

func (yahoo *Yahoo) Description() string {
	return `Yahoo Finance publishes delayed quotes, key statistics, analyst price targets and historical bars for most listed securities. Snapshot fields are read from the quoteSummary endpoint and bars from the chart endpoint.`
}

// Info fetches the quoteSummary modules for ticker and flattens them into a
// single set of fields.
func (yahoo *Yahoo) Info(ctx context.Context, ticker string) (*Info, error) {
	logger := zerolog.Ctx(ctx)

	crumb, err := yahoo.getCrumb(ctx)
	if err != nil {
		return nil, err
	}

	if err := yahoo.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", yahoo.config.QueryURL, ticker)
	resp, err := yahoo.client.R().
		SetContext(ctx).
		SetQueryParam("modules", strings.Join(quoteSummaryModules, ",")).
		SetQueryParam("crumb", crumb).
		Get(url)
	if err != nil {
		logger.Error().Err(err).Str("Ticker", ticker).Msg("resty returned an error when querying quoteSummary")
		return nil, err
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("Ticker", ticker).Str("URL", resp.Request.URL).Msg("yahoo returned an invalid HTTP response")
		return nil, fmt.Errorf("%w (%d): %s", ErrInvalidStatusCode, resp.StatusCode(), ticker)
	}

	return parseQuoteSummary(ticker, resp.Body())
}

func parseQuoteSummary(ticker string, body []byte) (*Info, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("quoteSummary response for %s is not valid json", ticker)
	}

	parsed := gjson.ParseBytes(body)
	if errDesc := parsed.Get("quoteSummary.error.description"); errDesc.Exists() && errDesc.String() != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrNoData, ticker, errDesc.String())
	}

	result := parsed.Get("quoteSummary.result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	info := &Info{
		Ticker: ticker,
		fields: make(map[string]gjson.Result),
	}

	for _, module := range quoteSummaryModules {
		result.Get(module).ForEach(func(key, value gjson.Result) bool {
			info.set(key.String(), value)
			return true
		})
	}

	return info, nil
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				DataGranularity      string `json:"dataGranularity"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches bars from the chart endpoint. Bars with a missing open,
// high, low or close are skipped; a missing volume is recorded as 0.
func (yahoo *Yahoo) History(ctx context.Context, ticker string, req HistoryRequest) ([]*data.Bar, error) {
	logger := zerolog.Ctx(ctx)

	crumb, err := yahoo.getCrumb(ctx)
	if err != nil {
		return nil, err
	}

	if err := yahoo.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := map[string]string{
		"interval": req.Interval,
		"crumb":    crumb,
	}

	if req.Windowed() {
		end := req.End
		if end.IsZero() {
			end = time.Now()
		}
		params["period1"] = strconv.FormatInt(req.Start.Unix(), 10)
		params["period2"] = strconv.FormatInt(end.Unix(), 10)
	} else {
		params["range"] = req.Range
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s", yahoo.config.QueryURL, ticker)
	resp, err := yahoo.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)
	if err != nil {
		logger.Error().Err(err).Str("Ticker", ticker).Msg("resty returned an error when querying chart")
		return nil, err
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("Ticker", ticker).Str("URL", resp.Request.URL).Msg("yahoo returned an invalid HTTP response")
		return nil, fmt.Errorf("%w (%d): %s", ErrInvalidStatusCode, resp.StatusCode(), ticker)
	}

	return parseChart(ticker, resp.Body())
}

func parseChart(ticker string, body []byte) ([]*data.Bar, error) {
	var chart yahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("could not decode chart response for %s: %w", ticker, err)
	}

	if chart.Chart.Error != nil && chart.Chart.Error.Description != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrNoData, ticker, chart.Chart.Error.Description)
	}

	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return []*data.Bar{}, nil
	}

	quote := result.Indicators.Quote[0]
	bars := make([]*data.Bar, 0, len(result.Timestamp))
	for idx, ts := range result.Timestamp {
		open, okOpen := at(quote.Open, idx)
		high, okHigh := at(quote.High, idx)
		low, okLow := at(quote.Low, idx)
		closePrice, okClose := at(quote.Close, idx)
		if !okOpen || !okHigh || !okLow || !okClose {
			continue
		}

		var volume int64
		if idx < len(quote.Volume) && quote.Volume[idx] != nil {
			volume = *quote.Volume[idx]
		}

		bars = append(bars, &data.Bar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
		})
	}

	return bars, nil
}

func at(vals []*float64, idx int) (float64, bool) {
	if idx >= len(vals) || vals[idx] == nil {
		return 0, false
	}

	return *vals[idx], true
}

// getCrumb performs the cookie and crumb handshake the first time it is
// called and caches the crumb for the life of the client.
func (yahoo *Yahoo) getCrumb(ctx context.Context) (string, error) {
	yahoo.mu.Lock()
	defer yahoo.mu.Unlock()

	if yahoo.crumb != "" {
		return yahoo.crumb, nil
	}

	logger := zerolog.Ctx(ctx)

	if yahoo.config.CookieURL != "" {
		if err := yahoo.limiter.Wait(ctx); err != nil {
			return "", err
		}

		// the cookie endpoint normally answers 404 but still sets the session cookie
		if _, err := yahoo.client.R().SetContext(ctx).Get(yahoo.config.CookieURL); err != nil {
			logger.Warn().Err(err).Str("URL", yahoo.config.CookieURL).Msg("could not fetch yahoo session cookie")
		}
	}

	if err := yahoo.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := yahoo.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(yahoo.config.QueryURL + "/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCrumb, err)
	}

	crumb := strings.TrimSpace(string(resp.Body()))
	if resp.StatusCode() >= 300 || crumb == "" || strings.Contains(crumb, "<") {
		logger.Error().Int("StatusCode", resp.StatusCode()).Msg("yahoo crumb request failed")
		return "", fmt.Errorf("%w (%d)", ErrCrumb, resp.StatusCode())
	}

	yahoo.crumb = crumb
	return crumb, nil
}
