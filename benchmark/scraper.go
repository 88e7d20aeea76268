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
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/penny-vault/valuedash/data"
	"github.com/rs/zerolog"
)

const (
	DefaultPEURL = "https://pages.stern.nyu.edu/~adamodar/New_Home_Page/datafile/pedata.html"
	DefaultPBURL = "https://pages.stern.nyu.edu/~adamodar/New_Home_Page/datafile/pbvdata.html"

	DefaultPEColumn = 3
	DefaultPBColumn = 2
)

// Options configures the HTTP client used to download benchmark pages
type Options struct {
	InsecureSkipVerify bool
	UserAgent          string
	Timeout            time.Duration
}

// Scraper downloads benchmark pages and parses their first table
type Scraper struct {
	client *resty.Client
}

func New(opts Options) *Scraper {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetTLSClientConfig(&tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec
		})

	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Scraper{
		client: client,
	}
}

// Fetch downloads url and builds the benchmark table name from the ratio
// found at ratioColumn of each row of the page's first table.
func Fetch(ctx context.Context, name, url string, ratioColumn int) (*data.BenchmarkTable, error) {
	return New(Options{}).Fetch(ctx, name, url, ratioColumn)
}

func (scraper *Scraper) Fetch(ctx context.Context, name, url string, ratioColumn int) (*data.BenchmarkTable, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := scraper.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		logger.Error().Err(err).Str("URL", url).Msg("resty returned an error when downloading benchmark page")
		return nil, &ScrapeError{URL: url, Reason: ErrDownload, Err: err}
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("URL", url).Msg("benchmark page returned an invalid HTTP response")
		return nil, &ScrapeError{URL: url, Reason: ErrDownload, Err: fmt.Errorf("http status %d", resp.StatusCode())}
	}

	rows, err := Parse(bytes.NewReader(resp.Body()), ratioColumn)
	if err != nil {
		var scrapeErr *ScrapeError
		if errors.As(err, &scrapeErr) {
			scrapeErr.URL = url
			return nil, scrapeErr
		}

		return nil, &ScrapeError{URL: url, Reason: ErrNoTable, Err: err}
	}

	table := data.NewBenchmarkTable(name, url, time.Now(), rows)
	logger.Debug().Str("Name", name).Str("URL", url).Int("NumIndustries", table.Len()).Msg("scraped benchmark table")

	return table, nil
}

// Parse reads an HTML document and returns one row per body row of its first
// table. The header row is skipped, column 0 is the industry name and the
// ratio text is taken from ratioColumn.
func Parse(r io.Reader, ratioColumn int) ([]data.BenchmarkRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ScrapeError{Reason: ErrNoTable, Err: err}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, &ScrapeError{Reason: ErrNoTable}
	}

	// rows of nested tables belong to those tables
	trs := table.Find("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return row.Closest("table").IsSelection(table)
	})

	rows := make([]data.BenchmarkRow, 0, trs.Length())
	trs.Each(func(idx int, tr *goquery.Selection) {
		if idx == 0 {
			return
		}

		cells := tr.Children().Filter("td, th")
		if cells.Length() == 0 {
			return
		}

		row := data.BenchmarkRow{
			Industry: data.NormalizeIndustry(cells.Eq(0).Text()),
		}

		if ratioColumn >= 0 && ratioColumn < cells.Length() {
			row.Ratio = strings.TrimSpace(cells.Eq(ratioColumn).Text())
			row.HasRatio = true
		}

		rows = append(rows, row)
	})

	return rows, nil
}
