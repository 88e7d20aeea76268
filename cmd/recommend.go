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
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/hako/durafmt"
	"github.com/penny-vault/valuedash/benchmark"
	"github.com/penny-vault/valuedash/fundamentals"
	"github.com/penny-vault/valuedash/healthcheck"
	"github.com/penny-vault/valuedash/recommend"
	"github.com/penny-vault/valuedash/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	recommendFormat string
	recommendOutput string
	recommendSave   bool
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend [ticker...]",
	Short: "Rate stocks against their industry P/E and P/B benchmarks",
	Long: `The recommend sub-command scrapes the industry P/E and P/B benchmark tables,
fetches fundamentals for each ticker and prints one row per ticker with its
Buy, Hold or Sell rating. If no tickers are given the list in the config file
is used. Tickers that cannot be fetched are shown as unavailable and do not
stop the run.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		format, err := report.ParseFormat(recommendFormat)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid output format")
		}

		tickers := args
		if len(tickers) == 0 {
			tickers = configuredTickers()
		}

		runID := uuid.New()
		pinger := healthcheck.New(viper.GetString("healthcheck.ping_url"))
		if err := pinger.Start(ctx, runID); err != nil {
			log.Warn().Err(err).Msg("could not signal run start")
		}

		fail := func(err error, msg string) {
			if pingErr := pinger.Fail(ctx, runID, fmt.Sprintf("%s: %s", msg, err)); pingErr != nil {
				log.Warn().Err(pingErr).Msg("could not signal run failure")
			}
			cancel()
			log.Fatal().Err(err).Str("RunID", runID.String()).Msg(msg)
		}

		canonicalizer, err := configuredCanonicalizer()
		if err != nil {
			fail(err, "industry aliases are mis-configured")
		}

		prov, err := configuredProvider()
		if err != nil {
			fail(err, "could not create market data provider")
		}

		benchmarks, err := benchmark.Load(ctx, configuredSources())
		if err != nil {
			fail(err, "could not load industry benchmarks")
		}

		engine := recommend.NewEngine(fundamentals.NewFetcher(prov), canonicalizer, benchmarks, viper.GetInt("recommend.workers"))
		rows, summary := engine.BuildWithID(ctx, runID, tickers)

		runTime := summary.EndTime.Sub(summary.StartTime)
		log.Info().Object("Run", summary).Str("RunTime", durafmt.Parse(runTime).String()).Msg("built recommendations")

		outFN := recommendOutput
		if outFN == "" && recommendSave {
			ext := string(format)
			if format == report.FormatTable {
				ext = "txt"
			}
			outFN = fmt.Sprintf("%s.%s", slug.Make(fmt.Sprintf("recommendations %s", summary.StartTime.Format("2006-01-02 1504"))), ext)
		}

		write := func(w io.Writer) error {
			return report.Write(w, format, rows)
		}

		if outFN == "" {
			err = write(os.Stdout)
		} else {
			err = writeOutput(outFN, write)
		}

		if err != nil {
			fail(err, "could not write recommendations")
		}

		if outFN != "" {
			log.Info().Str("FileName", outFN).Msg("saved recommendations")
		}

		if format == report.FormatTable {
			fmt.Fprint(os.Stderr, report.RunSummary(rows, summary))
		}

		if err := pinger.Success(ctx, runID, report.RunSummary(rows, summary)); err != nil {
			log.Warn().Err(err).Msg("could not signal run success")
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVarP(&recommendFormat, "format", "f", "table", "output format (table, csv, json)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "output", "o", "", "write output to file instead of stdout")
	recommendCmd.Flags().BoolVar(&recommendSave, "save", false, "write output to a timestamped file in the current directory")
	recommendCmd.Flags().Int("workers", 1, "number of tickers to fetch concurrently")
	if err := viper.BindPFlag("recommend.workers", recommendCmd.Flags().Lookup("workers")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for workers failed")
	}
}
