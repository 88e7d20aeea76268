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
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/gosimple/slug"
	"github.com/penny-vault/valuedash/recommend"
	"github.com/penny-vault/valuedash/report"
	"github.com/penny-vault/valuedash/timeseries"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	seriesPeriod     string
	seriesInterval   string
	seriesIndicators []string
	seriesExport     bool
	seriesOutput     string
	seriesNoBars     bool
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series [ticker]",
	Short: "Print price history and moving averages for one stock",
	Long: `The series sub-command fetches OHLCV bars for a single stock and prints a
summary of the window (last price, change since the first bar, high, low and
volume) followed by the bars. Timestamps are shown in US Eastern time. If no
ticker is given you are asked to pick one from the configured list.

Periods: 1 day, 1 week, 1 month, 1 year, max
Indicators: SMA 20, EMA 20`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		period, err := timeseries.ParsePeriod(seriesPeriod)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid period")
		}

		indicators := make([]timeseries.Indicator, 0, len(seriesIndicators))
		for _, name := range seriesIndicators {
			indicator, err := timeseries.ParseIndicator(name)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid indicator")
			}
			indicators = append(indicators, indicator)
		}

		var ticker string
		if len(args) > 0 {
			ticker = args[0]
		} else {
			tickers := recommend.NormalizeTickers(configuredTickers())
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Select a stock for detailed analysis:").
						Options(huh.NewOptions(tickers...)...).
						Value(&ticker),
				),
			)

			if err := form.Run(); err != nil {
				log.Fatal().Err(err).Msg("failed to select stock")
			}
		}

		ticker = strings.ToUpper(strings.TrimSpace(ticker))

		prov, err := configuredProvider()
		if err != nil {
			log.Fatal().Err(err).Msg("could not create market data provider")
		}

		service := timeseries.NewService(prov)
		series, err := service.Fetch(ctx, ticker, period, seriesInterval)
		if err != nil {
			log.Fatal().Err(err).Str("Ticker", ticker).Msg("could not fetch series")
		}

		out, err := report.Render(report.SeriesSummary(series, timeseries.Summarize(series)))
		if err != nil {
			log.Fatal().Err(err).Msg("could not render summary document")
		}

		fmt.Print(out)

		if !seriesNoBars {
			fmt.Println(report.SeriesTable(series, indicators))
		}

		outFN := seriesOutput
		if outFN == "" && seriesExport {
			outFN = slug.Make(fmt.Sprintf("%s %s %s", ticker, period, series.Interval)) + ".csv"
		}

		if outFN != "" {
			err := writeOutput(outFN, func(w io.Writer) error {
				return report.WriteSeriesCSV(w, series)
			})
			if err != nil {
				cancel()
				log.Fatal().Err(err).Str("FileName", outFN).Msg("could not write series")
			}

			log.Info().Str("FileName", outFN).Int("NumBars", len(series.Bars)).Msg("saved series")
		}
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd)

	seriesCmd.Flags().StringVarP(&seriesPeriod, "period", "p", string(timeseries.PeriodDay), "lookback period (1 day, 1 week, 1 month, 1 year, max)")
	seriesCmd.Flags().StringVarP(&seriesInterval, "interval", "i", "", "bar interval (default depends on period)")
	seriesCmd.Flags().StringSliceVar(&seriesIndicators, "indicator", []string{}, "indicator to show (SMA 20, EMA 20); may be repeated")
	seriesCmd.Flags().BoolVar(&seriesExport, "export", false, "write bars and indicators to a csv file named after the ticker and period")
	seriesCmd.Flags().StringVarP(&seriesOutput, "output", "o", "", "write bars and indicators to this csv file")
	seriesCmd.Flags().BoolVar(&seriesNoBars, "summary-only", false, "only print the summary")
}
