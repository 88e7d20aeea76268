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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/valuedash/industry"
	"github.com/penny-vault/valuedash/recommend"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type benchmarkSettings struct {
	PEURL              string `toml:"pe_url"`
	PEColumn           int    `toml:"pe_column"`
	PBURL              string `toml:"pb_url"`
	PBColumn           int    `toml:"pb_column"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

type providerSettings struct {
	Name      string `toml:"name"`
	RateLimit int    `toml:"rate_limit"`
	UserAgent string `toml:"user_agent"`
}

type recommendSettings struct {
	Workers int `toml:"workers"`
}

type industrySettings struct {
	Aliases []industry.Alias `toml:"aliases"`
}

type healthcheckSettings struct {
	PingURL string `toml:"ping_url"`
}

type logSettings struct {
	Level string `toml:"level"`
}

// settings mirrors the layout of $HOME/.valuedash.toml
type settings struct {
	Tickers     []string            `toml:"tickers"`
	Benchmark   benchmarkSettings   `toml:"benchmark"`
	Provider    providerSettings    `toml:"provider"`
	Recommend   recommendSettings   `toml:"recommend"`
	Industry    industrySettings    `toml:"industry"`
	Healthcheck healthcheckSettings `toml:"healthcheck"`
	Log         logSettings         `toml:"log"`
}

func currentSettings() (*settings, error) {
	current := &settings{
		Tickers: configuredTickers(),
		Benchmark: benchmarkSettings{
			PEURL:              viper.GetString("benchmark.pe_url"),
			PEColumn:           viper.GetInt("benchmark.pe_column"),
			PBURL:              viper.GetString("benchmark.pb_url"),
			PBColumn:           viper.GetInt("benchmark.pb_column"),
			InsecureSkipVerify: viper.GetBool("benchmark.insecure_skip_verify"),
		},
		Provider: providerSettings{
			Name:      viper.GetString("provider.name"),
			RateLimit: viper.GetInt("provider.rate_limit"),
			UserAgent: viper.GetString("provider.user_agent"),
		},
		Recommend: recommendSettings{
			Workers: viper.GetInt("recommend.workers"),
		},
		Healthcheck: healthcheckSettings{
			PingURL: viper.GetString("healthcheck.ping_url"),
		},
		Log: logSettings{
			Level: viper.GetString("log.level"),
		},
	}

	if err := viper.UnmarshalKey("industry.aliases", &current.Industry.Aliases); err != nil {
		return nil, err
	}

	return current, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}

	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}

	return nil
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Choose a watch list and save settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		current, err := currentSettings()
		if err != nil {
			log.Fatal().Err(err).Msg("could not read current settings")
		}

		tickers := strings.Join(current.Tickers, " ")
		workers := strconv.Itoa(current.Recommend.Workers)
		rateLimit := strconv.Itoa(current.Provider.RateLimit)
		verify := !current.Benchmark.InsecureSkipVerify

		form := huh.NewForm(
			// Gather the watch list
			huh.NewGroup(
				huh.NewText().
					Title("Which stocks should be rated? (separate tickers with spaces)").
					Value(&tickers).
					Validate(func(s string) error {
						if len(recommend.NormalizeTickers(strings.Fields(s))) == 0 {
							return fmt.Errorf("enter at least one ticker")
						}
						return nil
					}),
			),

			// Get details about how data is fetched
			huh.NewGroup(
				huh.NewInput().
					Title("How many stocks should be fetched at the same time?").
					Value(&workers).
					Validate(validatePositiveInt),

				huh.NewInput().
					Title("What is the maximum number of market data requests per minute?").
					Value(&rateLimit).
					Validate(validatePositiveInt),

				huh.NewConfirm().
					Title("Verify TLS certificates when downloading benchmark tables?").
					Value(&verify),
			),

			// Optional run monitoring
			huh.NewGroup(
				huh.NewInput().
					Title("healthchecks.io ping URL for recommend runs (leave blank to disable):").
					Value(&current.Healthcheck.PingURL),
			),
		)

		err = form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		current.Tickers = recommend.NormalizeTickers(strings.Fields(tickers))
		current.Recommend.Workers, _ = strconv.Atoi(strings.TrimSpace(workers))
		current.Provider.RateLimit, _ = strconv.Atoi(strings.TrimSpace(rateLimit))
		current.Benchmark.InsecureSkipVerify = !verify

		// save settings to config file
		configFN := viper.ConfigFileUsed()
		if configFN == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("could not determine user home directory")
			}
			configFN = filepath.Join(home, ".valuedash.toml")
		}

		log.Info().Str("ConfigFile", configFN).Msg("Saving settings to config file")
		configData, err := toml.Marshal(current)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		keyword := func(s string) string {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render(s)
		}

		fmt.Println(
			lipgloss.NewStyle().
				Width(60).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(1, 2).
				Render(fmt.Sprintf("%s\n\nTickers: %s\nWorkers: %s\nRate limit: %s\nConfig: %s",
					lipgloss.NewStyle().Bold(true).Render("SETTINGS SAVED"),
					keyword(strings.Join(current.Tickers, " ")),
					keyword(strconv.Itoa(current.Recommend.Workers)),
					keyword(strconv.Itoa(current.Provider.RateLimit)),
					keyword(configFN),
				)),
		)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
