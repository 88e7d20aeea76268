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
	"os"
	"strings"

	"github.com/penny-vault/valuedash/benchmark"
	"github.com/penny-vault/valuedash/provider"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// DefaultTickers is the watch list used when neither the command line nor
// the config file names any tickers
var DefaultTickers = []string{
	"AAPL", "MSFT", "AMZN", "GOOGL", "META", "HSY", "KO", "PEP",
	"NKE", "V", "INTC", "NVDA", "AMD", "IBM", "ORCL", "ASML",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "valuedash",
	Short: "valuedash rates stocks against industry valuation benchmarks",
	Long: `valuedash is a command line dashboard that pulls quotes and fundamentals
for a list of stocks, compares each stock's price/earnings and price/book
ratios with the industry averages published by Aswath Damodaran at NYU
Stern, and labels the stock Buy, Hold or Sell:

	* Buy when both ratios are below the industry average
	* Sell when both ratios are above the industry average
	* Hold otherwise, or when a ratio is not available

For a single stock valuedash can also print recent price history along with
20 period simple and exponential moving averages.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	viper.SetDefault("tickers", DefaultTickers)
	viper.SetDefault("benchmark.pe_url", benchmark.DefaultPEURL)
	viper.SetDefault("benchmark.pb_url", benchmark.DefaultPBURL)
	viper.SetDefault("benchmark.pe_column", benchmark.DefaultPEColumn)
	viper.SetDefault("benchmark.pb_column", benchmark.DefaultPBColumn)
	viper.SetDefault("benchmark.insecure_skip_verify", false)
	viper.SetDefault("provider.name", "yahoo")
	viper.SetDefault("provider.rate_limit", provider.DefaultRateLimit)
	viper.SetDefault("provider.user_agent", provider.DefaultUserAgent)
	viper.SetDefault("recommend.workers", 1)
	viper.SetDefault("healthcheck.ping_url", "")
	viper.SetDefault("log.level", "info")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.valuedash.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for log-level failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".valuedash" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".valuedash")
	}

	viper.SetEnvPrefix("valuedash")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}

	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.Warn().Err(err).Str("Level", viper.GetString("log.level")).Msg("invalid log level; using info")
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
}
