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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/penny-vault/valuedash/benchmark"
	"github.com/penny-vault/valuedash/industry"
	"github.com/penny-vault/valuedash/provider"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// commandContext returns a context carrying the global logger that is
// cancelled on interrupt
func commandContext() (context.Context, context.CancelFunc) {
	ctx := log.Logger.WithContext(context.Background())
	return signal.NotifyContext(ctx, os.Interrupt)
}

func configuredTickers() []string {
	tickers := viper.GetStringSlice("tickers")
	if len(tickers) == 0 {
		return DefaultTickers
	}

	return tickers
}

func configuredSources() benchmark.Sources {
	return benchmark.Sources{
		PEURL:    viper.GetString("benchmark.pe_url"),
		PEColumn: viper.GetInt("benchmark.pe_column"),
		PBURL:    viper.GetString("benchmark.pb_url"),
		PBColumn: viper.GetInt("benchmark.pb_column"),
		Options: benchmark.Options{
			InsecureSkipVerify: viper.GetBool("benchmark.insecure_skip_verify"),
			UserAgent:          viper.GetString("provider.user_agent"),
		},
	}
}

func configuredProvider() (provider.Provider, error) {
	return provider.New(viper.GetString("provider.name"), provider.Config{
		UserAgent: viper.GetString("provider.user_agent"),
		RateLimit: viper.GetInt("provider.rate_limit"),
	})
}

func configuredCanonicalizer() (*industry.Canonicalizer, error) {
	var aliases []industry.Alias
	if err := viper.UnmarshalKey("industry.aliases", &aliases); err != nil {
		return nil, err
	}

	return industry.New(aliases...)
}

// writeOutput creates fn, hands it to write and closes it. The file is
// closed even when write fails.
func writeOutput(fn string, write func(io.Writer) error) error {
	fh, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("create %s: %w", fn, err)
	}

	writeErr := write(fh)
	closeErr := fh.Close()
	if writeErr != nil || closeErr != nil {
		return fmt.Errorf("write %s: %w", fn, errors.Join(writeErr, closeErr))
	}

	return nil
}
