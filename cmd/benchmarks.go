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
	"time"

	"github.com/penny-vault/valuedash/benchmark"
	"github.com/penny-vault/valuedash/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// benchmarksCmd represents the benchmarks command
var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Display the industry P/E and P/B benchmark tables",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		benchmarks, err := benchmark.Load(ctx, configuredSources())
		if err != nil {
			log.Fatal().Err(err).Msg("could not load industry benchmarks")
		}

		out, err := report.Render(report.BenchmarkSummary(benchmarks, time.Now()))
		if err != nil {
			log.Fatal().Err(err).Msg("could not render benchmark document")
		}

		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}
