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
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/penny-vault/valuedash/provider"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// providersCmd represents the providers command
var providersCmd = &cobra.Command{
	Use:   "providers <name>",
	Short: "List all providers available or get details about a specific provider",
	Run: func(cmd *cobra.Command, args []string) {

		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)

		config := provider.Config{
			UserAgent: viper.GetString("provider.user_agent"),
			RateLimit: viper.GetInt("provider.rate_limit"),
		}

		names := provider.Names()
		if len(args) > 0 {
			names = args[:1]
		}

		builder := strings.Builder{}
		if len(args) == 0 {
			builder.WriteString("# Available Providers\n")
		}

		for _, name := range names {
			prov, err := provider.New(name, config)
			if err != nil {
				log.Fatal().Err(err).Str("ProviderKey", name).Msg("provider not found")
			}

			current := ""
			if name == viper.GetString("provider.name") {
				current = " (active)"
			}

			builder.WriteString(fmt.Sprintf("\n## %s%s\n", prov.Name(), current))
			builder.WriteString(prov.Description())
			builder.WriteString("\n")
		}

		builder.WriteString(fmt.Sprintf("\nRate limit: %d requests per minute\n", config.RateLimit))

		out, err := r.Render(builder.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render provider document")
		}

		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
