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
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/valuedash/provider"
)

var _ = Describe("Registry", func() {
	It("creates registered providers", func() {
		Expect(provider.Names()).To(ContainElement("yahoo"))

		prov, err := provider.New("yahoo", provider.Config{RateLimit: 30})
		Expect(err).NotTo(HaveOccurred())
		Expect(prov.Name()).To(Equal("yahoo"))
		Expect(prov.Description()).NotTo(BeEmpty())
	})

	It("rejects unknown providers", func() {
		_, err := provider.New("tiingo", provider.Config{})
		Expect(err).To(MatchError(provider.ErrUnknownProvider))
	})

	It("requests the session cookie before the crumb", func() {
		var (
			mu    sync.Mutex
			calls []string
		)

		mux := http.NewServeMux()
		mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls = append(calls, "cookie")
			mu.Unlock()
			http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls = append(calls, "crumb")
			mu.Unlock()
			if _, err := r.Cookie("A3"); err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, "abc123")
		})
		mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"quoteSummary": {"result": [{"assetProfile": {"industry": "Semiconductors"}}], "error": null}}`)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		prov, err := provider.New("yahoo", provider.Config{
			RateLimit: 60000,
			QueryURL:  server.URL,
			CookieURL: server.URL + "/cookie",
		})
		Expect(err).NotTo(HaveOccurred())

		info, err := prov.Info(context.Background(), "NVDA")
		Expect(err).NotTo(HaveOccurred())
		industry, ok := info.String("industry")
		Expect(ok).To(BeTrue())
		Expect(industry).To(Equal("Semiconductors"))

		mu.Lock()
		defer mu.Unlock()
		Expect(calls).To(Equal([]string{"cookie", "crumb"}))
	})
})
