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
// Package healthcheck reports recommend runs to a healthchecks.io check so
// scheduled runs that stop succeeding are noticed.
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrStatus = errors.New("status code is invalid")
)

// Pinger signals the start, success and failure of a run. A nil Pinger or
// one with an empty ping URL does nothing.
type Pinger struct {
	client  *resty.Client
	pingURL string
}

// New returns a pinger for the check at pingURL, e.g.
// https://hc-ping.com/<uuid>. An empty pingURL returns nil.
func New(pingURL string) *Pinger {
	pingURL = strings.TrimRight(strings.TrimSpace(pingURL), "/")
	if pingURL == "" {
		return nil
	}

	return &Pinger{
		client:  resty.New().SetTimeout(10 * time.Second),
		pingURL: pingURL,
	}
}

// Start marks the beginning of run
func (pinger *Pinger) Start(ctx context.Context, runID uuid.UUID) error {
	return pinger.ping(ctx, "/start", runID, "")
}

// Success marks run as complete; body is attached to the ping
func (pinger *Pinger) Success(ctx context.Context, runID uuid.UUID, body string) error {
	return pinger.ping(ctx, "", runID, body)
}

// Fail marks run as failed; body is attached to the ping
func (pinger *Pinger) Fail(ctx context.Context, runID uuid.UUID, body string) error {
	return pinger.ping(ctx, "/fail", runID, body)
}

func (pinger *Pinger) ping(ctx context.Context, suffix string, runID uuid.UUID, body string) error {
	if pinger == nil {
		return nil
	}

	logger := zerolog.Ctx(ctx)

	resp, err := pinger.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetQueryParam("rid", runID.String()).
		SetBody(body).
		Post(pinger.pingURL + suffix)
	if err != nil {
		logger.Warn().Err(err).Str("Signal", strings.TrimPrefix(suffix, "/")).Msg("health check ping failed")
		return err
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	return nil
}
