// Copyright 2024 Police Portal Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/your-org/police-portal-assistant/internal/resilience"
)

// GatewaySender delivers messages through an HTTP SMS gateway. The
// gateway is expected to accept a JSON POST with "to" and "body" fields
// and a bearer token.
type GatewaySender struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGatewaySender creates a sender for the given gateway URL. A nil
// client gets a 30 second timeout default.
func NewGatewaySender(url, apiKey string, client *http.Client, logger *zap.Logger) *GatewaySender {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GatewaySender{
		url:        url,
		apiKey:     apiKey,
		httpClient: client,
		logger:     logger,
	}
}

// statusError marks a gateway rejection that retrying cannot fix.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.code, e.body)
}

// Send implements the Sender interface. Transport failures and gateway
// 5xx responses are retried with backoff; 4xx rejections are not.
func (g *GatewaySender) Send(msg Message) error {
	payload, err := json.Marshal(map[string]string{
		"to":   msg.To,
		"body": msg.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal SMS payload: %w", err)
	}

	config := resilience.BackoffConfig{
		BaseDelay:  500 * time.Millisecond,
		MaxRetries: 2,
		MaxDelay:   5 * time.Second,
		Multiplier: resilience.DefaultMultiplier,
		Jitter:     true,
		RetryOnFunc: func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.code >= 500
			}
			return resilience.DefaultRetryOnFunc(err)
		},
	}

	return resilience.WithExponentialBackoff(context.Background(), g.logger, config, func(ctx context.Context) error {
		return g.deliver(ctx, msg, payload)
	})
}

func (g *GatewaySender) deliver(ctx context.Context, msg Message, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, "POST", g.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: string(body)}
	}

	g.logger.Debug("SMS dispatched via gateway",
		zap.String("to", msg.To),
		zap.Int("status", resp.StatusCode))
	return nil
}
