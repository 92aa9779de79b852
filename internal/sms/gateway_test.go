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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestGatewaySenderSend(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewGatewaySender(server.URL, "test-key", nil, zaptest.NewLogger(t))
	err := sender.Send(Message{To: "+919876543210", Body: "Token: 2025/0001"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotPayload["to"] != "+919876543210" {
		t.Errorf("to = %q, want %q", gotPayload["to"], "+919876543210")
	}
	if gotPayload["body"] != "Token: 2025/0001" {
		t.Errorf("body = %q, want %q", gotPayload["body"], "Token: 2025/0001")
	}
}

func TestGatewaySenderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid recipient", http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewGatewaySender(server.URL, "test-key", nil, zaptest.NewLogger(t))
	err := sender.Send(Message{To: "+911234567890", Body: "hello"})
	if err == nil {
		t.Fatal("Send() expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("error = %v, want mention of status 400", err)
	}
}

func TestGatewaySenderUnreachable(t *testing.T) {
	sender := NewGatewaySender("http://127.0.0.1:1/sms", "k", nil, zaptest.NewLogger(t))
	if err := sender.Send(Message{To: "+919876543210", Body: "x"}); err == nil {
		t.Fatal("Send() expected error for unreachable gateway")
	}
}
