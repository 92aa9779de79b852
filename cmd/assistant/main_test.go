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

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/police-portal-assistant/internal/assistant"
	"github.com/your-org/police-portal-assistant/internal/config"
	"github.com/your-org/police-portal-assistant/internal/health"
	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/querylog"
	"github.com/your-org/police-portal-assistant/internal/session"
	"github.com/your-org/police-portal-assistant/internal/sms"
	"go.uber.org/zap/zaptest"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ServiceDependencies) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	store, err := knowledge.Load(logger)
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	sessionManager, err := session.NewManager(session.Config{
		DefaultTTL:  30 * time.Minute,
		MaxSessions: 100,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	t.Cleanup(func() { _ = sessionManager.Close() })

	queryLog, err := querylog.NewStore(filepath.Join(t.TempDir(), "assistant.db"))
	if err != nil {
		t.Fatalf("failed to open query log: %v", err)
	}
	t.Cleanup(func() { _ = queryLog.Close() })

	cfg := &config.Config{}
	cfg.Assistant.MatchThreshold = 0.3
	cfg.Assistant.DefaultLanguage = "english"
	cfg.Session.MaxSessions = 100

	deps := &ServiceDependencies{
		Store:          store,
		Engine:         assistant.NewEngine(store, cfg.Assistant.MatchThreshold, logger),
		SessionManager: sessionManager,
		QueryLog:       queryLog,
		Notifier:       sms.NewNotifier(sms.NewLogSender(logger), logger),
		Logger:         logger,
		Config:         cfg,
	}

	healthManager := health.NewManager("assistant", ServiceVersion, logger)
	setupHealthChecks(healthManager, deps)

	return setupRouter(deps, healthManager), deps
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, router *gin.Engine, language string) SessionResponse {
	t.Helper()
	var body interface{}
	if language != "" {
		body = SessionRequest{Language: language}
	}
	w := doJSON(t, router, http.MethodPost, "/sessions", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /sessions = %d, want 201: %s", w.Code, w.Body.String())
	}
	var resp SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse session response: %v", err)
	}
	return resp
}

func TestCreateSession(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := createSession(t, router, "")
	if !strings.HasPrefix(resp.SessionID, "session_") {
		t.Errorf("SessionID = %q, want session_ prefix", resp.SessionID)
	}
	if resp.Language != "english" {
		t.Errorf("Language = %q, want english", resp.Language)
	}
	if resp.Welcome == "" {
		t.Error("Welcome is empty")
	}

	hindi := createSession(t, router, "hindi")
	if hindi.Language != "hindi" {
		t.Errorf("Language = %q, want hindi", hindi.Language)
	}
	if hindi.Welcome == resp.Welcome {
		t.Error("Hindi welcome should differ from English welcome")
	}
}

func TestCreateSessionInvalidLanguage(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/sessions", SessionRequest{Language: "german"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChatFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	s := createSession(t, router, "")

	w := doJSON(t, router, http.MethodPost, "/chat", ChatRequest{
		SessionID: s.SessionID,
		Message:   "I lost my phone",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /chat = %d: %s", w.Code, w.Body.String())
	}

	var resp ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse chat response: %v", err)
	}
	if resp.EntryID != "1" {
		t.Errorf("EntryID = %q, want 1", resp.EntryID)
	}
	if resp.Contextual {
		t.Error("first answer should not be contextual")
	}
	if !strings.Contains(resp.Text, "Mobile phone loss / theft") {
		t.Errorf("answer does not name the incident: %q", resp.Text)
	}

	// Follow-up on the active topic.
	w = doJSON(t, router, http.MethodPost, "/chat", ChatRequest{
		SessionID: s.SessionID,
		Message:   "how long will it take",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("follow-up POST /chat = %d: %s", w.Code, w.Body.String())
	}
	var followUp ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &followUp); err != nil {
		t.Fatalf("failed to parse follow-up response: %v", err)
	}
	if !followUp.Contextual {
		t.Error("follow-up should be contextual")
	}
	if followUp.EntryID != "1" {
		t.Errorf("follow-up EntryID = %q, want 1", followUp.EntryID)
	}
}

func TestChatUnknownSession(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/chat", ChatRequest{
		SessionID: "session_does_not_exist",
		Message:   "hello",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestChatEmptyMessageAfterSanitize(t *testing.T) {
	router, _ := newTestRouter(t)
	s := createSession(t, router, "")

	w := doJSON(t, router, http.MethodPost, "/chat", ChatRequest{
		SessionID: s.SessionID,
		Message:   "\x01\x02   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChangeSessionLanguage(t *testing.T) {
	router, _ := newTestRouter(t)
	s := createSession(t, router, "")

	w := doJSON(t, router, http.MethodPut, "/sessions/"+s.SessionID+"/language", LanguageRequest{Language: "marathi"})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT language = %d: %s", w.Code, w.Body.String())
	}
	var resp SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Language != "marathi" {
		t.Errorf("Language = %q, want marathi", resp.Language)
	}

	w = doJSON(t, router, http.MethodPut, "/sessions/"+s.SessionID+"/language", LanguageRequest{Language: "french"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid language status = %d, want 400", w.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	router, _ := newTestRouter(t)
	s := createSession(t, router, "")

	w := doJSON(t, router, http.MethodDelete, "/sessions/"+s.SessionID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("DELETE = %d, want 204", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/sessions/"+s.SessionID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second DELETE = %d, want 404", w.Code)
	}
}

func TestFileReport(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/reports", ReportRequest{
		EntryID: "1",
		Phone:   "9876543210",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /reports = %d: %s", w.Code, w.Body.String())
	}

	var resp ReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse report response: %v", err)
	}
	if !regexp.MustCompile(`^\d{4}/\d{4}$`).MatchString(resp.Token) {
		t.Errorf("Token = %q, want YEAR/NNNN shape", resp.Token)
	}
	if resp.Incident != "Mobile phone loss / theft" {
		t.Errorf("Incident = %q", resp.Incident)
	}
	if !strings.Contains(resp.SMS, resp.Token) {
		t.Errorf("SMS %q does not carry token %q", resp.SMS, resp.Token)
	}
	if resp.SentTo != "+919876543210" {
		t.Errorf("SentTo = %q, want +919876543210", resp.SentTo)
	}
}

func TestFileReportUnknownEntry(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/reports", ReportRequest{EntryID: "999"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestFileReportInvalidPhone(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/reports", ReportRequest{
		EntryID: "2",
		Phone:   "12345",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	// The token is still issued; it is reported alongside the error.
	if !strings.Contains(w.Body.String(), "token") {
		t.Errorf("response should carry the issued token: %s", w.Body.String())
	}
}

func TestTopicsEndpoint(t *testing.T) {
	router, deps := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/topics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /topics = %d", w.Code)
	}
	var resp struct {
		Topics []string `json:"topics"`
		Count  int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse topics: %v", err)
	}
	if resp.Count != deps.Store.Len() {
		t.Errorf("Count = %d, want %d", resp.Count, deps.Store.Len())
	}
	if len(resp.Topics) == 0 || resp.Topics[0] != "Mobile phone loss / theft" {
		t.Errorf("Topics[0] unexpected: %v", resp.Topics)
	}
}

func TestStationAndContactsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/station", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /station = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Panjim Police Station") {
		t.Errorf("station response missing name: %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/contacts?lang=hindi", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /contacts = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/station?lang=german", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid lang status = %d, want 400", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	s := createSession(t, router, "")

	doJSON(t, router, http.MethodPost, "/chat", ChatRequest{
		SessionID: s.SessionID,
		Message:   "I lost my phone",
	})

	w := doJSON(t, router, http.MethodGet, "/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /stats = %d", w.Code)
	}
	var stats querylog.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to parse stats: %v", err)
	}
	if stats.TotalTurns != 1 {
		t.Errorf("TotalTurns = %d, want 1", stats.TotalTurns)
	}
	if stats.Matched != 1 {
		t.Errorf("Matched = %d, want 1", stats.Matched)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d: %s", w.Code, w.Body.String())
	}
	var resp health.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse health response: %v", err)
	}
	if resp.Status != health.StatusHealthy {
		t.Errorf("Status = %q, want %q", resp.Status, health.StatusHealthy)
	}
	if len(resp.Dependencies) != 3 {
		t.Errorf("got %d dependencies, want 3", len(resp.Dependencies))
	}
}
