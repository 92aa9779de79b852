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

// Package session manages conversation sessions for the assistant. Each
// session carries a language, its own conversation memory and a transcript
// of the exchanges so far. Sessions live in memory with LRU eviction and
// TTL-based cleanup.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/your-org/police-portal-assistant/internal/lang"
	"github.com/your-org/police-portal-assistant/internal/memory"
)

// Config holds configuration for session management.
type Config struct {
	DefaultTTL      time.Duration `json:"default_ttl"`
	MaxSessions     int           `json:"max_sessions"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		DefaultTTL:      30 * time.Minute,
		MaxSessions:     1000,
		CleanupInterval: 5 * time.Minute,
	}
}

// Turn is one query/answer exchange in a session's transcript.
type Turn struct {
	Query      string    `json:"query"`
	Answer     string    `json:"answer"`
	EntryID    string    `json:"entry_id,omitempty"`
	Contextual bool      `json:"contextual,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Session is one conversation. The embedded mutex serializes concurrent
// requests for the same session id; callers hold it across the whole
// answer-and-record sequence.
type Session struct {
	mu sync.Mutex

	ID        string         `json:"id"`
	Language  lang.Language  `json:"language"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	Turns     []Turn         `json:"turns"`
	Memory    *memory.Memory `json:"-"`
}

// Lock serializes access to the session across one answer exchange.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Expired reports whether the session's TTL has lapsed. RecordTurn
// extends the expiry under the session lock, so callers hold it here too.
func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}

// Storage is the session store. Implementations hold live pointers;
// mutation happens through the Session's own lock.
type Storage interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
	Len(ctx context.Context) (int, error)
	Cleanup(ctx context.Context) (int, error)
	Close() error
}

// Manager handles session lifecycle and storage operations.
type Manager struct {
	storage Storage
	config  Config
	logger  *zap.Logger
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewManager creates a session manager backed by in-memory storage and
// starts the cleanup loop when a cleanup interval is configured.
func NewManager(config Config, logger *zap.Logger) (*Manager, error) {
	if config.MaxSessions <= 0 {
		return nil, fmt.Errorf("max_sessions must be positive, got %d", config.MaxSessions)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		storage: NewMemoryStorage(config.MaxSessions),
		config:  config,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		m.wg.Add(1)
		go m.cleanupLoop()
	}

	return m, nil
}

// Create starts a new session in the given language.
func (m *Manager) Create(ctx context.Context, language lang.Language) (*Session, error) {
	if !language.Valid() {
		return nil, fmt.Errorf("invalid language %q", language)
	}

	now := time.Now()
	s := &Session{
		ID:        GenerateSessionID(),
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.config.DefaultTTL),
		Memory:    memory.New(),
	}

	if err := m.storage.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	m.logger.Info("created session",
		zap.String("session_id", s.ID),
		zap.String("language", string(language)))
	return s, nil
}

// Get retrieves a live session. Expired sessions are treated as missing
// and removed.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	s, err := m.storage.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	expired := s.Expired()
	s.Unlock()
	if expired {
		_ = m.storage.Delete(ctx, sessionID)
		return nil, fmt.Errorf("session expired: %s", sessionID)
	}
	return s, nil
}

// RecordTurn appends an exchange to the session transcript and extends
// the TTL. The caller holds the session lock.
func (m *Manager) RecordTurn(s *Session, turn Turn) {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	s.Turns = append(s.Turns, turn)
	s.UpdatedAt = time.Now()
	s.ExpiresAt = s.UpdatedAt.Add(m.config.DefaultTTL)
}

// SetLanguage switches the session language. Changing language resets the
// conversation memory so follow-up detection in the new language starts
// from a clean slate. The caller holds the session lock.
func (m *Manager) SetLanguage(s *Session, language lang.Language) error {
	if !language.Valid() {
		return fmt.Errorf("invalid language %q", language)
	}
	if s.Language == language {
		return nil
	}

	s.Language = language
	s.Memory.Clear()
	s.UpdatedAt = time.Now()

	m.logger.Debug("session language switched",
		zap.String("session_id", s.ID),
		zap.String("language", string(language)))
	return nil
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	if err := m.storage.Delete(ctx, sessionID); err != nil {
		return err
	}
	m.logger.Info("deleted session", zap.String("session_id", sessionID))
	return nil
}

// Count returns the number of stored sessions, expired included.
func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.storage.Len(ctx)
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			removed, err := m.storage.Cleanup(ctx)
			cancel()
			if err != nil {
				m.logger.Error("session cleanup failed", zap.Error(err))
			} else if removed > 0 {
				m.logger.Debug("session cleanup", zap.Int("removed", removed))
			}
		case <-m.stopCh:
			return
		}
	}
}

// Close stops the cleanup loop and releases storage.
func (m *Manager) Close() error {
	close(m.stopCh)
	m.wg.Wait()
	return m.storage.Close()
}
