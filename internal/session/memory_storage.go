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

package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStorage provides in-memory session storage with LRU eviction.
type MemoryStorage struct {
	sessions    map[string]*Session
	accessTime  map[string]time.Time
	maxSessions int
	mutex       sync.RWMutex
}

// NewMemoryStorage creates an in-memory session store capped at
// maxSessions, evicting least recently used sessions beyond that.
func NewMemoryStorage(maxSessions int) *MemoryStorage {
	return &MemoryStorage{
		sessions:    make(map[string]*Session),
		accessTime:  make(map[string]time.Time),
		maxSessions: maxSessions,
	}
}

// Get retrieves a session by ID.
func (m *MemoryStorage) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, exists := m.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	m.accessTime[sessionID] = time.Now()
	return s, nil
}

// Put stores a session, evicting the least recently used one when the
// store is full.
func (m *MemoryStorage) Put(_ context.Context, session *Session) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.sessions[session.ID]; !exists && len(m.sessions) >= m.maxSessions {
		m.evictOldest()
	}

	m.sessions[session.ID] = session
	m.accessTime[session.ID] = time.Now()
	return nil
}

// Delete removes a session.
func (m *MemoryStorage) Delete(_ context.Context, sessionID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.sessions[sessionID]; !exists {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	delete(m.sessions, sessionID)
	delete(m.accessTime, sessionID)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemoryStorage) Len(_ context.Context) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions), nil
}

// Cleanup removes expired sessions and reports how many it removed.
// The expiry read takes each session's lock because RecordTurn extends
// ExpiresAt concurrently; locking order is always storage then session.
func (m *MemoryStorage) Cleanup(_ context.Context) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	removed := 0
	for id, s := range m.sessions {
		s.Lock()
		expired := s.Expired()
		s.Unlock()
		if expired {
			delete(m.sessions, id)
			delete(m.accessTime, id)
			removed++
		}
	}
	return removed, nil
}

// Close drops all sessions.
func (m *MemoryStorage) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessions = make(map[string]*Session)
	m.accessTime = make(map[string]time.Time)
	return nil
}

func (m *MemoryStorage) evictOldest() {
	var oldestID string
	var oldestTime time.Time

	for id, at := range m.accessTime {
		if oldestID == "" || at.Before(oldestTime) {
			oldestID = id
			oldestTime = at
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
		delete(m.accessTime, oldestID)
	}
}
