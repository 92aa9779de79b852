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

// Package memory tracks per-conversation state: the last query, the last
// answer, the active incident topic and a short window of recent queries.
// Each conversation owns its own Memory; instances are not safe for
// concurrent use and callers serialize access per session.
package memory

import (
	"strings"

	"github.com/your-org/police-portal-assistant/internal/lang"
	"github.com/your-org/police-portal-assistant/internal/match"
)

// ContextDepth is how many recent queries a conversation retains.
const ContextDepth = 5

// Question-word prefixes that mark a query as a follow-up to the active
// topic rather than a fresh request.
var (
	englishTriggers = []string{"how", "what", "when", "where", "why", "can you", "tell me", "explain"}
	hindiTriggers   = []string{"कैसे", "क्या", "कब", "कहाँ", "क्यों", "बताएं", "समझाएं"}
	marathiTriggers = []string{"कसे", "काय", "केव्हा", "कुठे", "का", "सांगा", "समजावा"}
)

// followUpTriggersFor selects the trigger list for a language, with
// English for anything outside the supported set.
func followUpTriggersFor(l lang.Language) []string {
	switch l {
	case lang.Hindi:
		return hindiTriggers
	case lang.Marathi:
		return marathiTriggers
	default:
		return englishTriggers
	}
}

// Memory is one conversation's state.
type Memory struct {
	lastQuery    string
	lastResponse string
	lastEntryID  string
	context      []string
}

// New returns an empty conversation memory.
func New() *Memory {
	return &Memory{}
}

// Record stores the latest exchange. entryID is empty when the query
// matched nothing; recording a miss clears the active topic so a later
// question word does not resurrect a stale subject.
func (m *Memory) Record(query, response, entryID string) {
	m.lastQuery = query
	m.lastResponse = response
	m.lastEntryID = entryID

	m.context = append(m.context, query)
	if len(m.context) > ContextDepth {
		m.context = m.context[len(m.context)-ContextDepth:]
	}
}

// Clear resets the conversation to its initial state.
func (m *Memory) Clear() {
	*m = Memory{}
}

// HasTopic reports whether an incident topic is active.
func (m *Memory) HasTopic() bool {
	return m.lastEntryID != ""
}

// TopicID returns the active incident entry id, or "".
func (m *Memory) TopicID() string {
	return m.lastEntryID
}

// LastQuery returns the most recent recorded query.
func (m *Memory) LastQuery() string {
	return m.lastQuery
}

// LastResponse returns the most recent recorded answer.
func (m *Memory) LastResponse() string {
	return m.lastResponse
}

// Context returns the retained recent queries, oldest first. The slice is
// a copy.
func (m *Memory) Context() []string {
	out := make([]string, len(m.context))
	copy(out, m.context)
	return out
}

// IsFollowUp reports whether the query reads as a follow-up in the given
// language: it contains a question trigger and a topic is active. The
// trigger search runs on the normalized query, so "How?" and "how" are
// the same.
func (m *Memory) IsFollowUp(query string, language lang.Language) bool {
	if !m.HasTopic() {
		return false
	}
	normalized := match.Normalize(query)
	if normalized == "" {
		return false
	}
	for _, trigger := range followUpTriggersFor(language) {
		if strings.Contains(normalized, trigger) {
			return true
		}
	}
	return false
}
