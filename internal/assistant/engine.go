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

// Package assistant wires matching, conversation memory and response
// synthesis into the query answering flow.
package assistant

import (
	"go.uber.org/zap"

	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
	"github.com/your-org/police-portal-assistant/internal/match"
	"github.com/your-org/police-portal-assistant/internal/memory"
	"github.com/your-org/police-portal-assistant/internal/synth"
)

// Answer is the outcome of one query.
type Answer struct {
	Text string `json:"text"`
	// EntryID is the catalog entry the answer was rendered from, empty
	// for the no-match fallback.
	EntryID string `json:"entry_id,omitempty"`
	// Contextual is true when the answer re-rendered the active topic
	// for a follow-up question instead of running a fresh match.
	Contextual bool `json:"contextual"`
	// Score is the match score, zero for contextual answers and misses.
	Score float64 `json:"score"`
}

// Matched reports whether the answer came from a catalog entry.
func (a Answer) Matched() bool {
	return a.EntryID != ""
}

// Engine answers queries against the catalog. One engine serves all
// conversations; per-conversation state lives in the memory.Memory the
// caller passes in.
type Engine struct {
	store    *knowledge.Store
	resolver *match.Resolver
	logger   *zap.Logger
}

// NewEngine builds an engine over the catalog. A threshold of 0 selects
// the resolver default.
func NewEngine(store *knowledge.Store, threshold float64, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:    store,
		resolver: match.NewResolver(store, threshold, logger),
		logger:   logger,
	}
}

// Store exposes the underlying catalog.
func (e *Engine) Store() *knowledge.Store {
	return e.store
}

// Answer resolves one query in the given language and records the
// exchange in mem.
//
// Follow-up questions take priority: when the conversation has an active
// topic and the query carries a question trigger, the active topic's full
// answer is re-rendered and the topic survives. Otherwise the query is
// matched fresh; a hit renders that entry and makes it the active topic,
// a miss yields the fallback text and clears the topic.
func (e *Engine) Answer(mem *memory.Memory, query string, language lang.Language) Answer {
	if mem.IsFollowUp(query, language) {
		entry := e.store.ByID(mem.TopicID())
		if entry != nil {
			text := synth.Detailed(entry, language)
			mem.Record(query, text, entry.ID)
			e.logger.Debug("answered follow-up",
				zap.String("entry_id", entry.ID),
				zap.String("language", string(language)))
			return Answer{Text: text, EntryID: entry.ID, Contextual: true}
		}
		// Topic id no longer resolves, treat as a fresh query.
		mem.Clear()
	}

	entry, score := e.resolver.FindBestMatch(query, language)
	if entry == nil {
		text := synth.NoMatch(language)
		mem.Record(query, text, "")
		return Answer{Text: text}
	}

	text := synth.Detailed(entry, language)
	mem.Record(query, text, entry.ID)
	return Answer{Text: text, EntryID: entry.ID, Score: score}
}

// Welcome returns the conversation opening message.
func (e *Engine) Welcome(language lang.Language) string {
	return synth.Welcome(language)
}
