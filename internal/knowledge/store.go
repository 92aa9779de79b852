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

package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/your-org/police-portal-assistant/internal/lang"
)

//go:embed data/entries.json
var entriesJSON []byte

// Store is the loaded incident catalog. Entry order follows the
// embedded asset; matching relies on that order for tie-breaking,
// so Entries must never reorder.
type Store struct {
	entries []Entry
	byID    map[string]*Entry
	logger  *zap.Logger
}

// Load parses the embedded catalog and indexes it by entry ID.
// Entries missing Hindi or Marathi keyword lists load fine (matching
// falls back to English) but are logged so catalog gaps stay visible.
func Load(logger *zap.Logger) (*Store, error) {
	var entries []Entry
	if err := json.Unmarshal(entriesJSON, &entries); err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return NewStore(entries, logger)
}

// NewStore builds a store from the given entries, preserving their
// declared order. Load uses it for the embedded catalog; tests use it
// to build stores from hand-made entries.
func NewStore(entries []Entry, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	s := &Store{
		entries: entries,
		byID:    make(map[string]*Entry, len(entries)),
	}
	s.logger = logger

	for i := range s.entries {
		e := &s.entries[i]
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %d (%q) has no id", i, e.Incident)
		}
		if _, dup := s.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry id %q is duplicated", e.ID)
		}
		if len(e.Keywords.EN) == 0 {
			return nil, fmt.Errorf("catalog entry %q has no English keywords", e.ID)
		}
		if len(e.Keywords.HI) == 0 {
			logger.Warn("catalog entry has no Hindi keywords, English will be used",
				zap.String("entry_id", e.ID),
				zap.String("incident", e.Incident))
		}
		if len(e.Keywords.MR) == 0 {
			logger.Warn("catalog entry has no Marathi keywords, English will be used",
				zap.String("entry_id", e.ID),
				zap.String("incident", e.Incident))
		}
		s.byID[e.ID] = e
	}

	logger.Info("knowledge catalog loaded", zap.Int("entries", len(s.entries)))
	return s, nil
}

// Entries returns every entry in catalog order.
func (s *Store) Entries() []*Entry {
	out := make([]*Entry, len(s.entries))
	for i := range s.entries {
		out[i] = &s.entries[i]
	}
	return out
}

// ByID returns the entry with the given id, or nil.
func (s *Store) ByID(id string) *Entry {
	return s.byID[id]
}

// Len reports the number of catalog entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Topics lists every incident name, in catalog order. The incident
// names themselves are English-only; the language picks which keyword
// samples accompany them.
func (s *Store) Topics() []string {
	topics := make([]string, len(s.entries))
	for i := range s.entries {
		topics[i] = s.entries[i].Incident
	}
	return topics
}

// Lint runs the catalog quality checks used by the validate command.
// Unlike Load, it reports every problem it finds rather than stopping
// at the first.
func (s *Store) Lint() []string {
	var problems []string
	for i := range s.entries {
		e := &s.entries[i]
		for _, l := range lang.All() {
			if len(e.Keywords.raw(l)) == 0 {
				problems = append(problems, fmt.Sprintf("entry %s: no %s keywords", e.ID, l))
			}
			if e.SMS.raw(l) == "" {
				problems = append(problems, fmt.Sprintf("entry %s: no %s sms template", e.ID, l))
			}
		}
		if len(e.ProcedureSteps) == 0 {
			problems = append(problems, fmt.Sprintf("entry %s: no procedure steps", e.ID))
		}
		if len(e.DocumentsChecklist) == 0 {
			problems = append(problems, fmt.Sprintf("entry %s: no documents checklist", e.ID))
		}
		if e.Legal.Short == "" {
			problems = append(problems, fmt.Sprintf("entry %s: no legal summary", e.ID))
		}
		for j, f := range e.FAQ {
			if f.Question.EN == "" || f.Answer.EN == "" {
				problems = append(problems, fmt.Sprintf("entry %s: faq %d incomplete", e.ID, j))
			}
		}
	}
	return problems
}
