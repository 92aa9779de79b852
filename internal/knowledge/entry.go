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

// Package knowledge holds the assistant's fixed catalog of incident types.
// Each entry carries per-language keyword lists for matching plus the
// procedural, documentary and legal text the synthesizer renders from.
// The catalog is read-only after Load.
package knowledge

import "github.com/your-org/police-portal-assistant/internal/lang"

// Text is a per-language text fragment. English is the canonical value;
// the other languages may be empty, in which case ForLanguage falls back.
type Text struct {
	EN string `json:"en"`
	HI string `json:"hi,omitempty"`
	MR string `json:"mr,omitempty"`
}

// ForLanguage returns the fragment in the requested language, falling back
// to English when that language's value is absent.
func (t Text) ForLanguage(l lang.Language) string {
	switch l {
	case lang.Hindi:
		if t.HI != "" {
			return t.HI
		}
	case lang.Marathi:
		if t.MR != "" {
			return t.MR
		}
	}
	return t.EN
}

// raw returns the fragment in the requested language without the English
// fallback. Lint uses it to see gaps ForLanguage would paper over.
func (t Text) raw(l lang.Language) string {
	switch l {
	case lang.Hindi:
		return t.HI
	case lang.Marathi:
		return t.MR
	default:
		return t.EN
	}
}

// TextList is a per-language list of phrases.
type TextList struct {
	EN []string `json:"en"`
	HI []string `json:"hi,omitempty"`
	MR []string `json:"mr,omitempty"`
}

// ForLanguage returns the list for the requested language, falling back to
// the English list when that language's list is empty.
func (t TextList) ForLanguage(l lang.Language) []string {
	switch l {
	case lang.Hindi:
		if len(t.HI) > 0 {
			return t.HI
		}
	case lang.Marathi:
		if len(t.MR) > 0 {
			return t.MR
		}
	}
	return t.EN
}

// raw returns the list for the requested language without the English
// fallback.
func (t TextList) raw(l lang.Language) []string {
	switch l {
	case lang.Hindi:
		return t.HI
	case lang.Marathi:
		return t.MR
	default:
		return t.EN
	}
}

// FAQ is one question/answer pair, fully triplicated across languages.
type FAQ struct {
	Question Text `json:"q"`
	Answer   Text `json:"a"`
}

// LegalReference describes the applicable legal provision. Short is rendered
// in assistant answers; Detailed is reserved for other surfaces.
type LegalReference struct {
	Short    string `json:"short"`
	Detailed string `json:"detailed,omitempty"`
}

// Entry is one incident type in the knowledge base.
type Entry struct {
	ID                 string         `json:"id"`
	Incident           string         `json:"incident"`
	Aliases            []string       `json:"aliases"`
	Keywords           TextList       `json:"keywords"`
	PreProcedure       []string       `json:"pre_procedure"`
	DocumentsChecklist []string       `json:"documents_checklist"`
	ProcedureSteps     []string       `json:"procedure_steps"`
	Legal              LegalReference `json:"legal"`
	CivilPrecedents    []string       `json:"civil_precedents,omitempty"`
	HumanPrompts       TextList       `json:"human_prompts"`
	FAQ                []FAQ          `json:"faq,omitempty"`
	SMS                Text           `json:"sms"`
}

// MatchCandidates returns the phrases the resolver scores a query against:
// the language's keyword list (English fallback), the aliases, and the
// canonical incident name.
func (e *Entry) MatchCandidates(l lang.Language) []string {
	keywords := e.Keywords.ForLanguage(l)
	candidates := make([]string, 0, len(keywords)+len(e.Aliases)+1)
	candidates = append(candidates, keywords...)
	candidates = append(candidates, e.Aliases...)
	candidates = append(candidates, e.Incident)
	return candidates
}
