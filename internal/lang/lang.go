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

// Package lang defines the closed set of languages the assistant answers in.
// Keeping Language an explicit type means a missing-language case is caught
// by exhaustive switches instead of surfacing as a silent empty string.
package lang

import "fmt"

// Language identifies one of the portal's supported languages.
type Language string

const (
	// English is the default and fallback language.
	English Language = "english"
	// Hindi covers Devanagari-script Hindi queries.
	Hindi Language = "hindi"
	// Marathi covers Devanagari-script Marathi queries.
	Marathi Language = "marathi"
)

// All lists the supported languages in display order.
func All() []Language {
	return []Language{English, Hindi, Marathi}
}

// Parse converts a user-supplied language tag into a Language.
func Parse(s string) (Language, error) {
	switch Language(s) {
	case English, Hindi, Marathi:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported language: %q", s)
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case English, Hindi, Marathi:
		return true
	}
	return false
}

// SpeechCode returns the BCP 47 tag the portal's speech recognition and
// synthesis capabilities expect for this language.
func (l Language) SpeechCode() string {
	switch l {
	case Hindi:
		return "hi-IN"
	case Marathi:
		return "mr-IN"
	default:
		return "en-US"
	}
}

// NativeName returns the language's name in its own script, as shown by the
// portal's language selector.
func (l Language) NativeName() string {
	switch l {
	case Hindi:
		return "हिंदी"
	case Marathi:
		return "मराठी"
	default:
		return "English"
	}
}
