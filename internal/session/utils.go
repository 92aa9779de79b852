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
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerateSessionID returns a unique session identifier.
func GenerateSessionID() string {
	return "session_" + uuid.NewString()
}

var sessionIDPattern = regexp.MustCompile(`^session_[a-f0-9-]{36}$`)

// ValidateSessionID reports whether the string is a well-formed session id.
func ValidateSessionID(sessionID string) bool {
	return sessionIDPattern.MatchString(sessionID)
}

var controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// SanitizeUserInput strips control characters and caps query length before
// storage or matching.
func SanitizeUserInput(input string) string {
	input = controlChars.ReplaceAllString(input, "")

	const maxInputLength = 10000
	if utf8.RuneCountInString(input) > maxInputLength {
		runes := []rune(input)
		input = string(runes[:maxInputLength])
	}

	return strings.TrimSpace(input)
}
