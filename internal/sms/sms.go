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

// Package sms prepares and dispatches report confirmation messages.
// Actual delivery goes through a Sender; the default implementation only
// logs, gateway integration happens at deployment.
package sms

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
)

// tokenPlaceholder is the substitution marker carried by SMS templates.
const tokenPlaceholder = "{TOKEN}"

// Indian mobile numbers: ten digits starting 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone reduces a phone number to its ten national digits,
// stripping spaces, dashes and a +91/91/0 prefix. It returns an error
// when what remains is not a valid Indian mobile number.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if !mobilePattern.MatchString(digits) {
		return "", fmt.Errorf("invalid mobile number %q", raw)
	}
	return digits, nil
}

// FormatE164 renders a normalized national number with the +91 prefix.
func FormatE164(national string) string {
	return "+91" + national
}

// RenderTemplate fills an entry's SMS template for the given language,
// substituting the report token.
func RenderTemplate(entry *knowledge.Entry, language lang.Language, token string) string {
	return strings.ReplaceAll(entry.SMS.ForLanguage(language), tokenPlaceholder, token)
}

// Message is a prepared SMS.
type Message struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Sender dispatches prepared messages.
type Sender interface {
	Send(msg Message) error
}

// LogSender is a Sender that records the message instead of delivering
// it. It stands in wherever no SMS gateway is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender returns a logging sender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the outgoing message.
func (s *LogSender) Send(msg Message) error {
	s.logger.Info("sms dispatched",
		zap.String("to", msg.To),
		zap.Int("body_len", len(msg.Body)))
	return nil
}

// Notifier prepares and sends report confirmations.
type Notifier struct {
	sender Sender
	logger *zap.Logger
}

// NewNotifier builds a notifier over the given sender.
func NewNotifier(sender Sender, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{sender: sender, logger: logger}
}

// NotifyReportFiled validates the phone number, renders the entry's SMS
// template with the report token and dispatches it. It returns the
// prepared message.
func (n *Notifier) NotifyReportFiled(entry *knowledge.Entry, language lang.Language, rawPhone, token string) (*Message, error) {
	national, err := NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	msg := Message{
		To:   FormatE164(national),
		Body: RenderTemplate(entry, language, token),
	}
	if err := n.sender.Send(msg); err != nil {
		return nil, fmt.Errorf("sending report confirmation: %w", err)
	}

	n.logger.Debug("report confirmation sent",
		zap.String("entry_id", entry.ID),
		zap.String("token", token))
	return &msg, nil
}
