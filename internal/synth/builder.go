// Package synth renders catalog entries into the assistant's answer text.
// An answer is assembled section by section: greeting, filing guidance,
// procedure steps, document checklist, legal framework, optional FAQ and
// a closing. Section order and separators are part of the product's voice
// contract and must not drift.
package synth

import (
	"fmt"
	"strings"

	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
)

// Builder accumulates answer sections for one language.
type Builder struct {
	language  lang.Language
	fragments fragmentSet
	b         strings.Builder
}

// NewBuilder starts an empty answer in the given language.
func NewBuilder(language lang.Language) *Builder {
	return &Builder{language: language, fragments: fragmentsFor(language)}
}

// Greeting opens the answer with the incident acknowledgement.
func (b *Builder) Greeting(incident string) *Builder {
	fmt.Fprintf(&b.b, "%s %s.\n\n", b.fragments.greeting, incident)
	return b
}

// FileReportGuidance points the user at the complaint filing flow.
func (b *Builder) FileReportGuidance() *Builder {
	b.b.WriteString(b.fragments.fileReportPrompt)
	b.b.WriteString("\n\n")
	return b
}

// Procedure renders the numbered procedure steps.
func (b *Builder) Procedure(steps []string) *Builder {
	b.b.WriteString(b.fragments.procedureIntro)
	b.b.WriteByte('\n')
	for i, step := range steps {
		fmt.Fprintf(&b.b, "%d. %s\n", i+1, step)
	}
	b.b.WriteByte('\n')
	return b
}

// Documents renders the bulleted document checklist.
func (b *Builder) Documents(docs []string) *Builder {
	b.b.WriteString(b.fragments.documentsIntro)
	b.b.WriteByte('\n')
	for _, doc := range docs {
		fmt.Fprintf(&b.b, "• %s\n", doc)
	}
	b.b.WriteByte('\n')
	return b
}

// Legal renders the short legal summary.
func (b *Builder) Legal(summary string) *Builder {
	fmt.Fprintf(&b.b, "%s %s\n\n", b.fragments.legalIntro, summary)
	return b
}

// FAQ renders the question/answer pairs in the builder's language. A nil
// or empty list renders nothing, intro included.
func (b *Builder) FAQ(faqs []knowledge.FAQ) *Builder {
	if len(faqs) == 0 {
		return b
	}
	b.b.WriteString(b.fragments.faqIntro)
	b.b.WriteByte('\n')
	for _, f := range faqs {
		fmt.Fprintf(&b.b, "Q: %s\n", f.Question.ForLanguage(b.language))
		fmt.Fprintf(&b.b, "A: %s\n\n", f.Answer.ForLanguage(b.language))
	}
	return b
}

// Closing appends the sign-off.
func (b *Builder) Closing() *Builder {
	b.b.WriteString(b.fragments.closing)
	return b
}

// String returns the assembled answer.
func (b *Builder) String() string {
	return b.b.String()
}

// Detailed renders the full answer for a catalog entry: every section in
// canonical order.
func Detailed(entry *knowledge.Entry, language lang.Language) string {
	return NewBuilder(language).
		Greeting(entry.Incident).
		FileReportGuidance().
		Procedure(entry.ProcedureSteps).
		Documents(entry.DocumentsChecklist).
		Legal(entry.Legal.Short).
		FAQ(entry.FAQ).
		Closing().
		String()
}
