package synth

import (
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
)

func loadCatalog(t *testing.T) *knowledge.Store {
	t.Helper()
	s, err := knowledge.Load(zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return s
}

func TestDetailedSectionOrder(t *testing.T) {
	entry := loadCatalog(t).ByID("1")
	got := Detailed(entry, lang.English)

	markers := []string{
		"I understand you need help with Mobile phone loss/theft.",
		"For filing this complaint, please go to the 'File Report' section",
		"Here's what the procedure involves:",
		"1. Confirm complainant identity",
		"Required documents:",
		"• IMEI/serial number",
		"Legal framework: BNS §303",
		"Frequently asked questions:",
		"Q: How to track my lost phone using IMEI?",
		"I hope this information helps you.",
	}

	pos := -1
	for _, m := range markers {
		idx := strings.Index(got, m)
		if idx < 0 {
			t.Fatalf("marker %q missing from answer:\n%s", m, got)
		}
		if idx <= pos {
			t.Errorf("marker %q out of order", m)
		}
		pos = idx
	}

	if !strings.HasSuffix(got, fragmentsFor(lang.English).closing) {
		t.Error("answer does not end with closing")
	}
}

func TestDetailedSeparators(t *testing.T) {
	entry := loadCatalog(t).ByID("1")
	got := Detailed(entry, lang.English)

	// Greeting block ends with a blank line before the filing guidance.
	wantPrefix := "I understand you need help with Mobile phone loss/theft.\n\n" +
		fragmentsFor(lang.English).fileReportPrompt + "\n\n" +
		fragmentsFor(lang.English).procedureIntro + "\n1. "
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("answer prefix wrong:\n%s", got[:min(len(got), 300)])
	}

	// Each procedure step is numbered from 1 with no gaps.
	for i, step := range entry.ProcedureSteps {
		line := strconv.Itoa(i+1) + ". " + step + "\n"
		if !strings.Contains(got, line) {
			t.Errorf("step line %q missing", line)
		}
	}

	// One bullet per checklist item.
	if n := strings.Count(got, "• "); n != len(entry.DocumentsChecklist) {
		t.Errorf("bullet count = %d, want %d", n, len(entry.DocumentsChecklist))
	}
}

func TestDetailedFAQCount(t *testing.T) {
	store := loadCatalog(t)

	for _, entry := range store.Entries() {
		for _, l := range lang.All() {
			got := Detailed(entry, l)
			if n := strings.Count(got, "Q: "); n != len(entry.FAQ) {
				t.Errorf("entry %s/%s: %d Q: lines, want %d", entry.ID, l, n, len(entry.FAQ))
			}
			if n := strings.Count(got, "A: "); n != len(entry.FAQ) {
				t.Errorf("entry %s/%s: %d A: lines, want %d", entry.ID, l, n, len(entry.FAQ))
			}
			if len(entry.FAQ) == 0 && strings.Contains(got, fragmentsFor(l).faqIntro) {
				t.Errorf("entry %s/%s: FAQ intro rendered with no pairs", entry.ID, l)
			}
		}
	}
}

func TestDetailedPerLanguageFragments(t *testing.T) {
	entry := loadCatalog(t).ByID("2")

	hi := Detailed(entry, lang.Hindi)
	if !strings.HasPrefix(hi, "मैं समझ गया कि आपको सहायता चाहिए Cyber fraud / Online scams.") {
		t.Errorf("hindi greeting wrong:\n%s", hi[:min(len(hi), 200)])
	}
	if !strings.Contains(hi, "कानूनी ढांचा:") {
		t.Error("hindi legal intro missing")
	}
	if !strings.HasSuffix(hi, fragmentsFor(lang.Hindi).closing) {
		t.Error("hindi closing missing")
	}

	mr := Detailed(entry, lang.Marathi)
	if !strings.Contains(mr, "प्रक्रियेत काय समाविष्ट आहे ते येथे आहे:") {
		t.Error("marathi procedure intro missing")
	}

	// FAQ text follows the language, falling back to English only when a
	// translation is absent.
	if !strings.Contains(hi, entry.FAQ[0].Question.HI) {
		t.Error("hindi FAQ question not rendered in hindi")
	}
}

func TestWelcomeAndNoMatch(t *testing.T) {
	for _, l := range lang.All() {
		if Welcome(l) == "" {
			t.Errorf("Welcome(%s) empty", l)
		}
		if NoMatch(l) == "" {
			t.Errorf("NoMatch(%s) empty", l)
		}
	}
	if !strings.HasPrefix(NoMatch(lang.English), "I apologize, but I could not find information") {
		t.Error("english no-match text drifted")
	}
	if !strings.HasPrefix(NoMatch(lang.Hindi), "मुझे खेद है") {
		t.Error("hindi no-match text drifted")
	}
}

func TestFragmentsForUnknownLanguageFallsBackToEnglish(t *testing.T) {
	bogus := lang.Language("klingon")

	if got := fragmentsFor(bogus); got != englishFragments {
		t.Errorf("fragmentsFor(%q) = %+v, want english set", bogus, got)
	}
	if Welcome(bogus) != Welcome(lang.English) {
		t.Error("welcome for unknown language not english")
	}
	if NoMatch(bogus) != NoMatch(lang.English) {
		t.Error("no-match for unknown language not english")
	}

	entry := loadCatalog(t).ByID("1")
	if got, want := Detailed(entry, bogus), Detailed(entry, lang.English); got != want {
		t.Error("detailed answer for unknown language not english")
	}
}

func TestBuilderSkipsEmptyFAQ(t *testing.T) {
	got := NewBuilder(lang.English).FAQ(nil).String()
	if got != "" {
		t.Errorf("FAQ(nil) rendered %q", got)
	}
}
