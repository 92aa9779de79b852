package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "My PHONE", "my phone"},
		{"strips punctuation", "help! my phone, please?", "help my phone please"},
		{"collapses whitespace", "lost   my \t phone", "lost my phone"},
		{"trims edges", "  lost phone!  ", "lost phone"},
		{"keeps underscore", "imei_number", "imei_number"},
		{"keeps digits", "dial *#06#", "dial 06"},
		{"keeps devanagari", "मेरा फोन खो गया!", "मेरा फोन खो गया"},
		{"empty", "", ""},
		{"punctuation only", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Help! My phone was STOLEN...",
		"मेरा फोन खो गया",
		"  mixed   WHITESPACE\tand, punctuation  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestTokens(t *testing.T) {
	if got := Tokens(""); got != nil {
		t.Errorf("Tokens(\"\") = %v, want nil", got)
	}
	got := Tokens("lost my phone")
	if len(got) != 3 || got[0] != "lost" || got[2] != "phone" {
		t.Errorf("Tokens = %v", got)
	}
}
