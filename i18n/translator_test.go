package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unknown_symbol", nil); msg == "unknown_symbol" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("unknown_symbol", nil); msg == "unknown symbol" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("some_future_code", nil); msg != "some_future_code" {
		t.Fatalf("unknown codes must fall back to the code itself, got %q", msg)
	}
}
