package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(CodeAdd, map[string]string{"label": "Skills"}); msg != "Add Skills" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T(CodeAdd, map[string]string{"label": "スキル"}); msg != "スキルを追加" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeEchoes(t *testing.T) {
	if msg := New("fr").Message("nope", nil); msg != "nope" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

func TestTranslator_NoData(t *testing.T) {
	if msg := New("en").Message(CodeNoResults, nil); msg != "No results found" {
		t.Fatalf("unexpected message %q", msg)
	}
}
