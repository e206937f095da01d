package i18n

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sadopc/focusplus/internal/focus"
)

func TestEveryLocaleIsComplete(t *testing.T) {
	missing, err := Missing()
	if err != nil {
		t.Fatal(err)
	}
	for locale, keys := range missing {
		t.Errorf("locale %s is missing %v", locale, keys)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		locale, key, want string
	}{
		{"en", Start, "Start"},
		{"ko", Start, "시작"},
		{"zh", Start, "开始"},
		{"cn", Pause, "暂停"},
		{"ko-KR", Streak, "연속 성공"},
		{"fr", Reset, "Reset"},
	}
	for _, tt := range tests {
		if got := For(tt.locale).T(tt.key); got != tt.want {
			t.Errorf("For(%q).T(%q) = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}
}

func TestBadgeMessageFormatsName(t *testing.T) {
	got := For("en").T(BadgeMessage, "Bronze")
	if got != "You got Bronze badge now. Congratulations!" {
		t.Fatalf("got %q", got)
	}
	if got := For("ko").T(BadgeMessage, "Gold"); !strings.HasPrefix(got, "Gold 배지") {
		t.Fatalf("got %q", got)
	}
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	tr := For("xx")
	if tr.Locale() != focus.LocaleEnglish {
		t.Fatalf("locale = %q, want en", tr.Locale())
	}
}

func TestPhaseAndThemeNames(t *testing.T) {
	tr := For("zh")
	if tr.Phase(focus.PhaseFocus) != "专注" || tr.Phase(focus.PhaseBreak) != "休息" {
		t.Fatal("phase names not localized")
	}
	if tr.ThemeName(focus.ThemePlayful) != "活泼" {
		t.Fatalf("theme = %q", tr.ThemeName(focus.ThemePlayful))
	}
	if LanguageName(focus.LocaleKorean) != "한국어" {
		t.Fatal("language name wrong")
	}
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty dir":      {},
		"bad toml":       {"locales/en.toml": {Data: []byte("locale = ")}},
		"unknown locale": {"locales/fr.toml": {Data: []byte("locale = \"fr\"\n[messages]\nstart = \"Commencer\"\n")}},
		"no messages":    {"locales/en.toml": {Data: []byte("locale = \"en\"\n")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(fsys); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
