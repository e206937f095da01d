// Package i18n holds the user-facing strings in English, Korean and Chinese.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/sadopc/focusplus/internal/focus"
)

// Message keys.
const (
	Title            = "title"
	Start            = "start"
	Pause            = "pause"
	Reset            = "reset"
	FocusMin         = "focus_min"
	BreakMin         = "break_min"
	Quick25          = "quick_25_5"
	Quick50          = "quick_50_10"
	Mute             = "mute"
	Settings         = "settings"
	Language         = "language"
	Theme            = "theme"
	FontSize         = "font_size"
	DyslexiaFont     = "dyslexia_font"
	XP               = "xp"
	Level            = "level"
	Streak           = "streak"
	Badges           = "badges"
	Export           = "export"
	SessionLogSaved  = "session_log_saved"
	SaveError        = "save_error"
	BadgeEarned      = "badge_earned"
	ConfirmReset     = "confirm_reset"
	ThemeSoft        = "theme_soft"
	ThemePlayful     = "theme_playful"
	BadgeMessage     = "badge_message"
	ResetData        = "reset_data"
	ResetDataConfirm = "reset_data_confirm"
	PhaseFocus       = "phase_focus"
	PhaseBreak       = "phase_break"
	Running          = "running"
	Paused           = "paused"
	Timer            = "timer"
	Stats            = "stats"
	SessionLog       = "session_log"
	NoEntries        = "no_entries"
	PhaseDone        = "phase_done"
	PhaseAbandoned   = "phase_abandoned"
	StateSaveFailed  = "state_save_failed"
	DataCleared      = "data_cleared"
	Yes              = "yes"
	No               = "no"
	Last7Days        = "last_7_days"
)

type catalogFile struct {
	Locale   string            `toml:"locale"`
	Messages map[string]string `toml:"messages"`
}

//go:embed locales/*.toml
var localesFS embed.FS

var tags = map[string]language.Tag{
	focus.LocaleEnglish: language.English,
	focus.LocaleKorean:  language.Korean,
	focus.LocaleChinese: language.Chinese,
}

var defaultCatalog = mustLoad(localesFS)

// Translator renders messages for one locale.
type Translator struct {
	locale  string
	printer *message.Printer
}

// For returns a Translator for locale. Unknown locales get English.
func For(locale string) *Translator {
	locale = focus.NormalizeLocale(locale)
	tag, ok := tags[locale]
	if !ok {
		locale, tag = focus.LocaleEnglish, language.English
	}
	return &Translator{
		locale:  locale,
		printer: message.NewPrinter(tag, message.Catalog(defaultCatalog)),
	}
}

func (t *Translator) Locale() string { return t.locale }

// T formats the message for key with args.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Phase returns the localized phase name.
func (t *Translator) Phase(p focus.Phase) string {
	if p == focus.PhaseBreak {
		return t.T(PhaseBreak)
	}
	return t.T(PhaseFocus)
}

// ThemeName returns the localized label for a theme id.
func (t *Translator) ThemeName(theme string) string {
	if theme == focus.ThemePlayful {
		return t.T(ThemePlayful)
	}
	return t.T(ThemeSoft)
}

// LanguageName is the name of a locale in its own language.
func LanguageName(locale string) string {
	switch locale {
	case focus.LocaleKorean:
		return "한국어"
	case focus.LocaleChinese:
		return "中文"
	}
	return "English"
}

func mustLoad(fsys fs.FS) catalog.Catalog {
	c, err := load(fsys)
	if err != nil {
		panic(err)
	}
	return c
}

func load(fsys fs.FS) (*catalog.Builder, error) {
	files, err := readCatalogs(fsys)
	if err != nil {
		return nil, err
	}
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, f := range files {
		tag := tags[f.Locale]
		for key, msg := range f.Messages {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("set %s %q: %w", f.Locale, key, err)
			}
		}
	}
	return b, nil
}

func readCatalogs(fsys fs.FS) ([]catalogFile, error) {
	paths, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	var out []catalogFile
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var f catalogFile
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		f.Locale = strings.TrimSpace(f.Locale)
		if _, ok := tags[f.Locale]; !ok {
			return nil, fmt.Errorf("catalog %s: unsupported locale %q", path, f.Locale)
		}
		if len(f.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages table is required", path)
		}
		out = append(out, f)
	}
	return out, nil
}

// Missing lists, per locale, the keys defined in English but not translated.
func Missing() (map[string][]string, error) {
	files, err := readCatalogs(localesFS)
	if err != nil {
		return nil, err
	}
	byLocale := map[string]map[string]string{}
	for _, f := range files {
		byLocale[f.Locale] = f.Messages
	}
	base := byLocale[focus.LocaleEnglish]
	out := map[string][]string{}
	for _, locale := range focus.Locales {
		msgs, ok := byLocale[locale]
		for key := range base {
			if _, has := msgs[key]; !ok || !has {
				out[locale] = append(out[locale], key)
			}
		}
		sort.Strings(out[locale])
		if len(out[locale]) == 0 {
			delete(out, locale)
		}
	}
	return out, nil
}
