// Package i18n provides internationalization support for rustc-ja's
// own user-facing strings (usage errors, status messages).
//
// It wraps the gotext library to provide simple T() and N() functions.
// Translations are embedded in the binary via //go:embed and loaded at
// startup via Init(). Note that this covers only the wrapper's own
// output; translation of the wrapped compiler's diagnostics is done by
// the phrase and diagnostic packages.
//
// Usage:
//
//	import "github.com/rustc-ja/rustc-ja/i18n"
//
//	func main() {
//	    i18n.Init("")  // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	    fmt.Fprintln(os.Stderr, i18n.T("Usage: rustc-ja <command> [args...]"))
//	}
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// locales embeds the translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/rustc-ja.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for rustc-ja.
const domain = "rustc-ja"

// po is the gotext locale object used for translations.
var po *gotext.Locale

// Init initializes the i18n system. If lang is empty, it auto-detects
// from the environment variables LANGUAGE, LC_ALL, LC_MESSAGES, LANG
// (in that order, matching GNU gettext behavior). The locale is
// normalized to its base language ("ja_JP.UTF-8" -> "ja") to match the
// embedded catalog layout.
//
// Init should be called once at program startup, before any T() or N()
// calls.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	lang = normalizeLanguage(lang)

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a string. If no translation is available, returns the
// original string unchanged (standard gettext passthrough behavior).
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a string with plural forms. The singular form is used
// when n == 1, the plural form otherwise (exact rules depend on the
// target language's plural formula).
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage reads environment variables to determine the user's
// preferred language, following GNU gettext conventions.
func detectLanguage() string {
	// GNU gettext priority: LANGUAGE > LC_ALL > LC_MESSAGES > LANG
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// Strip encoding suffix (e.g. "ja_JP.UTF-8" -> "ja_JP")
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			// Skip "C" and "POSIX" — these mean no translation
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}

// normalizeLanguage reduces a locale identifier to its base language
// subtag ("ja_JP.UTF-8" -> "ja") so it matches the embedded catalog
// directories. Unparseable identifiers are returned unchanged.
func normalizeLanguage(lang string) string {
	if idx := strings.IndexByte(lang, '.'); idx >= 0 {
		lang = lang[:idx]
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return lang
	}
	base, conf := tag.Base()
	if conf == language.No {
		return lang
	}
	return base.String()
}
