// Package i18n turns feedback categories into user-facing text. English is
// the default; Simplified Chinese is the other supported locale.
package i18n

import (
	"net/http"
	"strings"

	"github.com/banshee-data/formcheck/internal/exercise"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

var (
	supported = []language.Tag{language.English, language.SimplifiedChinese}
	matcher   = language.NewMatcher(supported)
	cat       = mustBuildCatalog()
)

// withSeconds lists the messages that format the held duration.
var withSeconds = map[exercise.Feedback]bool{
	exercise.FeedbackPlankHolding:      true,
	exercise.FeedbackPlankHoldingWell:  true,
	exercise.FeedbackPlankHoldingGreat: true,
}

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range map[language.Tag]map[exercise.Feedback]string{
		language.English:           messagesEN,
		language.SimplifiedChinese: messagesZH,
	} {
		for fb, text := range msgs {
			if err := b.SetString(tag, string(fb), text); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Match picks the supported tag closest to a language value, which may be a
// single tag ("zh-CN") or a full Accept-Language header. Anything
// unparseable or unsupported gets the default.
func Match(accept string) language.Tag {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

func closest(tag language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

// ResolveTag determines the language for a request: the lang query
// parameter wins over Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		return Match(v)
	}
	return Match(r.Header.Get("Accept-Language"))
}

// Message returns the localized text for fb. seconds is used by the plank
// holding messages and ignored otherwise.
func Message(tag language.Tag, fb exercise.Feedback, seconds float64) string {
	p := message.NewPrinter(closest(tag), message.Catalog(cat))
	if withSeconds[fb] {
		return p.Sprintf(string(fb), seconds)
	}
	return p.Sprintf(string(fb))
}
