// Package i18n renders user-facing messages, including filler errors, in the
// supported languages.
//
// Messages are looked up by id and may reference named arguments as { $name }.
// Catalogs are YAML maps from message id to text, one file per locale.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when no supported locale matches the request
const DefaultLocale = "en-US"

//go:embed locales/*.yaml
var embedded embed.FS

// Translator renders the message identified by key for the given locale.
// data holds the named arguments and may be nil.
type Translator interface {
	T(locale, key string, data map[string]any) string
}

// localizable mirrors filler.Localizable without importing it
type localizable interface {
	MessageID() string
	MessageArgs() map[string]any
}

var argRegex = regexp.MustCompile(`\{\s*\$([A-Za-z0-9_-]+)\s*\}`)

// aliases maps legacy codes to their BCP 47 tag
var aliases = map[string]string{
	"cz": "cs",
}

// Catalog holds the messages of every loaded locale
type Catalog struct {
	locales  []string
	messages map[string]map[string]string
	matcher  language.Matcher
}

// New loads the built-in catalogs
func New() (*Catalog, error) {
	return Load(embedded, "locales")
}

// MustNew is like New but panics on error
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads every <locale>.yaml file in dir of fsys
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalogs found in %s", dir)
	}
	sort.Strings(files)

	c := &Catalog{messages: make(map[string]map[string]string, len(files))}
	for _, file := range files {
		locale := strings.TrimSuffix(path.Base(file), ".yaml")
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: invalid locale: %w", file, err)
		}

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		messages := make(map[string]string)
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", file, err)
		}
		c.messages[locale] = messages
		c.locales = append(c.locales, locale)
	}

	// the default locale, when present, is also the matcher's fallback
	sort.SliceStable(c.locales, func(i, j int) bool {
		return c.locales[i] == DefaultLocale && c.locales[j] != DefaultLocale
	})
	tags := make([]language.Tag, len(c.locales))
	for i, l := range c.locales {
		tags[i] = language.MustParse(l)
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// Locales returns the loaded locales, the fallback locale first
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.locales...)
}

// Match picks the loaded locale closest to the requested one.
// It accepts POSIX forms such as cs_CZ.UTF-8.
func (c *Catalog) Match(locale string) string {
	locale = normalize(locale)
	if _, ok := c.messages[locale]; ok {
		return locale
	}
	_, index := language.MatchStrings(c.matcher, locale)
	return c.locales[index]
}

func normalize(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	lang, region, _ := strings.Cut(locale, "-")
	if alias, ok := aliases[strings.ToLower(lang)]; ok {
		lang = alias
	}
	if region == "" {
		return lang
	}
	return lang + "-" + region
}

// T renders key in locale. Missing messages fall back to the default locale,
// then to the key itself.
func (c *Catalog) T(locale, key string, data map[string]any) string {
	return c.render(c.Match(locale), key, data)
}

func (c *Catalog) render(locale, key string, data map[string]any) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		if msg, ok = c.messages[DefaultLocale][key]; !ok {
			return key
		}
	}

	return argRegex.ReplaceAllStringFunc(msg, func(m string) string {
		name := argRegex.FindStringSubmatch(m)[1]
		v, ok := data[name]
		if !ok {
			return m
		}
		if err, isErr := v.(error); isErr {
			return c.errorText(locale, err)
		}
		return fmt.Sprint(v)
	})
}

// Error renders err in locale. Errors that do not carry a message id are
// rendered with their Error text.
func (c *Catalog) Error(locale string, err error) string {
	if err == nil {
		return ""
	}
	return c.errorText(c.Match(locale), err)
}

func (c *Catalog) errorText(locale string, err error) string {
	var l localizable
	if errors.As(err, &l) {
		return c.render(locale, l.MessageID(), l.MessageArgs())
	}
	return err.Error()
}
