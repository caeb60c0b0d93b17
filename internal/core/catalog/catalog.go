// Package catalog resolves message keys to localized text
// locales come from go-playground/locales; Accept-Language negotiation uses x/text/language
package catalog

import (
	"sort"

	perr "sitesearch/internal/platform/errors"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// DefaultLocale is used when nothing better can be negotiated
const DefaultLocale = "en"

var supported = map[string]func() locales.Translator{
	"en": en.New,
	"fr": fr.New,
	"de": de.New,
	"es": es.New,
	"it": it.New,
	"ja": ja.New,
}

// Catalog holds one translator per configured locale
type Catalog struct {
	uni      *ut.UniversalTranslator
	fallback string
	names    []string
	matcher  language.Matcher
}

// Lookup is a catalog view bound to one negotiated locale
type Lookup struct {
	locale   string
	primary  ut.Translator
	fallback ut.Translator
}

// New builds a catalog from the built-in bundles overlaid with bundles
// every locale named in bundles must be one the catalog supports
func New(bundles map[string]map[string]string, fallback string) (*Catalog, error) {
	if fallback == "" {
		fallback = DefaultLocale
	}
	fbNew, ok := supported[fallback]
	if !ok {
		return nil, perr.InvalidArgf("unsupported fallback locale %q", fallback)
	}

	merged := map[string]map[string]string{}
	for loc, msgs := range builtin {
		merged[loc] = copyMsgs(msgs)
	}
	for loc, msgs := range bundles {
		if _, ok := supported[loc]; !ok {
			return nil, perr.WithField(perr.InvalidArgf("unsupported locale %q", loc), "messages")
		}
		if merged[loc] == nil {
			merged[loc] = map[string]string{}
		}
		for k, v := range msgs {
			merged[loc][k] = v
		}
	}
	if merged[fallback] == nil {
		merged[fallback] = map[string]string{}
	}

	names := make([]string, 0, len(merged))
	for loc := range merged {
		if loc != fallback {
			names = append(names, loc)
		}
	}
	sort.Strings(names)
	names = append([]string{fallback}, names...)

	trs := make([]locales.Translator, 0, len(names))
	tags := make([]language.Tag, 0, len(names))
	for _, loc := range names {
		trs = append(trs, supported[loc]())
		tags = append(tags, language.Make(loc))
	}
	uni := ut.New(fbNew(), trs...)

	for _, loc := range names {
		tr, _ := uni.GetTranslator(loc)
		for k, v := range merged[loc] {
			if err := tr.Add(k, v, true); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "message %s/%s", loc, k)
			}
		}
	}

	return &Catalog{
		uni:      uni,
		fallback: fallback,
		names:    names,
		matcher:  language.NewMatcher(tags),
	}, nil
}

func copyMsgs(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Locales lists the catalog locales, fallback first
func (c *Catalog) Locales() []string { return append([]string(nil), c.names...) }

// Negotiate picks the best catalog locale for an Accept-Language header
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.names) {
		return c.fallback
	}
	return c.names[idx]
}

// For returns a Lookup for the negotiated locale
func (c *Catalog) For(acceptLanguage string) Lookup {
	loc := c.Negotiate(acceptLanguage)
	primary, _ := c.uni.GetTranslator(loc)
	fb, _ := c.uni.GetTranslator(c.fallback)
	return Lookup{locale: loc, primary: primary, fallback: fb}
}

// Locale is the negotiated locale
func (l Lookup) Locale() string { return l.locale }

// Get returns the text for key, trying the fallback locale before giving up
func (l Lookup) Get(key string) (string, bool) {
	for _, tr := range []ut.Translator{l.primary, l.fallback} {
		if tr == nil {
			continue
		}
		if s, err := tr.T(key); err == nil {
			return s, true
		}
	}
	return "", false
}
