// Package domain holds the search page view model and its inputs
package domain

import pstrings "sitesearch/internal/platform/strings"

// Argument names read from the page request
const (
	ArgTerm           = "t"
	ArgTag            = "tag"
	ArgSort           = "s"
	ArgQuery          = "q"
	ArgRepo           = "r"
	ArgAllSites       = "a"
	TemplateArgSite   = "site"
	WidgetArgHTMLID   = "htmlid"
	WidgetArgMinTerm  = "minSearchTermLength"
	WidgetArgMaxHits  = "maxSearchResults"
	SearchWidgetName  = "Alfresco.Search"
	searchWidgetIDSfx = "-search"
)

// PageContext is the request-scoped input to the builder
// every map may be nil; lookups on a nil map read as absent
type PageContext struct {
	SiteID       string            `json:"siteId,omitempty"`
	Args         map[string]string `json:"args,omitempty"`
	TemplateArgs map[string]string `json:"templateArgs,omitempty"`
	WidgetArgs   map[string]string `json:"widgetArgs,omitempty"`
	Locale       string            `json:"locale,omitempty"`
}

// Arg returns the query argument or ""
func (p PageContext) Arg(k string) string { return pstrings.Arg(p.Args, k, "") }

// Site is the site template argument; SiteID when the template carries none
func (p PageContext) Site() string { return pstrings.Arg(p.TemplateArgs, TemplateArgSite, p.SiteID) }

// SiteProfile is the remote site descriptor
type SiteProfile struct {
	Title     string `json:"title"`
	ShortName string `json:"shortName"`
}

// DisplayTitle is the title when set, else the short name
func (p SiteProfile) DisplayTitle() string { return pstrings.FirstNonEmpty(p.Title, p.ShortName) }

// SortFieldSpec is one sort option as shown to the user
type SortFieldSpec struct {
	Type  string `json:"type"  example:"cm:name"`
	Label string `json:"label" example:"Name"`
}

// SearchPageModel is bound into the page template
type SearchPageModel struct {
	SiteID         string          `json:"siteId"         example:"swsdp"`
	SiteTitle      string          `json:"siteTitle"      example:"Sample: Web Site Design Project"`
	SortFields     []SortFieldSpec `json:"sortFields"`
	SearchTerm     string          `json:"searchTerm"     example:"report"`
	SearchTag      string          `json:"searchTag"`
	SearchSort     string          `json:"searchSort"`
	SearchRepo     bool            `json:"searchRepo"`
	SearchAllSites bool            `json:"searchAllSites"`
	SearchQuery    string          `json:"searchQuery"`
}

// WidgetOptions is the options bag handed to the client search widget
type WidgetOptions struct {
	SiteID                  string `json:"siteId"`
	SiteTitle               string `json:"siteTitle"`
	InitialSearchTerm       string `json:"initialSearchTerm"`
	InitialSearchTag        string `json:"initialSearchTag"`
	InitialSearchAllSites   bool   `json:"initialSearchAllSites"`
	InitialSearchRepository bool   `json:"initialSearchRepository"`
	InitialSort             string `json:"initialSort"`
	SearchQuery             string `json:"searchQuery"`
	SearchRootNode          string `json:"searchRootNode" example:"alfresco://company/home"`
	MinSearchTermLength     int    `json:"minSearchTermLength" example:"1"`
	MaxSearchResults        int    `json:"maxSearchResults" example:"250"`
}

// Widget is one entry of the declared widget list
type Widget struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	UseMessages bool          `json:"useMessages"`
	UseOptions  bool          `json:"useOptions"`
	Options     WidgetOptions `json:"options"`
}

// Page is the builder output
type Page struct {
	Model   SearchPageModel `json:"model"`
	Widgets []Widget        `json:"widgets"`
}

// WidgetID derives the widget id from the page region id
func WidgetID(htmlID string) string { return htmlID + searchWidgetIDSfx }
