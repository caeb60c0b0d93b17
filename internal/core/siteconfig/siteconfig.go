// Package siteconfig is the typed site configuration resolved once at startup
// it covers the Search and RepositoryLibrary scopes plus message bundles for the catalog
package siteconfig

import (
	"strings"

	"sitesearch/internal/platform/logger"
)

// RepositorySearchPolicy controls whether repository-wide search is forced on or off
type RepositorySearchPolicy string

const (
	// PolicyDefault defers to the request's r argument
	PolicyDefault RepositorySearchPolicy = "context"
	// PolicyAlways forces repository search on
	PolicyAlways RepositorySearchPolicy = "always"
	// PolicyNone forces repository search off, even when r=true
	PolicyNone RepositorySearchPolicy = "none"
)

// ParsePolicy maps a configured value onto a policy
// "" and "context" are the default; ok is false for anything unrecognized
func ParsePolicy(s string) (p RepositorySearchPolicy, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyDefault):
		return PolicyDefault, true
	case string(PolicyAlways):
		return PolicyAlways, true
	case string(PolicyNone):
		return PolicyNone, true
	default:
		return PolicyDefault, false
	}
}

// UnmarshalText lets yaml and toml decode the policy directly
// unknown values resolve to the default and are logged rather than failing startup
func (p *RepositorySearchPolicy) UnmarshalText(b []byte) error {
	v, ok := ParsePolicy(string(b))
	if !ok {
		logger.Named("siteconfig").Warn().Str("value", string(b)).Msg("unknown repository search policy; using default")
	}
	*p = v
	return nil
}

// SortDef is one configured sort option
// an empty Value is the relevance sort, so a definition only needs one of the three fields
// Label is nil when absent; a present but empty label skips the catalog and shows Value
type SortDef struct {
	Value   string  `yaml:"value"   toml:"value"   json:"value" validate:"required_without_all=Label LabelID"`
	Label   *string `yaml:"label"   toml:"label"   json:"label,omitempty"`
	LabelID string  `yaml:"labelId" toml:"labelId" json:"labelId,omitempty"`
}

// Label builds a SortDef.Label value
func Label(s string) *string { return &s }

// Search is the Search scope
type Search struct {
	Sorting             []SortDef              `json:"sorting" validate:"dive"`
	RepositorySearch    RepositorySearchPolicy `json:"repositorySearch"`
	MinSearchTermLength int                    `json:"minSearchTermLength" validate:"gte=0"`
	MaxSearchResults    int                    `json:"maxSearchResults" validate:"gte=0"`
}

// RepositoryLibrary is the RepositoryLibrary scope
type RepositoryLibrary struct {
	RootNode string `json:"rootNode"`
}

// Messages maps locale to message key to text
type Messages map[string]map[string]string

// Site is the full resolved configuration
type Site struct {
	Search            Search            `json:"search"`
	RepositoryLibrary RepositoryLibrary `json:"repositoryLibrary"`
	Messages          Messages          `json:"messages,omitempty"`
}

// DefaultRootNode is the repository root used when none is configured
const DefaultRootNode = "alfresco://company/home"

// Default returns the built-in configuration
func Default() Site {
	return Site{
		Search: Search{
			Sorting: []SortDef{
				{Value: "", LabelID: "search.sort.relevance"},
				{Value: "cm:name", LabelID: "search.sort.name"},
				{Value: "cm:title", LabelID: "search.sort.title"},
				{Value: "cm:description", LabelID: "search.sort.description"},
				{Value: "cm:created", LabelID: "search.sort.created"},
				{Value: "cm:creator", LabelID: "search.sort.creator"},
				{Value: "cm:modified", LabelID: "search.sort.modified"},
				{Value: "cm:modifier", LabelID: "search.sort.modifier"},
				{Value: "TYPE", LabelID: "search.sort.type"},
			},
			RepositorySearch:    PolicyDefault,
			MinSearchTermLength: 1,
			MaxSearchResults:    250,
		},
		RepositoryLibrary: RepositoryLibrary{RootNode: DefaultRootNode},
	}
}
