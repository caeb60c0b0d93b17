package siteconfig

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sitesearch/internal/platform/config"
	perr "sitesearch/internal/platform/errors"
	"sitesearch/internal/platform/logger"
	"sitesearch/internal/platform/net/http/bind"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a supported config file syntax
type Format string

const (
	// FormatYAML is .yaml / .yml
	FormatYAML Format = "yaml"
	// FormatTOML is .toml
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", perr.InvalidArgf("unsupported site config extension %q", filepath.Ext(path))
	}
}

// file mirrors Site with optional fields so absent keys keep their defaults
type file struct {
	Search struct {
		Sorting             []SortDef               `yaml:"sorting"             toml:"sorting"`
		RepositorySearch    *RepositorySearchPolicy `yaml:"repositorySearch"    toml:"repositorySearch"`
		MinSearchTermLength *int                    `yaml:"minSearchTermLength" toml:"minSearchTermLength"`
		MaxSearchResults    *int                    `yaml:"maxSearchResults"    toml:"maxSearchResults"`
	} `yaml:"search" toml:"search"`
	RepositoryLibrary struct {
		RootNode *string `yaml:"rootNode" toml:"rootNode"`
	} `yaml:"repositoryLibrary" toml:"repositoryLibrary"`
	Messages Messages `yaml:"messages" toml:"messages"`
}

func (f file) over(s Site) Site {
	if f.Search.Sorting != nil {
		s.Search.Sorting = f.Search.Sorting
	}
	if f.Search.RepositorySearch != nil {
		s.Search.RepositorySearch = *f.Search.RepositorySearch
	}
	if f.Search.MinSearchTermLength != nil {
		s.Search.MinSearchTermLength = *f.Search.MinSearchTermLength
	}
	if f.Search.MaxSearchResults != nil {
		s.Search.MaxSearchResults = *f.Search.MaxSearchResults
	}
	if f.RepositoryLibrary.RootNode != nil {
		s.RepositoryLibrary.RootNode = *f.RepositoryLibrary.RootNode
	}
	if len(f.Messages) > 0 {
		s.Messages = f.Messages
	}
	return s
}

// Parse decodes data in the given format over Default and validates the result
// unknown keys are rejected so typos surface at startup
func Parse(data []byte, format Format) (Site, error) {
	var f file
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !isEmptyYAML(err) {
			return Site{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "decode yaml site config")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return Site{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "decode toml site config")
		}
	default:
		return Site{}, perr.InvalidArgf("unsupported site config format %q", format)
	}

	s := f.over(Default())
	if err := bind.Struct(s); err != nil {
		return Site{}, perr.WithOp(err, "siteconfig.Parse")
	}
	return s, nil
}

// an empty document is valid and means "all defaults"
func isEmptyYAML(err error) bool { return errors.Is(err, io.EOF) }

// Load reads path and parses it by extension
func Load(path string) (Site, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Site{}, err
	}
	return LoadAs(path, format)
}

// LoadAs reads path and parses it in format regardless of the extension
func LoadAs(path string, format Format) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read site config %s", path)
	}
	s, err := Parse(data, format)
	if err != nil {
		return Site{}, err
	}
	logger.Named("siteconfig").Info().
		Str("path", path).
		Int("sorts", len(s.Search.Sorting)).
		Str("repository_search", string(s.Search.RepositorySearch)).
		Msg("site config loaded")
	return s, nil
}

// FromConf loads the file named by SITE_CONFIG, or returns Default when unset
// SITE_CONFIG_FORMAT forces yaml or toml for files without a telling extension
func FromConf(cfg config.Conf) (Site, error) {
	path := cfg.MayString("SITE_CONFIG", "")
	if path == "" {
		return Default(), nil
	}
	if f := cfg.MayEnum("SITE_CONFIG_FORMAT", "", string(FormatYAML), string(FormatTOML)); f != "" {
		return LoadAs(path, Format(strings.ToLower(f)))
	}
	return Load(path)
}
