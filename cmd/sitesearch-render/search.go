package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"sitesearch/internal/adapters/profiles"
	"sitesearch/internal/core/catalog"
	"sitesearch/internal/core/siteconfig"
	"sitesearch/internal/modkit"
	"sitesearch/internal/modkit/module"
	"sitesearch/internal/platform/config"
	"sitesearch/internal/services/api/search/domain"
	searchmod "sitesearch/internal/services/api/search/module"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type searchFlags struct {
	site, term, tag, sort, query string
	repo, allSites               string
	min, max                     int
	htmlID, locale               string
	profilesURL, configPath      string
	format                       string
}

// argFlags maps page arguments onto the flags that set them
var argFlags = map[string]string{
	domain.ArgTerm:     "t",
	domain.ArgTag:      "tag",
	domain.ArgSort:     "s",
	domain.ArgQuery:    "q",
	domain.ArgRepo:     "r",
	domain.ArgAllSites: "a",
}

func newSearchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print the search page model",
		Long: `Builds the search page model and widget list for the given page arguments.

Examples:
  # repository-wide search for "report"
  sitesearch-render search --t report --a true

  # site page with a French catalog and a custom config
  sitesearch-render search --site swsdp --locale fr --config site.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.site, "site", "", "site short name; empty renders the repository-wide page")
	fl.StringVar(&f.term, "t", "", "search term")
	fl.StringVar(&f.tag, "tag", "", "search tag")
	fl.StringVar(&f.sort, "s", "", "sort field")
	fl.StringVar(&f.query, "q", "", "advanced search query")
	fl.StringVar(&f.repo, "r", "", `"true" requests repository search`)
	fl.StringVar(&f.allSites, "a", "", `"true" requests search across all sites`)
	fl.IntVar(&f.min, "min", 0, "minSearchTermLength widget override")
	fl.IntVar(&f.max, "max", 0, "maxSearchResults widget override")
	fl.StringVar(&f.htmlID, "htmlid", "", "page region id the widget id derives from")
	fl.StringVar(&f.locale, "locale", "", "Accept-Language value for sort labels")
	fl.StringVar(&f.profilesURL, "profiles-url", "", "repository service base url for site titles")
	fl.StringVar(&f.configPath, "config", "", "site config file (.yaml, .yml or .toml)")
	fl.StringVar(&f.format, "format", "json", "output format: json or yaml")
	return cmd
}

func runSearch(cmd *cobra.Command, f searchFlags) error {
	if f.format != "json" && f.format != "yaml" {
		return fmt.Errorf("unsupported format %q", f.format)
	}
	deps, err := searchDeps(f)
	if err != nil {
		return err
	}
	svc := module.MustPortsOf[domain.ServicePort](searchmod.New(deps))

	page := svc.Build(cmd.Context(), pageContext(cmd, f))
	return writePage(cmd.OutOrStdout(), page, f.format)
}

// searchDeps starts from SITESEARCH_* settings and applies flag overrides
func searchDeps(f searchFlags) (modkit.Deps, error) {
	cfg := config.New().Prefix("SITESEARCH_")
	deps, err := modkit.LoadDeps(cfg)
	if err != nil {
		return deps, err
	}
	if f.configPath != "" {
		site, err := siteconfig.Load(f.configPath)
		if err != nil {
			return deps, err
		}
		cat, err := catalog.New(site.Messages, cfg.MayString("DEFAULT_LOCALE", catalog.DefaultLocale))
		if err != nil {
			return deps, err
		}
		deps.Site, deps.Catalog = site, cat
	}
	if f.profilesURL != "" {
		deps.Profiles = profiles.NewClient(profiles.Options{BaseURL: f.profilesURL, UserAgent: "sitesearch-render"})
	}
	return deps, nil
}

// pageContext only carries flags that were set so absent arguments keep their defaults
func pageContext(cmd *cobra.Command, f searchFlags) domain.PageContext {
	fl := cmd.Flags()
	args := map[string]string{}
	for arg, name := range argFlags {
		if fl.Changed(name) {
			v, _ := fl.GetString(name)
			args[arg] = v
		}
	}
	wargs := map[string]string{}
	if fl.Changed("min") {
		wargs[domain.WidgetArgMinTerm] = strconv.Itoa(f.min)
	}
	if fl.Changed("max") {
		wargs[domain.WidgetArgMaxHits] = strconv.Itoa(f.max)
	}
	if f.htmlID != "" {
		wargs[domain.WidgetArgHTMLID] = f.htmlID
	}
	ta := map[string]string{}
	if f.site != "" {
		ta[domain.TemplateArgSite] = f.site
	}
	return domain.PageContext{SiteID: f.site, Args: args, TemplateArgs: ta, WidgetArgs: wargs, Locale: f.locale}
}

func writePage(w io.Writer, page domain.Page, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	// round trip through json so yaml keys match the wire names
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}
