package domain

// PageInput is the POST body for building a page from explicit inputs
// siteId stands in for the site template argument when templateArgs omit it
type PageInput struct {
	SiteID       string            `json:"siteId,omitempty" validate:"omitempty,max=256" example:"swsdp"`
	Args         map[string]string `json:"args,omitempty"`
	TemplateArgs map[string]string `json:"templateArgs,omitempty"`
	WidgetArgs   map[string]string `json:"widgetArgs,omitempty"`
	Locale       string            `json:"locale,omitempty" validate:"omitempty,max=64" example:"fr"`
}

// Context maps the body onto a PageContext
func (in PageInput) Context() PageContext {
	ta := make(map[string]string, len(in.TemplateArgs)+1)
	for k, v := range in.TemplateArgs {
		ta[k] = v
	}
	if _, ok := ta[TemplateArgSite]; !ok && in.SiteID != "" {
		ta[TemplateArgSite] = in.SiteID
	}
	return PageContext{
		SiteID:       ta[TemplateArgSite],
		Args:         in.Args,
		TemplateArgs: ta,
		WidgetArgs:   in.WidgetArgs,
		Locale:       in.Locale,
	}
}
