// Package taskheader keeps a task details header in step with "task detailed data" notifications
// each notification rewrites the workflow link, reveals the link container and sets the title text
package taskheader

import (
	"net/url"
	"strings"
	"sync"

	"sitesearch/internal/core/events"
	perr "sitesearch/internal/platform/errors"
	"sitesearch/internal/platform/logger"
	"sitesearch/internal/platform/net/http/bind"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// DefaultPageBase is the page context root links are built under
const DefaultPageBase = "/share/page"

var (
	linkSel      = cascadia.MustCompile(".links a")
	linksSel     = cascadia.MustCompile(".links")
	titleSpanSel = cascadia.MustCompile("h1 span")
)

// Properties carries the task properties the header reads
type Properties struct {
	Description string `json:"bpm_description"`
}

// WorkflowInstance identifies the workflow a task belongs to
type WorkflowInstance struct {
	ID string `json:"id" validate:"required"`
}

// TaskNotification is the payload of a task detailed data event
type TaskNotification struct {
	ID               string           `json:"id" validate:"required"`
	Properties       Properties       `json:"properties"`
	WorkflowInstance WorkflowInstance `json:"workflowInstance"`
}

// Envelope pairs a notification with the component that sent it
type Envelope struct {
	Sender string           `json:"sender"`
	Task   TaskNotification `json:"task"`
}

// Option configures a Header
type Option func(*Header)

// WithPageBase sets the page context root, e.g. "/share/page"
func WithPageBase(base string) Option {
	return func(h *Header) { h.pageBase = strings.TrimRight(base, "/") }
}

// WithSite scopes the details link to a site
func WithSite(site string) Option {
	return func(h *Header) { h.site = site }
}

// Header is the reactive header bound to one root element
type Header struct {
	mu       sync.Mutex
	root     *goquery.Selection
	htmlID   string
	pageBase string
	site     string
	sub      *events.Subscription
	log      *logger.Logger
}

// New binds to the element with id htmlID in doc and subscribes to ch
func New(doc *goquery.Document, htmlID string, ch *events.Channel[Envelope], opts ...Option) (*Header, error) {
	if doc == nil || ch == nil {
		return nil, perr.InvalidArgf("document and channel are required")
	}
	root := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == htmlID
	}).First()
	if root.Length() == 0 {
		return nil, perr.NotFoundf("element #%s not found", htmlID)
	}

	h := &Header{
		root:     root,
		htmlID:   htmlID,
		pageBase: DefaultPageBase,
		log:      logger.Named("taskheader"),
	}
	for _, o := range opts {
		o(h)
	}
	h.sub = ch.Subscribe(h.onTaskDetails)
	return h, nil
}

// Close unsubscribes; the markup keeps its last state
func (h *Header) Close() { h.sub.Unsubscribe() }

// onTaskDetails applies one notification; incomplete payloads leave the header untouched
func (h *Header) onTaskDetails(e Envelope) {
	task := e.Task
	if err := bind.Struct(task); err != nil {
		h.log.Warn().Err(err).Str("sender", e.Sender).Str("html_id", h.htmlID).Msg("ignoring incomplete task notification")
		return
	}
	href := h.DetailsURL(task.WorkflowInstance.ID, task.ID)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.root.FindMatcher(linkSel).First().SetAttr("href", href)
	h.root.FindMatcher(linksSel).First().RemoveClass("hidden")
	h.root.FindMatcher(titleSpanSel).First().SetText(task.Properties.Description)
}

// DetailsURL builds the workflow details page link
func (h *Header) DetailsURL(workflowID, taskID string) string {
	var b strings.Builder
	b.WriteString(h.pageBase)
	if h.site != "" {
		b.WriteString("/site/")
		b.WriteString(url.PathEscape(h.site))
	}
	b.WriteString("/workflow-details?workflowId=")
	b.WriteString(EscapeComponent(workflowID))
	b.WriteString("&taskId=")
	b.WriteString(EscapeComponent(taskID))
	return b.String()
}

// HTML renders the root element; text content comes out escaped
func (h *Header) HTML() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out, err := goquery.OuterHtml(h.root)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "render header")
	}
	return out, nil
}

var componentFix = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// EscapeComponent percent-encodes s for use as one query value
// spaces become %20 and the marks !'()* stay literal
func EscapeComponent(s string) string {
	return componentFix.Replace(url.QueryEscape(s))
}
