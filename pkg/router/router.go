// Package router owns the closed catalog of pages and guarantees that at most
// one page is visible at a time.
package router

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrSealed is returned when registering after Start.
	ErrSealed = errors.New("router: page catalog is sealed")
	// ErrUnknownPage is returned when navigating to an unregistered page.
	ErrUnknownPage = errors.New("router: unknown page")
	// ErrNotStarted is returned when navigating before Start.
	ErrNotStarted = errors.New("router: not started")
)

// Params carries navigation arguments such as the id of the entity to edit.
type Params map[string]string

// Get returns the value of key and whether it was present and non-empty.
func (p Params) Get(key string) (string, bool) {
	value, ok := p[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Page is a screen the router can show. Setup builds the static parts once;
// Refresh reloads data every time the page becomes visible.
type Page interface {
	Name() string
	Setup(ctx context.Context) error
	Refresh(ctx context.Context, params Params)
	Show()
	Hide()
}

// State is the lifecycle state of a registered page.
type State int

const (
	StateUnknown State = iota
	StateRegistered
	StateHidden
	StateVisible
)

func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateHidden:
		return "hidden"
	case StateVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Option customises a Router.
type Option func(*Router)

// WithLogger sets the transition logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Router switches between pages. It is driven from the UI goroutine only.
type Router struct {
	order     []string
	pages     map[string]Page
	states    map[string]State
	sealed    bool
	visible   string
	logger    *zap.Logger
	listeners []func(name string)
}

// New builds an empty router.
func New(opts ...Option) *Router {
	r := &Router{
		pages:  make(map[string]Page),
		states: make(map[string]State),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds a page to the catalog.
func (r *Router) Register(page Page) error {
	if r.sealed {
		return ErrSealed
	}
	if page == nil {
		return fmt.Errorf("router: page is required")
	}
	name := page.Name()
	if name == "" {
		return fmt.Errorf("router: page name is required")
	}
	if _, exists := r.pages[name]; exists {
		return fmt.Errorf("router: page %q already registered", name)
	}
	r.pages[name] = page
	r.states[name] = StateRegistered
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure.
func (r *Router) MustRegister(page Page) {
	if err := r.Register(page); err != nil {
		panic(err)
	}
}

// Start seals the catalog, runs every Setup in registration order and shows
// the initial page.
func (r *Router) Start(ctx context.Context, initial string, params Params) error {
	if r.sealed {
		return fmt.Errorf("router: already started")
	}
	if _, ok := r.pages[initial]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, initial)
	}
	r.sealed = true

	for _, name := range r.order {
		if err := r.pages[name].Setup(ctx); err != nil {
			return fmt.Errorf("router: setup %q: %w", name, err)
		}
		r.states[name] = StateHidden
		r.pages[name].Hide()
	}
	r.logger.Debug("pages ready", zap.Int("count", len(r.order)))

	return r.ShowPage(ctx, initial, params)
}

// ShowPage hides the visible page, shows the target and refreshes it. A
// ShowPage issued from inside the target's Refresh replaces the target.
func (r *Router) ShowPage(ctx context.Context, name string, params Params) error {
	if !r.sealed {
		return ErrNotStarted
	}
	page, ok := r.pages[name]
	if !ok {
		r.logger.Warn("navigation to unknown page", zap.String("page", name))
		return fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}

	if r.visible != "" {
		previous := r.visible
		r.states[previous] = StateHidden
		r.pages[previous].Hide()
	}

	r.visible = name
	r.states[name] = StateVisible
	r.logger.Debug("show page", zap.String("page", name), zap.Any("params", map[string]string(params)))

	page.Show()
	page.Refresh(ctx, copyParams(params))

	if r.visible == name {
		r.notify(name)
	}
	return nil
}

// OnNavigate registers a listener called once a page has been shown and
// refreshed.
func (r *Router) OnNavigate(fn func(name string)) {
	if fn != nil {
		r.listeners = append(r.listeners, fn)
	}
}

// State reports the lifecycle state of a page.
func (r *Router) State(name string) State {
	return r.states[name]
}

// Visible returns the visible page name, or "" before Start.
func (r *Router) Visible() string {
	return r.visible
}

// Page returns a registered page.
func (r *Router) Page(name string) (Page, bool) {
	page, ok := r.pages[name]
	return page, ok
}

// Names lists the catalog in registration order.
func (r *Router) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Router) notify(name string) {
	for _, fn := range r.listeners {
		fn(name)
	}
}

func copyParams(params Params) Params {
	out := make(Params, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
