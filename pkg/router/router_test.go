package router

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubPage struct {
	name      string
	log       *[]string
	onRefresh func(ctx context.Context, params Params)
	setupErr  error
	params    []Params
}

func (p *stubPage) Name() string { return p.name }

func (p *stubPage) Setup(context.Context) error {
	*p.log = append(*p.log, "setup "+p.name)
	return p.setupErr
}

func (p *stubPage) Refresh(ctx context.Context, params Params) {
	*p.log = append(*p.log, "refresh "+p.name)
	p.params = append(p.params, params)
	if p.onRefresh != nil {
		p.onRefresh(ctx, params)
	}
}

func (p *stubPage) Show() { *p.log = append(*p.log, "show "+p.name) }
func (p *stubPage) Hide() { *p.log = append(*p.log, "hide "+p.name) }

func newPages(log *[]string, names ...string) []*stubPage {
	out := make([]*stubPage, len(names))
	for i, name := range names {
		out[i] = &stubPage{name: name, log: log}
	}
	return out
}

func assertSingleVisible(t *testing.T, r *Router) {
	t.Helper()
	visible := 0
	for _, name := range r.Names() {
		if r.State(name) == StateVisible {
			visible++
			if name != r.Visible() {
				t.Fatalf("page %q visible but router reports %q", name, r.Visible())
			}
		}
	}
	if visible > 1 {
		t.Fatalf("expected at most one visible page, got %d", visible)
	}
}

func TestStartRunsSetupThenShowsInitial(t *testing.T) {
	var log []string
	r := New()
	for _, p := range newPages(&log, "home", "accounts.list") {
		r.MustRegister(p)
	}

	if err := r.Start(context.Background(), "home", nil); err != nil {
		t.Fatalf("start: %v", err)
	}

	want := []string{
		"setup home", "hide home",
		"setup accounts.list", "hide accounts.list",
		"show home", "refresh home",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("lifecycle mismatch (-want +got):\n%s", diff)
	}
	if r.State("home") != StateVisible || r.State("accounts.list") != StateHidden {
		t.Fatalf("unexpected states: %s %s", r.State("home"), r.State("accounts.list"))
	}
}

func TestShowPageKeepsSingleVisible(t *testing.T) {
	var log []string
	r := New()
	pages := newPages(&log, "home", "accounts.list", "accounts.update")
	for _, p := range pages {
		r.MustRegister(p)
	}
	ctx := context.Background()
	if err := r.Start(ctx, "home", nil); err != nil {
		t.Fatalf("start: %v", err)
	}

	for _, name := range []string{"accounts.list", "accounts.update", "accounts.update", "home"} {
		if err := r.ShowPage(ctx, name, Params{"id": "a1"}); err != nil {
			t.Fatalf("show %s: %v", name, err)
		}
		assertSingleVisible(t, r)
		if r.Visible() != name {
			t.Fatalf("expected %s visible, got %s", name, r.Visible())
		}
	}

	if got, _ := pages[2].params[0].Get("id"); got != "a1" {
		t.Fatalf("expected params to reach refresh, got %q", got)
	}
}

func TestNestedNavigationFromRefresh(t *testing.T) {
	var log []string
	r := New()
	pages := newPages(&log, "accounts.list", "accounts.update")
	for _, p := range pages {
		r.MustRegister(p)
	}

	var navigated []string
	r.OnNavigate(func(name string) { navigated = append(navigated, name) })

	pages[1].onRefresh = func(ctx context.Context, params Params) {
		if _, ok := params.Get("id"); !ok {
			if err := r.ShowPage(ctx, "accounts.list", nil); err != nil {
				t.Errorf("nested show: %v", err)
			}
		}
	}

	ctx := context.Background()
	if err := r.Start(ctx, "accounts.list", nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.ShowPage(ctx, "accounts.update", Params{}); err != nil {
		t.Fatalf("show update: %v", err)
	}

	if r.Visible() != "accounts.list" {
		t.Fatalf("nested navigation should win, visible=%s", r.Visible())
	}
	assertSingleVisible(t, r)
	if diff := cmp.Diff([]string{"accounts.list", "accounts.list"}, navigated); diff != "" {
		t.Fatalf("navigation notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterAndNavigationErrors(t *testing.T) {
	var log []string
	r := New()
	pages := newPages(&log, "home")
	r.MustRegister(pages[0])

	if err := r.Register(&stubPage{name: "home", log: &log}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := r.ShowPage(context.Background(), "home", nil); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	if err := r.Start(context.Background(), "missing", nil); !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
	if err := r.Start(context.Background(), "home", nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.Register(&stubPage{name: "late", log: &log}); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
	if err := r.ShowPage(context.Background(), "nowhere", nil); !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
	if r.Visible() != "home" {
		t.Fatalf("failed navigation must not change the visible page")
	}
}

func TestStartPropagatesSetupError(t *testing.T) {
	var log []string
	r := New()
	boom := errors.New("boom")
	r.MustRegister(&stubPage{name: "home", log: &log, setupErr: boom})
	if err := r.Start(context.Background(), "home", nil); !errors.Is(err, boom) {
		t.Fatalf("expected setup error, got %v", err)
	}
}
