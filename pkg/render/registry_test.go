package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

type stubFrontend struct {
	ui.Recorder
	name string
}

func (s *stubFrontend) Name() string { return s.name }

func (s *stubFrontend) Run(ctx context.Context, _ ui.Shell, start func(context.Context) error) error {
	return start(ctx)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&stubFrontend{name: "screen"})
	registry.MustRegister(&stubFrontend{name: "prompt"})

	if err := registry.Register(&stubFrontend{name: "screen"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(&stubFrontend{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil frontend error")
	}

	if diff := cmp.Diff([]string{"prompt", "screen"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("prompt") {
		t.Fatalf("expected prompt to be registered")
	}
	frontend, err := registry.Get("screen")
	if err != nil || frontend.Name() != "screen" {
		t.Fatalf("get screen: %v %v", frontend, err)
	}
	if _, err := registry.Get("web"); err == nil {
		t.Fatalf("expected missing frontend error")
	}
}
