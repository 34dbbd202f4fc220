package refs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/pkg/apiclient"
	"github.com/goliatone/go-mwu-admin/pkg/model"
)

// Lister fetches every live record of a collection.
type Lister interface {
	ListRecords(ctx context.Context, collection string) ([]apiclient.Record, error)
}

// FetchFunc fetches a collection for BuildOptions.
type FetchFunc func(ctx context.Context) ([]apiclient.Record, error)

// BuildOptions fetches a collection and maps each record's display field to
// its id field. Records missing either value are skipped; fetch order is kept
// and a repeated display name resolves to the last record carrying it.
func BuildOptions(ctx context.Context, fetch FetchFunc, displayField, idField string) (*model.OptionMap, error) {
	if fetch == nil {
		return nil, errors.New("refs: fetch function is required")
	}
	records, err := fetch(ctx)
	if err != nil {
		return model.NewOptionMap(), err
	}
	return optionsFrom(records, displayField, idField), nil
}

func optionsFrom(records []apiclient.Record, displayField, idField string) *model.OptionMap {
	options := model.NewOptionMap()
	for _, record := range records {
		id := record.String(idField)
		name := record.String(displayField)
		if id == "" || name == "" {
			continue
		}
		options.Add(name, id)
	}
	return options
}

// Resolver loads collections through a Lister.
type Resolver struct {
	lister Lister
	logger *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a resolver over the lister.
func NewResolver(lister Lister, options ...Option) *Resolver {
	r := &Resolver{lister: lister, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// FetchAndIndex fetches a collection and indexes it by id.
func (r *Resolver) FetchAndIndex(ctx context.Context, collection string) (Index, error) {
	if r == nil || r.lister == nil {
		return Index{}, errors.New("refs: resolver has no lister")
	}
	records, err := r.lister.ListRecords(ctx, collection)
	if err != nil {
		return Index{}, fmt.Errorf("load %s: %w", collection, err)
	}
	return NewIndex(records), nil
}

// Load fetches every collection into a fresh cache. Collections that fail to
// load are left empty and reported together in a *LoadWarning; the cache is
// usable either way.
func (r *Resolver) Load(ctx context.Context, collections ...string) (Cache, error) {
	cache := make(Cache, len(collections))
	var warning *LoadWarning
	for _, collection := range collections {
		if _, done := cache[collection]; done {
			continue
		}
		index, err := r.FetchAndIndex(ctx, collection)
		if err != nil {
			r.logger.Warn("reference collection unavailable",
				zap.String("collection", collection),
				zap.Error(err),
			)
			if warning == nil {
				warning = &LoadWarning{Failures: make(map[string]error)}
			}
			warning.Failures[collection] = err
			cache[collection] = Index{}
			continue
		}
		cache[collection] = index
	}
	if warning != nil {
		return cache, warning
	}
	return cache, nil
}

// LoadWarning reports reference collections that could not be loaded.
// Callers surface it to the user and continue with empty options.
type LoadWarning struct {
	Failures map[string]error
}

func (w *LoadWarning) Error() string {
	names := make([]string, 0, len(w.Failures))
	for name := range w.Failures {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, w.Failures[name].Error())
	}
	return fmt.Sprintf("could not load %s: %s", strings.Join(names, ", "), strings.Join(parts, "; "))
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (w *LoadWarning) Unwrap() []error {
	out := make([]error, 0, len(w.Failures))
	for _, err := range w.Failures {
		out = append(out, err)
	}
	return out
}
