package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-intake/pkg/cache"
	"github.com/goliatone/go-intake/pkg/schema"
)

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithStore attaches a template cache. Hits skip the remote entirely;
// successful fetches are written back.
func WithStore(store *cache.Store) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger overrides where the service logs.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service serves template lists cache-first and collapses concurrent fetches
// for the same query into one remote call. Safe for concurrent use.
type Service struct {
	client Client
	store  *cache.Store
	logger *slog.Logger
	flight singleflight.Group
}

// NewService wires a Service around the remote client.
func NewService(client Client, opts ...ServiceOption) *Service {
	s := &Service{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Templates returns the template list for the query, from cache when fresh,
// otherwise from the remote source. Templates that fail verification are
// dropped from the result rather than failing the whole list.
func (s *Service) Templates(ctx context.Context, query Query) ([]schema.Template, error) {
	if s.client == nil {
		return nil, errors.New("fetch: no client configured")
	}

	if s.store != nil {
		if templates, ok := s.store.Load(query); ok {
			s.logger.Debug("fetch: cache hit", "query", query.String(), "templates", len(templates))
			return templates, nil
		}
	}

	result, err, shared := s.flight.Do(query.String(), func() (any, error) {
		templates, err := s.client.FetchTemplates(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetch: templates for %s: %w", query, err)
		}
		templates = s.keepVerified(templates)

		if s.store != nil {
			if err := s.store.Save(query, templates); err != nil {
				s.logger.Warn("fetch: cache save failed", "query", query.String(), "error", err)
			}
		}
		return templates, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("fetch: concurrent fetch deduplicated", "query", query.String())
	}
	return result.([]schema.Template), nil
}

// Refresh drops any cached entry for the query and fetches anew. Callers use
// it when a template advertises a newer upstream version.
func (s *Service) Refresh(ctx context.Context, query Query) ([]schema.Template, error) {
	if s.store != nil {
		if err := s.store.Delete(query); err != nil {
			s.logger.Warn("fetch: cache invalidation failed", "query", query.String(), "error", err)
		}
	}
	return s.Templates(ctx, query)
}

func (s *Service) keepVerified(templates []schema.Template) []schema.Template {
	verified := make([]schema.Template, 0, len(templates))
	for _, tpl := range templates {
		if err := schema.Verify(&tpl); err != nil {
			s.logger.Warn("fetch: dropped template that failed verification", "template", tpl.ID, "error", err)
			continue
		}
		verified = append(verified, tpl)
	}
	return verified
}
