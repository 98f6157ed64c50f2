package fetch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-intake/pkg/cache"
	"github.com/goliatone/go-intake/pkg/schema"
)

type countingClient struct {
	calls     atomic.Int32
	templates []schema.Template
	err       error

	enterOnce sync.Once
	entered   chan struct{}
	release   chan struct{}
}

func (c *countingClient) FetchTemplates(ctx context.Context, _ Query) ([]schema.Template, error) {
	c.calls.Add(1)
	if c.entered != nil {
		c.enterOnce.Do(func() { close(c.entered) })
	}
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.templates, c.err
}

func verifiedTemplate(id string) schema.Template {
	return schema.Template{
		ID:           id,
		Name:         "Template " + id,
		Jurisdiction: schema.Jurisdiction{State: "CA"},
		Sections: []schema.Section{
			{ID: "main", Fields: []schema.Field{{ID: id + "-f1", Label: "F1", Type: schema.FieldTypeText}}},
		},
	}
}

func serviceQuery() Query {
	return Query{State: "CA", CaseType: "small-claims"}
}

func TestServiceFetchesAndCaches(t *testing.T) {
	t.Parallel()

	store, err := cache.OpenInMemory()
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	client := &countingClient{templates: []schema.Template{verifiedTemplate("tpl-1")}}
	service := NewService(client, WithStore(store))

	first, err := service.Templates(context.Background(), serviceQuery())
	if err != nil {
		t.Fatalf("Templates returned error: %v", err)
	}
	if len(first) != 1 || first[0].ID != "tpl-1" {
		t.Fatalf("unexpected templates: %v", first)
	}

	second, err := service.Templates(context.Background(), serviceQuery())
	if err != nil {
		t.Fatalf("Templates returned error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("unexpected cached templates: %v", second)
	}
	if got := client.calls.Load(); got != 1 {
		t.Fatalf("client called %d times, want 1 (second call must hit the cache)", got)
	}
}

func TestServiceWorksWithoutStore(t *testing.T) {
	t.Parallel()

	client := &countingClient{templates: []schema.Template{verifiedTemplate("tpl-1")}}
	service := NewService(client)

	for i := 0; i < 2; i++ {
		if _, err := service.Templates(context.Background(), serviceQuery()); err != nil {
			t.Fatalf("Templates returned error: %v", err)
		}
	}
	if got := client.calls.Load(); got != 2 {
		t.Fatalf("client called %d times, want 2 without a store", got)
	}
}

func TestServiceDropsUnverifiableTemplates(t *testing.T) {
	t.Parallel()

	broken := verifiedTemplate("tpl-2")
	// Duplicate a field identifier so verification fails.
	broken.Sections[0].Fields = append(broken.Sections[0].Fields, broken.Sections[0].Fields[0])

	client := &countingClient{templates: []schema.Template{verifiedTemplate("tpl-1"), broken}}
	service := NewService(client)

	got, err := service.Templates(context.Background(), serviceQuery())
	if err != nil {
		t.Fatalf("Templates returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "tpl-1" {
		t.Fatalf("expected only the verifiable template, got %v", got)
	}
}

func TestServicePropagatesClientError(t *testing.T) {
	t.Parallel()

	client := &countingClient{err: errors.New("upstream down")}
	service := NewService(client)

	_, err := service.Templates(context.Background(), serviceQuery())
	if err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}

func TestServiceNoClient(t *testing.T) {
	t.Parallel()

	service := NewService(nil)
	if _, err := service.Templates(context.Background(), serviceQuery()); err == nil {
		t.Fatal("expected error when no client is configured")
	}
}

func TestServiceCollapsesConcurrentFetches(t *testing.T) {
	t.Parallel()

	client := &countingClient{
		templates: []schema.Template{verifiedTemplate("tpl-1")},
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	service := NewService(client)

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Templates(context.Background(), serviceQuery())
		}(i)
	}

	// Hold the first fetch open long enough for the rest to join it.
	<-client.entered
	time.Sleep(50 * time.Millisecond)
	close(client.release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d returned error: %v", i, err)
		}
	}
	if got := client.calls.Load(); got != 1 {
		t.Fatalf("client called %d times, want 1", got)
	}
}

func TestServiceRefreshBypassesCache(t *testing.T) {
	t.Parallel()

	store, err := cache.OpenInMemory()
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	client := &countingClient{templates: []schema.Template{verifiedTemplate("tpl-1")}}
	service := NewService(client, WithStore(store))

	if _, err := service.Templates(context.Background(), serviceQuery()); err != nil {
		t.Fatalf("Templates returned error: %v", err)
	}
	if _, err := service.Refresh(context.Background(), serviceQuery()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if got := client.calls.Load(); got != 2 {
		t.Fatalf("client called %d times, want 2 (refresh must bypass the cache)", got)
	}
}
