package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

type stubFootballData struct {
	failCodes map[string]bool
	calls     []string
}

func (s *stubFootballData) FetchStandings(_ context.Context, code string) ([]byte, error) {
	s.calls = append(s.calls, "standings:"+code)
	if s.failCodes[code] {
		return nil, errors.New("status 429")
	}
	return []byte(`{"competition":{"code":"` + code + `"},"standings":[]}`), nil
}

func (s *stubFootballData) FetchScheduledMatches(_ context.Context, code string) ([]byte, error) {
	s.calls = append(s.calls, "matches:"+code)
	return []byte(`{"matches":[]}`), nil
}

type memoryWriter struct {
	mu    sync.Mutex
	files map[string]string
}

func (w *memoryWriter) WriteRaw(name string, raw []byte) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files == nil {
		w.files = map[string]string{}
	}
	if w.files[name] == string(raw) {
		return false, nil
	}
	w.files[name] = string(raw)
	return true, nil
}

func TestFootballCacheService_Refresh(t *testing.T) {
	t.Parallel()

	provider := &stubFootballData{failCodes: map[string]bool{"CL": true}}
	writer := &memoryWriter{}
	metrics := newCountingMetrics()
	service := NewFootballCacheService(provider, writer, FootballCacheConfig{
		Enabled: true,
		Dir:     "api-cache",
		Feeds:   []FootballFeed{{Slug: "brasileirao", Code: "BSA"}, {Slug: "champions-league", Code: "CL"}},
	}, metrics, logging.NewNop())

	summary, err := service.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(provider.calls) != 4 || provider.calls[0] != "standings:BSA" || provider.calls[1] != "matches:BSA" {
		t.Fatalf("unexpected call order: %v", provider.calls)
	}
	if len(summary.Written) != 3 || len(summary.Failed) != 1 || summary.Failed[0] != "api-cache/champions-league-standings.json" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, ok := writer.files["api-cache/brasileirao-matches.json"]; !ok {
		t.Fatalf("matches file not written: %v", writer.files)
	}
	if metrics.providerFailures[footballDataProvider] != 1 {
		t.Fatalf("provider failure not counted")
	}

	again, err := service.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if len(again.Written) != 0 || len(again.Unchanged) != 3 {
		t.Fatalf("identical payloads must not be rewritten: %+v", again)
	}
}

func TestFootballCacheService_MissingCredential(t *testing.T) {
	t.Parallel()

	provider := &stubFootballData{}
	service := NewFootballCacheService(provider, &memoryWriter{}, FootballCacheConfig{Feeds: []FootballFeed{{Slug: "ligue-1", Code: "FL1"}}}, nil, logging.NewNop())
	summary, err := service.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !summary.Skipped || len(provider.calls) != 0 {
		t.Fatalf("expected skipped refresh without calls: %+v", summary)
	}
}

func TestFootballCacheService_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewFootballCacheService(&stubFootballData{}, &memoryWriter{}, FootballCacheConfig{Enabled: true, Feeds: []FootballFeed{{Slug: "ligue-1", Code: "FL1"}}}, nil, logging.NewNop())
	if _, err := service.Refresh(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
