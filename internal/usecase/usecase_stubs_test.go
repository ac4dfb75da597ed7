package usecase

import (
	"context"
	"sync"
	"time"
)

type stubResultsProvider struct {
	mu      sync.Mutex
	results []ExternalGame
	err     error
	calls   int
	dates   []string
	sport   string
}

func (s *stubResultsProvider) FetchResults(_ context.Context, sport string, dates []string) ([]ExternalGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.sport = sport
	s.dates = append([]string(nil), dates...)
	return s.results, s.err
}

type stubSeasonProvider struct {
	games []ExternalGame
	err   error
	delay time.Duration
}

func (s *stubSeasonProvider) FetchSeason(_ context.Context, _ string, _ int, pageDelay time.Duration) ([]ExternalGame, error) {
	s.delay = pageDelay
	return s.games, s.err
}

type countingMetrics struct {
	mu               sync.Mutex
	reconciled       map[string]int
	providerFailures map[string]int
	standingsRuns    map[string]int
	warnings         map[string]int
	files            []string
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		reconciled:       map[string]int{},
		providerFailures: map[string]int{},
		standingsRuns:    map[string]int{},
		warnings:         map[string]int{},
	}
}

func (m *countingMetrics) AddReconciledGames(league string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconciled[league] += n
}

func (m *countingMetrics) IncProviderFailure(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providerFailures[provider]++
}

func (m *countingMetrics) IncStandingsRun(league string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsRuns[league]++
}

func (m *countingMetrics) IncDataQualityWarning(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings[kind]++
}

func (m *countingMetrics) ObserveJobDuration(string, float64) {}

func (m *countingMetrics) IncFileWritten(file string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, file)
}

func fixedClock(value string) func() time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
