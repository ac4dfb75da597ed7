package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service holds the pipeline counters. It satisfies usecase.Metrics.
type Service struct {
	ReconciledGames  *prometheus.CounterVec
	ProviderFailures *prometheus.CounterVec
	StandingsRuns    *prometheus.CounterVec
	DataQuality      *prometheus.CounterVec
	JobDuration      *prometheus.HistogramVec
	FilesWritten     *prometheus.CounterVec
}

// NewService creates and registers the collectors on reg, or on the default
// registerer when reg is nil.
func NewService(reg prometheus.Registerer) *Service {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	s := &Service{
		ReconciledGames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agendafc_reconciled_games_total",
			Help: "Game records completed from upstream final results.",
		}, []string{"league"}),
		ProviderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agendafc_provider_failures_total",
			Help: "Upstream fetches that failed and were skipped.",
		}, []string{"provider"}),
		StandingsRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agendafc_standings_runs_total",
			Help: "Standings recomputations per league.",
		}, []string{"league"}),
		DataQuality: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agendafc_data_quality_warnings_total",
			Help: "Data-quality warnings by kind.",
		}, []string{"kind"}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agendafc_job_duration_seconds",
			Help:    "Duration of pipeline jobs.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}, []string{"job"}),
		FilesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agendafc_files_written_total",
			Help: "Data files replaced on disk.",
		}, []string{"file"}),
	}

	reg.MustRegister(
		s.ReconciledGames,
		s.ProviderFailures,
		s.StandingsRuns,
		s.DataQuality,
		s.JobDuration,
		s.FilesWritten,
	)
	return s
}

// Handler exposes gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (s *Service) AddReconciledGames(league string, n int) {
	if n > 0 {
		s.ReconciledGames.WithLabelValues(league).Add(float64(n))
	}
}

func (s *Service) IncProviderFailure(provider string) {
	s.ProviderFailures.WithLabelValues(provider).Inc()
}

func (s *Service) IncStandingsRun(league string) {
	s.StandingsRuns.WithLabelValues(league).Inc()
}

func (s *Service) IncDataQualityWarning(kind string) {
	s.DataQuality.WithLabelValues(kind).Inc()
}

func (s *Service) ObserveJobDuration(job string, seconds float64) {
	s.JobDuration.WithLabelValues(job).Observe(seconds)
}

func (s *Service) IncFileWritten(file string) {
	s.FilesWritten.WithLabelValues(file).Inc()
}
