package usecase

// Metrics receives pipeline counters. *metrics.Service satisfies it.
type Metrics interface {
	AddReconciledGames(league string, n int)
	IncProviderFailure(provider string)
	IncStandingsRun(league string)
	IncDataQualityWarning(kind string)
	ObserveJobDuration(job string, seconds float64)
	IncFileWritten(file string)
}

type nopMetrics struct{}

func (nopMetrics) AddReconciledGames(string, int) {}
func (nopMetrics) IncProviderFailure(string) {}
func (nopMetrics) IncStandingsRun(string) {}
func (nopMetrics) IncDataQualityWarning(string) {}
func (nopMetrics) ObserveJobDuration(string, float64) {}
func (nopMetrics) IncFileWritten(string) {}

func metricsOrNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

const (
	warnUnknownCompetition = "unknown_competition"
	warnUnmappedTeam       = "unmapped_team"
	warnInvalidRecord      = "invalid_record"
)
