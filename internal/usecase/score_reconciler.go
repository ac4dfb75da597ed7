package usecase

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

// DefaultDateToleranceDays absorbs the timezone skew between provider dates and
// locally stored dates.
const DefaultDateToleranceDays = 1

// ReconcilePolicy bounds how far a record's date may be from the result date.
// A negative tolerance matches on the team pair alone.
type ReconcilePolicy struct {
	DateToleranceDays int
}

type ReconcileReport struct {
	FinalResults int
	Updated      int
	UpdatedIDs   []string
	Unmatched    []string
}

// Reconcile completes pending records with final results and returns the
// updated copy of records. A result completes at most one record: the pending
// record with the same unordered team pair whose date is closest to the result
// date, list order breaking ties. Results without a match are dropped.
func Reconcile(records []game.Record, results []ExternalGame, policy ReconcilePolicy) ([]game.Record, ReconcileReport) {
	out := game.CloneAll(records)
	var report ReconcileReport

	for _, result := range results {
		if !result.Final {
			continue
		}
		report.FinalResults++

		idx := findPendingMatch(out, result, policy)
		if idx < 0 {
			report.Unmatched = append(report.Unmatched, describeResult(result))
			continue
		}

		record := &out[idx]
		if strings.TrimSpace(record.HomeTeam) == strings.TrimSpace(result.HomeTeam) {
			record.Finish(result.HomeScore, result.AwayScore)
		} else {
			record.Finish(result.AwayScore, result.HomeScore)
		}
		report.Updated++
		report.UpdatedIDs = append(report.UpdatedIDs, record.ID)
	}
	return out, report
}

func findPendingMatch(records []game.Record, result ExternalGame, policy ReconcilePolicy) int {
	resultDay, dateErr := timeutil.ParseDate(result.Date)
	checkDate := policy.DateToleranceDays >= 0 && dateErr == nil

	best, bestDistance := -1, 0
	for i, record := range records {
		if record.IsFinished() || !record.HasTeams(result.HomeTeam, result.AwayTeam) {
			continue
		}

		distance := 0
		if checkDate {
			day, err := record.Day()
			if err != nil {
				continue
			}
			distance = timeutil.DaysBetween(resultDay, day)
			if distance < 0 {
				distance = -distance
			}
			if distance > policy.DateToleranceDays {
				continue
			}
		}

		if best < 0 || distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	return best
}

func describeResult(result ExternalGame) string {
	return fmt.Sprintf("%s %d x %d %s (%s)", result.HomeTeam, result.HomeScore, result.AwayScore, result.AwayTeam, result.Date)
}
