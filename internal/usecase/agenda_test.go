package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/infrastructure/repository/memory"
)

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return day
}

func testCatalog(t *testing.T) competition.Catalog {
	t.Helper()
	catalog, err := competition.NewCatalog([]competition.Competition{
		{ID: 1, Name: "A", Priority: 1, Active: true, Flag: "🅰️"},
		{ID: 2, Name: "B", Priority: 3, Active: true},
	}, nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return catalog
}

func TestBuildAgenda_OrdersGroupsByPriority(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "c1", Date: "2025-10-18", Competition: "C", Time: "10:00"},
		{ID: "b1", Date: "2025-10-18", Competition: "B", Time: "12:00"},
		{ID: "a2", Date: "2025-10-18", Competition: "A", Time: "21:00"},
		{ID: "a1", Date: "2025-10-18", Competition: "A", Time: "09:30"},
		{ID: "a3", Date: "2025-10-18", Competition: "A", Time: "9:45"},
	}

	agenda, report := BuildAgenda(fixtures, Window{From: mustDay(t, "2025-10-18"), Days: 1}, testCatalog(t), "")
	if len(agenda.Days) != 1 {
		t.Fatalf("expected one day, got %d", len(agenda.Days))
	}
	groups := agenda.Days[0].Groups
	if len(groups) != 3 || groups[0].Key != "A" || groups[1].Key != "B" || groups[2].Key != "C" {
		t.Fatalf("unexpected group order: %+v", groups)
	}
	if groups[2].Priority != competition.UnknownPriority || groups[2].Flag != competition.DefaultFlag {
		t.Fatalf("unknown competition must rank last with the default flag: %+v", groups[2])
	}
	ids := []string{groups[0].Fixtures[0].ID, groups[0].Fixtures[1].ID, groups[0].Fixtures[2].ID}
	if ids[0] != "a1" || ids[1] != "a3" || ids[2] != "a2" {
		t.Fatalf("fixtures not ordered by kickoff: %v", ids)
	}
	if len(report.UnknownCompetitions) != 1 || report.UnknownCompetitions[0] != "C" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if agenda.Filter != FilterAll {
		t.Fatalf("empty filter should normalize to %q, got %q", FilterAll, agenda.Filter)
	}
}

func TestBuildAgenda_GroupsByDivisionAndTieBreaksByKey(t *testing.T) {
	t.Parallel()

	catalog, err := competition.NewCatalog([]competition.Competition{
		{Name: "Brasileirão", Priority: 1, Active: true},
		{Name: "Copa", Priority: 1, Active: true},
	}, nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	fixtures := []fixture.Fixture{
		{ID: "1", Date: "2025-10-18", Competition: "Copa", Time: "16:00"},
		{ID: "2", Date: "2025-10-18", Competition: "Brasileirão", Division: "Série B", Time: "16:00"},
		{ID: "3", Date: "2025-10-18", Competition: "Brasileirão", Division: "Série A", Phase: "Rodada 30", Time: "18:00"},
	}

	agenda, _ := BuildAgenda(fixtures, Window{From: mustDay(t, "2025-10-18"), Days: 1}, catalog, FilterAll)
	groups := agenda.Days[0].Groups
	keys := []string{groups[0].Key, groups[1].Key, groups[2].Key}
	if keys[0] != "Brasileirão Série A" || keys[1] != "Brasileirão Série B" || keys[2] != "Copa" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if groups[0].DisplayName != "Brasileirão Série A (Rodada 30)" {
		t.Fatalf("unexpected display name: %s", groups[0].DisplayName)
	}
}

func TestBuildAgenda_KeepsCompetitionAndDivisionApart(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "split", Date: "2025-10-18", Competition: "Copa", Division: "do Brasil", Time: "16:00"},
		{ID: "whole", Date: "2025-10-18", Competition: "Copa do Brasil", Time: "19:00"},
	}

	agenda, _ := BuildAgenda(fixtures, Window{From: mustDay(t, "2025-10-18"), Days: 1}, testCatalog(t), FilterAll)
	if len(agenda.Days) != 1 {
		t.Fatalf("expected one day, got %d", len(agenda.Days))
	}
	groups := agenda.Days[0].Groups
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %+v", groups)
	}
	if groups[0].Competition != "Copa" || groups[0].Division != "do Brasil" || groups[0].Fixtures[0].ID != "split" {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Competition != "Copa do Brasil" || len(groups[1].Fixtures) != 1 || groups[1].Fixtures[0].ID != "whole" {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}

	filtered, _ := BuildAgenda(fixtures, Window{From: mustDay(t, "2025-10-18"), Days: 1}, testCatalog(t), "Copa do Brasil")
	if len(filtered.Days) != 1 || len(filtered.Days[0].Groups) != 1 || filtered.Days[0].Groups[0].Fixtures[0].ID != "whole" {
		t.Fatalf("filter must match the competition only: %+v", filtered.Days)
	}
}

func TestBuildAgenda_WindowAndFilter(t *testing.T) {
	t.Parallel()

	fixtures := memory.SeedFixtures()
	catalog, err := memory.SeedCompetitions()
	if err != nil {
		t.Fatalf("seed competitions: %v", err)
	}

	agenda, _ := BuildAgenda(fixtures, Window{From: mustDay(t, "2025-10-18"), Days: 2}, catalog, "Premier League")
	if len(agenda.Days) != 1 || agenda.Days[0].Date != "2025-10-18" {
		t.Fatalf("filter should keep only the Premier League day: %+v", agenda.Days)
	}
	if len(agenda.Days[0].Groups) != 1 || agenda.Days[0].Groups[0].Competition != "Premier League" {
		t.Fatalf("unexpected groups: %+v", agenda.Days[0].Groups)
	}
	want := []string{"Brasileirão Série A", "Copa Verde", "Fórmula 1", "Premier League"}
	if len(agenda.Competitions) != len(want) {
		t.Fatalf("competitions must describe the unfiltered window: %v", agenda.Competitions)
	}
	for i := range want {
		if agenda.Competitions[i] != want[i] {
			t.Fatalf("competitions: got=%v want=%v", agenda.Competitions, want)
		}
	}

	all, _ := BuildAgenda(fixtures, Window{From: mustDay(t, "2025-10-18"), Days: 2}, catalog, "todos")
	if len(all.Days) != 2 {
		t.Fatalf("todos should pass everything through: %+v", all.Days)
	}
	if got := all.Days[1].Groups[0].DisplayName; got != "Fórmula 1" {
		t.Fatalf("formula 1 groups omit the phase, got %q", got)
	}

	open, _ := BuildAgenda(fixtures, Window{From: mustDay(t, "2025-10-19")}, catalog, FilterAll)
	if len(open.Days) != 2 || open.Days[1].Date != "2025-10-21" {
		t.Fatalf("open window should include every later day: %+v", open.Days)
	}
}

func TestBuildAgenda_SkipsInvalidDates(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{{ID: "1", Date: "18/10/2025", Competition: "A"}}
	agenda, report := BuildAgenda(fixtures, Window{}, testCatalog(t), FilterAll)
	if len(agenda.Days) != 0 || report.InvalidDates != 1 {
		t.Fatalf("unexpected result: %+v %+v", agenda, report)
	}
}

func TestUnprioritizedCompetitions(t *testing.T) {
	t.Parallel()

	catalog, err := memory.SeedCompetitions()
	if err != nil {
		t.Fatalf("seed competitions: %v", err)
	}
	fixtures := append(memory.SeedFixtures(), fixture.Fixture{Competition: "Copa do Nordeste"}, fixture.Fixture{Competition: "Copa Verde"})

	got := UnprioritizedCompetitions(fixtures, catalog)
	if len(got) != 2 || got[0] != "Copa Verde" || got[1] != "Copa do Nordeste" {
		t.Fatalf("unexpected competitions: %v", got)
	}
}
