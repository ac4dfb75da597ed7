package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/agenda-fc/internal/interfaces/httpapi"
	"github.com/riskibarqy/agenda-fc/internal/usecase"
)

const allLeagues = "all"

func init() {
	syncSeasonCmd.Flags().Int("season", 0, "season start year (defaults to the current season)")
	agendaCmd.Flags().String("from", "", "first day, YYYY-MM-DD (defaults to today)")
	agendaCmd.Flags().Int("days", usecase.DefaultAgendaDays, "number of days; zero or less leaves the window open")
	agendaCmd.Flags().String("competition", usecase.FilterAll, "competition name or \"all\"")

	competitionsCmd.AddCommand(competitionsAuditCmd)

	rootCmd.AddCommand(syncSeasonCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(footballCacheCmd)
	rootCmd.AddCommand(agendaCmd)
	rootCmd.AddCommand(competitionsCmd)
}

var syncSeasonCmd = &cobra.Command{
	Use:   "sync-season <league>",
	Short: "Replace a league's games file with the provider's season schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, _ := cmd.Flags().GetInt("season")
		if season == 0 {
			season = currentSeason(time.Now().In(container.Config.Location()))
		}

		summary, err := container.Season.Sync(cmd.Context(), args[0], season)
		if err != nil {
			return handleLeagueError(cmd.Context(), args[0], "season sync failed", err)
		}
		return printJSON(cmd.OutOrStdout(), summary)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <league|all>",
	Short: "Complete pending games with final scores from the provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachLeague(cmd, args[0], func(ctx context.Context, leagueID string) (any, error) {
			return container.Reconcile.Run(ctx, leagueID)
		})
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings <league|all>",
	Short: "Recompute standings from the stored game records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachLeague(cmd, args[0], func(ctx context.Context, leagueID string) (any, error) {
			return container.Standings.Recompute(ctx, leagueID)
		})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reconcile every league, then recompute all standings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := container.Refresh.Run(cmd.Context())
		if err != nil {
			logger.ErrorContext(cmd.Context(), "refresh failed", "error", err)
			return nil
		}
		return printJSON(cmd.OutOrStdout(), summary)
	},
}

var footballCacheCmd = &cobra.Command{
	Use:   "football-cache",
	Short: "Mirror football-data.org standings and scheduled matches into the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := container.Football.Refresh(cmd.Context())
		if err != nil {
			logger.ErrorContext(cmd.Context(), "football cache refresh failed", "error", err)
			return nil
		}
		return printJSON(cmd.OutOrStdout(), summary)
	},
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Print the grouped fixture agenda as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		days, _ := cmd.Flags().GetInt("days")
		competition, _ := cmd.Flags().GetString("competition")
		if days <= 0 {
			days = -1
		}

		agenda, err := container.Agenda.Agenda(cmd.Context(), usecase.AgendaQuery{
			From:        from,
			Days:        days,
			Competition: competition,
		})
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidInput) {
				return err
			}
			logger.ErrorContext(cmd.Context(), "build agenda failed", "error", err)
			return nil
		}
		return printJSON(cmd.OutOrStdout(), httpapi.NewAgendaResponse(agenda))
	},
}

var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "Inspect the competition catalog",
}

var competitionsAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List fixture competitions missing from the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := container.Agenda.Unprioritized(cmd.Context())
		if err != nil {
			logger.ErrorContext(cmd.Context(), "competitions audit failed", "error", err)
			return nil
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"competitions": names,
			"count":        len(names),
		})
	},
}

type leagueRun func(ctx context.Context, leagueID string) (any, error)

// forEachLeague runs fn for one league or, with "all", for every configured
// league in order. A failing league is logged and the rest still run.
func forEachLeague(cmd *cobra.Command, target string, fn leagueRun) error {
	ctx := cmd.Context()

	ids := []string{target}
	if strings.EqualFold(strings.TrimSpace(target), allLeagues) {
		leagues, err := container.Leagues.ListLeagues(ctx)
		if err != nil {
			return err
		}
		ids = ids[:0]
		for _, l := range leagues {
			ids = append(ids, l.ID)
		}
	}

	results := make([]any, 0, len(ids))
	for _, leagueID := range ids {
		result, err := fn(ctx, leagueID)
		if err != nil {
			if err := handleLeagueError(ctx, leagueID, cmd.Name()+" failed", err); err != nil {
				return err
			}
			continue
		}
		results = append(results, result)
	}

	if len(ids) == 1 && len(results) == 1 {
		return printJSON(cmd.OutOrStdout(), results[0])
	}
	return printJSON(cmd.OutOrStdout(), results)
}

// handleLeagueError returns usage mistakes to cobra and logs everything else.
func handleLeagueError(ctx context.Context, leagueID, msg string, err error) error {
	if errors.Is(err, usecase.ErrNotFound) || errors.Is(err, usecase.ErrInvalidInput) {
		return err
	}
	logger.ErrorContext(ctx, msg, "league_id", leagueID, "error", err)
	return nil
}

// currentSeason is the start year of the season running at now. Both leagues
// open their season in the second half of the year.
func currentSeason(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}

func printJSON(w io.Writer, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
