package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLeagueCatalogue_IsValid(t *testing.T) {
	t.Parallel()

	catalogue, err := LoadLeagueCatalogue("")
	require.NoError(t, err)

	leagues, err := catalogue.DomainLeagues()
	require.NoError(t, err)
	require.Len(t, leagues, 2)

	nba, nfl := leagues[0], leagues[1]
	assert.Equal(t, league.RankByConference, nba.Ranking)
	assert.False(t, nba.AllowsTies)
	assert.False(t, nba.IncludeToday)
	assert.Equal(t, league.RankByDivision, nfl.Ranking)
	assert.True(t, nfl.AllowsTies)
	assert.True(t, nfl.IncludeToday)
	assert.Equal(t, 18, nfl.TotalRounds)
	assert.Equal(t, 13*time.Second, nfl.PageDelay)
	assert.Len(t, catalogue.FootballFeeds, 8)
}

func TestParseLeagueCatalogue(t *testing.T) {
	t.Parallel()

	raw := []byte(`
leagues:
  - id: wnba
    name: WNBA
    sport: basketball
    provider: balldontlie
    ranking: conference
    lookback_days: 1
    page_delay: 2s
    games_file: wnba/jogos.json
    roster_file: wnba/times.json
    standings_file: wnba/tabela.json
football_feeds:
  - slug: eredivisie
    code: DED
`)
	catalogue, err := ParseLeagueCatalogue(raw)
	require.NoError(t, err)
	require.Len(t, catalogue.Leagues, 1)
	assert.Equal(t, 2*time.Second, catalogue.Leagues[0].PageDelay)
	assert.Equal(t, "DED", catalogue.FootballFeeds[0].Code)
}

func TestParseLeagueCatalogue_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown ranking": `
leagues:
  - {id: nba, name: NBA, sport: basketball, provider: balldontlie, ranking: points, games_file: a, roster_file: b, standings_file: c}
`,
		"duplicate ids": `
leagues:
  - {id: nba, name: NBA, sport: basketball, provider: balldontlie, ranking: conference, games_file: a, roster_file: b, standings_file: c}
  - {id: nba, name: NBA 2, sport: basketball, provider: balldontlie, ranking: conference, games_file: a, roster_file: b, standings_file: c}
`,
		"missing files": `
leagues:
  - {id: nba, name: NBA, sport: basketball, provider: balldontlie, ranking: conference}
`,
		"no leagues": `leagues: []`,
		"bad yaml":   `leagues: [`,
	}
	for name, raw := range cases {
		name, raw := name, raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseLeagueCatalogue([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadLeagueCatalogue_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "leagues.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
leagues:
  - {id: nfl, name: NFL, sport: american_football, provider: balldontlie, ranking: division, allows_ties: true, games_file: a, roster_file: b, standings_file: c}
`), 0o644))

	catalogue, err := LoadLeagueCatalogue(path)
	require.NoError(t, err)
	assert.True(t, catalogue.Leagues[0].AllowsTies)

	_, err = LoadLeagueCatalogue(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
