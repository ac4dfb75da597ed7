package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixture_GroupKeyAndDisplayName(t *testing.T) {
	t.Parallel()

	f := Fixture{Competition: "Brasileirão", Division: "Série B", Phase: "Rodada 12"}
	assert.Equal(t, "Brasileirão Série B", f.GroupKey())
	assert.Equal(t, "Brasileirão Série B (Rodada 12)", f.DisplayName())

	race := Fixture{Competition: "Fórmula 1", Phase: "Treino Livre", EventName: "GP de São Paulo"}
	assert.Equal(t, "Fórmula 1", race.GroupKey())
	assert.Equal(t, "Fórmula 1", race.DisplayName())
	assert.True(t, race.IsEvent())

	plain := Fixture{Competition: "Premier League", HomeTeam: "Arsenal", AwayTeam: "Chelsea"}
	assert.Equal(t, "Premier League", plain.DisplayName())
	assert.False(t, plain.IsEvent())
}

func TestFixture_GroupSeparatesCompetitionFromDivision(t *testing.T) {
	t.Parallel()

	split := Fixture{Competition: "Copa", Division: " do Brasil "}
	whole := Fixture{Competition: "Copa do Brasil"}

	assert.Equal(t, split.GroupKey(), whole.GroupKey())
	assert.NotEqual(t, split.Group(), whole.Group())
	assert.Equal(t, Group{Competition: "Copa", Division: "do Brasil"}, split.Group())
}

func TestSplitChannels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Globo", "Premiere", "ge"}, SplitChannels("Globo / Premiere, ge"))
	assert.Empty(t, SplitChannels("  "))
	assert.Equal(t, "Globo / Premiere", JoinChannels([]string{"Globo", "Premiere"}))
}
