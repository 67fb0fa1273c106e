package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankforge/standings/internal/model"
	"github.com/rankforge/standings/internal/region"
	"github.com/rankforge/standings/internal/roster"
)

func reportRoster(id int, name string, rating float64, rank int, nicks ...string) *roster.Roster {
	players := make([]model.Player, len(nicks))
	for i, nick := range nicks {
		players[i] = model.Player{PlayerID: int64(id*10 + i), Nick: nick, CountryISO: "SE"}
	}
	r := roster.New(id, name, players)
	r.Rating = rating
	r.GlobalRank = rank
	return r
}

func TestWriteGlobal(t *testing.T) {
	standings := []*roster.Roster{
		reportRoster(0, "Aurora", 1916.4, 1, "ace", "bit", "cog"),
		reportRoster(1, "Borealis", 1700.6, 2, "dot", "eel"),
		reportRoster(2, "Cascade", 1500, roster.Unranked),
	}

	var sb strings.Builder
	require.NoError(t, WriteGlobal(&sb, standings, "2024-06-01"))
	out := sb.String()

	assert.Contains(t, out, "### Regional Standings as of 2024-06-01")
	assert.Contains(t, out, "| Standing | Points | Team Name | Roster |")
	assert.Contains(t, out, "| 1 | 1916 | Aurora | ace, bit, cog |")
	assert.Contains(t, out, "| 2 | 1701 | Borealis | dot, eel |")
	assert.NotContains(t, out, "Cascade", "unranked rosters stay out of the table")
}

func TestWriteRegional(t *testing.T) {
	r := reportRoster(0, "Aurora", 1916, roster.Unranked, "ace")
	r.RegionalRank[region.Europe] = 1

	var sb strings.Builder
	require.NoError(t, WriteRegional(&sb, []*roster.Roster{r}, region.Europe, "2024-06-01"))
	out := sb.String()

	assert.Contains(t, out, "Regional Standings for Europe")
	assert.Contains(t, out, "| 1 | 1916 | Aurora | ace |")

	sb.Reset()
	require.NoError(t, WriteRegional(&sb, []*roster.Roster{r}, region.Americas, "2024-06-01"))
	assert.NotContains(t, sb.String(), "Aurora", "roster has no Americas rank")
}

func TestDateOfLatest(t *testing.T) {
	assert.Equal(t, "2024-01-01", DateOfLatest(1704067200))
	assert.Equal(t, "1970-01-01", DateOfLatest(-1))
}

func TestWriteFiles(t *testing.T) {
	r := reportRoster(0, "Aurora", 1916, 1, "ace")
	r.RegionalRank[region.Europe] = 1
	dir := t.TempDir()

	err := WriteFiles(dir, []*roster.Roster{r}, []region.Region{region.Europe}, "2024-06-01")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "standings_europe_2024_06_01.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Aurora")

	t.Run("global_file_when_no_regions", func(t *testing.T) {
		require.NoError(t, WriteFiles(dir, []*roster.Roster{r}, nil, "2024-06-01"))
		_, err := os.Stat(filepath.Join(dir, "standings_global_2024_06_01.md"))
		assert.NoError(t, err)
	})
}
