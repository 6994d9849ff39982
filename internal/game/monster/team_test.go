package monster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/monster"
)

func writeTeamFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadTeam(t *testing.T) {
	path := writeTeamFile(t, `
name: Test Squad
members:
  - species: pikachu
    nickname: Sparky
    level: 50
    ability: static
    ivs: {hp: 31, attack: 31, defense: 31, sp_attack: 31, sp_defense: 31, speed: 31}
    evs: {speed: 252}
    moves: [tackle, growl]
  - species: gyarados
    level: 50
    moves: [tackle]
`)

	specs, err := monster.LoadTeam(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "pikachu", specs[0].SpeciesID)
	assert.Equal(t, "Sparky", specs[0].Nickname)
	assert.Equal(t, 31, specs[0].IVs.Speed)
	assert.Equal(t, 252, specs[0].EVs.Speed)
	assert.Equal(t, "static", specs[0].Ability)
	assert.Equal(t, []string{"tackle", "growl"}, specs[0].MoveIDs)
	assert.Equal(t, "gyarados", specs[1].SpeciesID)
}

func TestLoadTeam_EmptyFile(t *testing.T) {
	path := writeTeamFile(t, "name: Nobody\nmembers: []\n")
	_, err := monster.LoadTeam(path)
	assert.Error(t, err)
}

func TestLoadTeam_UnknownField(t *testing.T) {
	path := writeTeamFile(t, `
members:
  - species: pikachu
    level: 50
    moves: [tackle]
    helditem: leftovers
`)
	_, err := monster.LoadTeam(path)
	assert.Error(t, err, "unknown keys must be rejected")
}

func TestLoadTeam_MissingFile(t *testing.T) {
	_, err := monster.LoadTeam(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuildTeam(t *testing.T) {
	store := testStore(t)
	specs := []monster.Spec{
		{SpeciesID: "pikachu", Level: 50, MoveIDs: []string{"tackle", "growl"}},
		{SpeciesID: "gyarados", Level: 50, MoveIDs: []string{"tackle"}},
	}

	team, err := monster.BuildTeam(store, specs)
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Equal(t, "Pikachu", team[0].Name())
	assert.Equal(t, "Gyarados", team[1].Name())
}

func TestBuildTeam_PropagatesBuildErrors(t *testing.T) {
	store := testStore(t)
	specs := []monster.Spec{
		{SpeciesID: "missingno", Level: 50, MoveIDs: []string{"tackle"}},
	}
	_, err := monster.BuildTeam(store, specs)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missingno")
}
