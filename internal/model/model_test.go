package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

func TestStatLine_ComputePoints(t *testing.T) {
	s := model.StatLine{TwoPtMade: 3, TwoPtAttempted: 5, ThreePtMade: 1, ThreePtAttempted: 2, FreeThrowsMade: 2, FreeThrowsAttempted: 2}
	assert.Equal(t, 11, s.ComputePoints())
}

func TestStatLine_ReboundsAndShooting(t *testing.T) {
	s := model.StatLine{OffensiveRebounds: 2, DefensiveRebounds: 5, ThreePtMade: 3, ThreePtAttempted: 7}
	assert.Equal(t, 7, s.Rebounds())
	assert.Equal(t, "3-7", s.Shooting(model.ShotThree))
	assert.Equal(t, "0-0", s.Shooting(model.ShotFreeThrow))
}

func TestParseStatID(t *testing.T) {
	cases := []struct {
		in   string
		want model.StatID
	}{
		{"2pt_m", model.StatTwoPtMade},
		{"3PT_A", model.StatThreePtAttempted},
		{"ftm", model.StatFreeThrowsMade},
		{"ft_a", model.StatFreeThrowsAttempted},
		{" oreb ", model.StatOffensiveRebounds},
		{"plusMinus", model.StatPlusMinus},
		{"pts", model.StatUnknown},
		{"reb", model.StatUnknown},
		{"", model.StatUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, model.ParseStatID(tc.in))
		})
	}
}

func TestStatID_KindAndShot(t *testing.T) {
	assert.Equal(t, model.KindMake, model.StatThreePtMade.Kind())
	assert.Equal(t, model.ShotThree, model.StatThreePtMade.Shot())
	assert.Equal(t, model.KindAttempt, model.StatFreeThrowsAttempted.Kind())
	assert.Equal(t, model.KindSimple, model.StatFouls.Kind())
	assert.Equal(t, model.ShotNone, model.StatFouls.Shot())
	assert.Equal(t, model.KindUnknown, model.StatUnknown.Kind())
}

func TestBoxScore_CloneDoesNotAlias(t *testing.T) {
	bs := model.BoxScore{
		TeamA: model.Team{Name: "A", Roster: []model.Player{{ID: "A-1"}}},
		TeamB: model.Team{Name: "B", Roster: []model.Player{{ID: "B-1"}}},
	}
	cp := bs.Clone()
	cp.TeamA.Roster[0].FirstName = "changed"
	cp.TeamB.Roster[0].Assists = 4
	assert.Empty(t, bs.TeamA.Roster[0].FirstName)
	assert.Zero(t, bs.TeamB.Roster[0].Assists)
}

func TestPlayer_JSONFlattensStats(t *testing.T) {
	p := model.Player{ID: "X-1", Number: 23, FirstName: "LeBron", Surname: "James", OnCourt: true}
	p.TwoPtMade = 4
	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.EqualValues(t, 4, m["2pt_m"])
	assert.Equal(t, true, m["isOnCourt"])
	assert.Equal(t, "LeBron", m["name"])
}

func TestParseSide(t *testing.T) {
	assert.Equal(t, model.SideA, model.ParseSide("teamA"))
	assert.Equal(t, model.SideA, model.ParseSide("home"))
	assert.Equal(t, model.SideB, model.ParseSide("Away"))
	assert.Equal(t, model.SideUnknown, model.ParseSide("teamC"))
}
