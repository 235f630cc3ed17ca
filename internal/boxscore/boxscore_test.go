package boxscore_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/model"
)

func newGen(seed uint64) *boxscore.Generator {
	n := 0
	return boxscore.NewGenerator(
		boxscore.WithRand(rand.New(rand.NewPCG(seed, seed+1))),
		boxscore.WithIDFunc(func() string { n++; return "m-" + string(rune('0'+n)) }),
		boxscore.WithClock(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func newMatch(t *testing.T) model.Match {
	t.Helper()
	return newGen(7).NewMatch("2024-03-01", "Lakers", "Celtics")
}

func TestRoster_Shape(t *testing.T) {
	roster := newGen(1).Roster("Lakers")
	require.Len(t, roster, model.RosterSize)

	names := map[string]bool{}
	for i, p := range roster {
		assert.Equal(t, i+1, p.Slot)
		assert.Equal(t, i < model.MaxOnCourt, p.OnCourt, "player %d", i)
		assert.GreaterOrEqual(t, p.Number, 0)
		assert.Less(t, p.Number, 100)
		assert.Equal(t, model.StatLine{}, p.StatLine)
		assert.False(t, names[p.FullName()], "duplicate name %q", p.FullName())
		names[p.FullName()] = true
	}
	assert.Equal(t, "Lakers-1", roster[0].ID)
	assert.Equal(t, "Lakers-15", roster[14].ID)
}

func TestNewMatch(t *testing.T) {
	m := newMatch(t)
	assert.Equal(t, "m-1", m.ID)
	assert.Equal(t, "Lakers vs Celtics - 2024-03-01", m.Name)
	assert.Equal(t, "Lakers", m.BoxScore.TeamA.Name)
	assert.Equal(t, "Celtics", m.BoxScore.TeamB.Name)
	assert.Equal(t, model.MaxOnCourt, m.BoxScore.TeamA.OnCourtCount())
	assert.False(t, m.CreatedAt.IsZero())
}

func TestAdjust_Examples(t *testing.T) {
	cases := []struct {
		name  string
		start model.StatLine
		stat  model.StatID
		delta int
		want  model.StatLine
		errIs error
	}{
		{
			name:  "make implies attempt",
			stat:  model.StatTwoPtMade,
			delta: 1,
			want:  model.StatLine{TwoPtMade: 1, TwoPtAttempted: 1, Points: 2},
		},
		{
			name:  "attempt below makes rejected",
			start: model.StatLine{TwoPtMade: 2, TwoPtAttempted: 2, Points: 4},
			stat:  model.StatTwoPtAttempted,
			delta: -1,
			want:  model.StatLine{TwoPtMade: 2, TwoPtAttempted: 2, Points: 4},
			errIs: boxscore.ErrAttemptsBelowMakes,
		},
		{
			name:  "make decrement keeps attempts",
			start: model.StatLine{ThreePtMade: 2, ThreePtAttempted: 4, Points: 6},
			stat:  model.StatThreePtMade,
			delta: -1,
			want:  model.StatLine{ThreePtMade: 1, ThreePtAttempted: 4, Points: 3},
		},
		{
			name:  "make decrement clamps at zero",
			start: model.StatLine{FreeThrowsAttempted: 3},
			stat:  model.StatFreeThrowsMade,
			delta: -2,
			want:  model.StatLine{FreeThrowsAttempted: 3},
		},
		{
			name:  "large make delta clamped to attempts",
			stat:  model.StatThreePtMade,
			delta: 3,
			want:  model.StatLine{ThreePtMade: 1, ThreePtAttempted: 1, Points: 3},
		},
		{
			name:  "attempt increase",
			start: model.StatLine{FreeThrowsMade: 1, FreeThrowsAttempted: 1, Points: 1},
			stat:  model.StatFreeThrowsAttempted,
			delta: 2,
			want:  model.StatLine{FreeThrowsMade: 1, FreeThrowsAttempted: 3, Points: 1},
		},
		{
			name:  "simple counter clamps at zero",
			start: model.StatLine{Fouls: 1},
			stat:  model.StatFouls,
			delta: -5,
			want:  model.StatLine{},
		},
		{
			name:  "rebounds split",
			stat:  model.StatOffensiveRebounds,
			delta: 2,
			want:  model.StatLine{OffensiveRebounds: 2},
		},
		{
			name:  "stale points recomputed on simple stat",
			start: model.StatLine{TwoPtMade: 1, TwoPtAttempted: 1, Points: 99},
			stat:  model.StatAssists,
			delta: 1,
			want:  model.StatLine{TwoPtMade: 1, TwoPtAttempted: 1, Assists: 1, Points: 2},
		},
		{
			name:  "huge simple delta saturates",
			start: model.StatLine{TwoPtMade: 3, TwoPtAttempted: 5, Minutes: 5, Points: 6},
			stat:  model.StatMinutes,
			delta: math.MaxInt,
			want:  model.StatLine{TwoPtMade: 3, TwoPtAttempted: 5, Minutes: math.MaxInt, Points: 6},
		},
		{
			name:  "huge make delta keeps existing makes",
			start: model.StatLine{TwoPtMade: 3, TwoPtAttempted: 5, Minutes: 5, Points: 6},
			stat:  model.StatTwoPtMade,
			delta: math.MaxInt,
			want:  model.StatLine{TwoPtMade: 6, TwoPtAttempted: 6, Minutes: 5, Points: 12},
		},
		{
			name:  "huge attempt delta saturates",
			start: model.StatLine{FreeThrowsMade: 1, FreeThrowsAttempted: 2, Points: 1},
			stat:  model.StatFreeThrowsAttempted,
			delta: math.MaxInt,
			want:  model.StatLine{FreeThrowsMade: 1, FreeThrowsAttempted: math.MaxInt, Points: 1},
		},
		{
			name:  "unknown stat rejected",
			start: model.StatLine{Steals: 1},
			stat:  model.StatUnknown,
			delta: 1,
			want:  model.StatLine{Steals: 1},
			errIs: boxscore.ErrUnknownStat,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newMatch(t)
			m.BoxScore.TeamA.Roster[3].StatLine = tc.start
			err := boxscore.Adjust(&m.BoxScore, model.SideA, 3, tc.stat, tc.delta)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, m.BoxScore.TeamA.Roster[3].StatLine)
		})
	}
}

func TestAdjust_BadTarget(t *testing.T) {
	m := newMatch(t)
	before := m.BoxScore.Clone()

	assert.ErrorIs(t, boxscore.Adjust(&m.BoxScore, model.SideA, -1, model.StatSteals, 1), boxscore.ErrPlayerIndex)
	assert.ErrorIs(t, boxscore.Adjust(&m.BoxScore, model.SideB, 15, model.StatSteals, 1), boxscore.ErrPlayerIndex)
	assert.ErrorIs(t, boxscore.Adjust(&m.BoxScore, model.SideUnknown, 0, model.StatSteals, 1), boxscore.ErrUnknownSide)
	assert.Equal(t, before, m.BoxScore)
}

// Random sequences of adjustments must never break makes ≤ attempts, non-negativity or points.
func TestAdjust_InvariantsHold(t *testing.T) {
	m := newMatch(t)
	r := rand.New(rand.NewPCG(42, 43))
	stats := []model.StatID{
		model.StatTwoPtMade, model.StatTwoPtAttempted, model.StatThreePtMade, model.StatThreePtAttempted,
		model.StatFreeThrowsMade, model.StatFreeThrowsAttempted, model.StatMinutes, model.StatFouls,
		model.StatPlusMinus, model.StatDefensiveRebounds,
	}
	for i := 0; i < 5000; i++ {
		side := model.SideA
		if r.IntN(2) == 1 {
			side = model.SideB
		}
		err := boxscore.Adjust(&m.BoxScore, side, r.IntN(model.RosterSize), stats[r.IntN(len(stats))], r.IntN(7)-3)
		if err != nil {
			require.True(t, errors.Is(err, boxscore.ErrAttemptsBelowMakes), "unexpected error %v", err)
		}
	}
	for _, team := range []model.Team{m.BoxScore.TeamA, m.BoxScore.TeamB} {
		for _, p := range team.Roster {
			for _, shot := range []model.Shot{model.ShotTwo, model.ShotThree, model.ShotFreeThrow} {
				made, att := p.ShotPair(shot)
				assert.GreaterOrEqual(t, made, 0)
				assert.LessOrEqual(t, made, att)
			}
			assert.GreaterOrEqual(t, p.Minutes, 0)
			assert.GreaterOrEqual(t, p.PlusMinus, 0)
			assert.Equal(t, p.ComputePoints(), p.Points)
		}
	}
}

func TestToggleOnCourt_CapAndPartition(t *testing.T) {
	m := newMatch(t)
	team := &m.BoxScore.TeamA
	before := append([]model.Player(nil), team.Roster...)

	_, err := boxscore.ToggleOnCourt(&m.BoxScore, model.SideA, 7)
	require.ErrorIs(t, err, boxscore.ErrCourtFull)
	assert.Equal(t, before, team.Roster)

	// slot 2 leaves the court and drops behind the remaining starters
	idx, err := boxscore.ToggleOnCourt(&m.BoxScore, model.SideA, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)
	assert.Equal(t, "Lakers-2", team.Roster[idx].ID)
	assert.Equal(t, []string{"Lakers-1", "Lakers-3", "Lakers-4", "Lakers-5", "Lakers-2", "Lakers-6"},
		ids(team.Roster[:6]))

	// slot 10 sits at index 9; it moves to the end of the on-court group
	idx, err = boxscore.ToggleOnCourt(&m.BoxScore, model.SideA, 9)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)
	assert.Equal(t, "Lakers-10", team.Roster[4].ID)
	assert.Equal(t, "Lakers-2", team.Roster[5].ID)
	assertPartitioned(t, team.Roster)
	assert.Equal(t, model.MaxOnCourt, team.OnCourtCount())
}

func TestToggleOnCourt_RandomSequenceKeepsCap(t *testing.T) {
	m := newMatch(t)
	r := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < 1000; i++ {
		_, err := boxscore.ToggleOnCourt(&m.BoxScore, model.SideB, r.IntN(model.RosterSize))
		if err != nil {
			require.ErrorIs(t, err, boxscore.ErrCourtFull)
		}
		require.LessOrEqual(t, m.BoxScore.TeamB.OnCourtCount(), model.MaxOnCourt)
		assertPartitioned(t, m.BoxScore.TeamB.Roster)
	}
}

func TestTotals_SumWholeRoster(t *testing.T) {
	m := newMatch(t)
	require.NoError(t, boxscore.Adjust(&m.BoxScore, model.SideA, 0, model.StatTwoPtMade, 1))
	require.NoError(t, boxscore.Adjust(&m.BoxScore, model.SideA, 14, model.StatThreePtMade, 1))
	require.NoError(t, boxscore.Adjust(&m.BoxScore, model.SideA, 14, model.StatAssists, 4))
	require.NoError(t, boxscore.Adjust(&m.BoxScore, model.SideB, 2, model.StatFreeThrowsMade, 1))

	tot := boxscore.MatchTotals(m.BoxScore)
	assert.Equal(t, 5, tot.TeamA.Points)
	assert.Equal(t, 4, tot.TeamA.Assists)
	assert.Equal(t, "1-1", tot.TeamA.Shooting(model.ShotThree))
	assert.Equal(t, 1, tot.TeamB.Points)
	assert.Equal(t, 1, tot.TeamB.FreeThrowsAttempted)
}

func TestClone_ResetsCountersAndOrder(t *testing.T) {
	g := newGen(3)
	src := g.NewMatch("2024-03-01", "Lakers", "Celtics")
	require.NoError(t, boxscore.Adjust(&src.BoxScore, model.SideA, 0, model.StatTwoPtMade, 1))
	_, err := boxscore.ToggleOnCourt(&src.BoxScore, model.SideA, 0)
	require.NoError(t, err)
	_, err = boxscore.ToggleOnCourt(&src.BoxScore, model.SideA, 10)
	require.NoError(t, err)

	cl := g.CloneMatch(src, "2024-03-08")
	assert.NotEqual(t, src.ID, cl.ID)
	assert.Equal(t, "Lakers vs Celtics - 2024-03-08", cl.Name)
	for i, p := range cl.BoxScore.TeamA.Roster {
		assert.Equal(t, i+1, p.Slot)
		assert.Equal(t, i < model.MaxOnCourt, p.OnCourt)
		assert.Equal(t, model.StatLine{}, p.StatLine)
	}
	for i := range src.BoxScore.TeamB.Roster {
		s, c := src.BoxScore.TeamB.Roster[i], cl.BoxScore.TeamB.Roster[i]
		assert.Equal(t, s.ID, c.ID)
		assert.Equal(t, s.Number, c.Number)
		assert.Equal(t, s.FullName(), c.FullName())
	}

	cl.BoxScore.TeamA.Roster[0].FirstName = "Changed"
	for _, p := range src.BoxScore.TeamA.Roster {
		assert.NotEqual(t, "Changed", p.FirstName)
	}
}

func TestEditSession(t *testing.T) {
	m := newMatch(t)
	sess := boxscore.BeginEdit(m)
	assert.Equal(t, m.ID, sess.MatchID())

	require.NoError(t, sess.SetIdentity(model.SideA, 0, boxscore.FieldFirstName, "  Michael "))
	require.NoError(t, sess.SetIdentity(model.SideA, 0, boxscore.FieldSurname, "Jordan"))
	require.NoError(t, sess.SetIdentity(model.SideA, 0, boxscore.FieldNumber, "23"))
	assert.NotEqual(t, "Michael", m.BoxScore.TeamA.Roster[0].FirstName, "draft must be detached")

	var ie *boxscore.IdentityError
	err := sess.SetIdentity(model.SideA, 1, boxscore.FieldNumber, "100")
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, boxscore.FieldNumber, ie.Field)
	assert.ErrorIs(t, err, boxscore.ErrInvalidIdentity)
	assert.ErrorIs(t, sess.SetIdentity(model.SideA, 1, boxscore.FieldSurname, "  "), boxscore.ErrInvalidIdentity)
	assert.ErrorIs(t, sess.SetIdentity(model.SideA, 1, "points", "3"), boxscore.ErrInvalidIdentity)
	assert.ErrorIs(t, sess.SetIdentity(model.SideB, 20, boxscore.FieldSurname, "X"), boxscore.ErrPlayerIndex)

	sess.Commit(&m)
	assert.Equal(t, "Michael Jordan", m.BoxScore.TeamA.Roster[0].FullName())
	assert.Equal(t, 23, m.BoxScore.TeamA.Roster[0].Number)

	require.NoError(t, sess.SetIdentity(model.SideA, 0, boxscore.FieldSurname, "Jackson"))
	assert.Equal(t, "Jordan", m.BoxScore.TeamA.Roster[0].Surname, "commit must not alias draft")
}

func ids(ps []model.Player) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func assertPartitioned(t *testing.T, roster []model.Player) {
	t.Helper()
	seenBench := false
	for _, p := range roster {
		if !p.OnCourt {
			seenBench = true
			continue
		}
		require.False(t, seenBench, "on-court player %s after bench player", p.ID)
	}
}
