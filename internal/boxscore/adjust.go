package boxscore

import (
	"math"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// Adjust applies delta to one counter of one player.
//
//   - simple counters: max(0, old+delta), no upper bound
//   - makes, delta > 0: one attempt is added, then makes move by delta clamped to [0, attempts]
//   - makes, delta < 0: only makes move, clamped at 0; attempts are never lowered implicitly
//   - attempts: old+delta, rejected with ErrAttemptsBelowMakes when the result is below makes
//
// Points are recomputed after every accepted call. Rejections leave the player untouched.
func Adjust(bs *model.BoxScore, side model.Side, index int, stat model.StatID, delta int) error {
	p, err := player(bs, side, index)
	if err != nil {
		return err
	}

	switch stat.Kind() {
	case model.KindSimple:
		c := p.Counter(stat)
		*c = max(0, addSat(*c, delta))
	case model.KindMake:
		made, attempted := p.ShotCounters(stat.Shot())
		if delta > 0 {
			*attempted = addSat(*attempted, 1)
			*made = min(addSat(*made, delta), *attempted)
		} else {
			*made = max(0, *made+delta)
		}
	case model.KindAttempt:
		made, attempted := p.ShotCounters(stat.Shot())
		next := addSat(*attempted, delta)
		if next < *made {
			return ErrAttemptsBelowMakes
		}
		*attempted = next
	default:
		return ErrUnknownStat
	}

	p.Points = p.ComputePoints()
	return nil
}

// addSat adds delta to a non-negative counter, saturating at math.MaxInt.
func addSat(v, delta int) int {
	if delta > 0 && v > math.MaxInt-delta {
		return math.MaxInt
	}
	return v + delta
}

// player resolves a pointer into the roster so callers mutate in place.
func player(bs *model.BoxScore, side model.Side, index int) (*model.Player, error) {
	team := bs.Team(side)
	if team == nil {
		return nil, ErrUnknownSide
	}
	if index < 0 || index >= len(team.Roster) {
		return nil, ErrPlayerIndex
	}
	return &team.Roster[index], nil
}
