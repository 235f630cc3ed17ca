package boxscore

import (
	"sort"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// ToggleOnCourt flips a player's on-court flag and re-partitions the roster so on-court
// players come first, keeping relative order inside each group. It returns the player's
// index after the re-partition.
func ToggleOnCourt(bs *model.BoxScore, side model.Side, index int) (int, error) {
	p, err := player(bs, side, index)
	if err != nil {
		return 0, err
	}
	team := bs.Team(side)
	if !p.OnCourt && team.OnCourtCount() >= model.MaxOnCourt {
		return 0, ErrCourtFull
	}
	id := p.ID
	p.OnCourt = !p.OnCourt

	partition(team.Roster)

	for i := range team.Roster {
		if team.Roster[i].ID == id {
			return i, nil
		}
	}
	return index, nil
}

// partition is a stable sort keyed descending on the on-court flag.
func partition(roster []model.Player) {
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].OnCourt && !roster[j].OnCourt
	})
}
