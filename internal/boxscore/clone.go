package boxscore

import (
	"sort"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// Clone copies team names and player identities from src into a new match with the given
// date and id. Counters are zeroed, generation order is restored and the first five are on court.
func Clone(src model.Match, date, id string) model.Match {
	return model.Match{
		ID:   id,
		Name: model.MatchName(src.BoxScore.TeamA.Name, src.BoxScore.TeamB.Name, date),
		Date: date,
		BoxScore: model.BoxScore{
			TeamA: resetTeam(src.BoxScore.TeamA),
			TeamB: resetTeam(src.BoxScore.TeamB),
		},
	}
}

func resetTeam(t model.Team) model.Team {
	roster := make([]model.Player, len(t.Roster))
	for i, p := range t.Roster {
		roster[i] = model.Player{
			ID:        p.ID,
			Slot:      p.Slot,
			Number:    p.Number,
			FirstName: p.FirstName,
			Surname:   p.Surname,
		}
	}
	sort.SliceStable(roster, func(i, j int) bool { return roster[i].Slot < roster[j].Slot })
	for i := range roster {
		roster[i].OnCourt = i < model.MaxOnCourt
	}
	return model.Team{Name: t.Name, Roster: roster}
}
