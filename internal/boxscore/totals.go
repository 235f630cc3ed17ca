package boxscore

import "github.com/maxviazov/boxscore-tracker/internal/model"

// TeamTotals sums every counter over the whole roster, on court or not.
func TeamTotals(team model.Team) model.StatLine {
	var total model.StatLine
	for _, p := range team.Roster {
		total = total.Add(p.StatLine)
	}
	return total
}

func MatchTotals(bs model.BoxScore) model.Totals {
	return model.Totals{TeamA: TeamTotals(bs.TeamA), TeamB: TeamTotals(bs.TeamB)}
}
