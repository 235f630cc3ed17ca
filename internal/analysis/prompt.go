package analysis

import (
	"fmt"
	"strings"

	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// RenderBoxScore renders the compact text form the prompts embed: match name, then per team
// every player's number, name, points, rebounds and assists, then the team score.
func RenderBoxScore(m model.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match: %s\n\n", m.Name)
	for _, team := range []model.Team{m.BoxScore.TeamA, m.BoxScore.TeamB} {
		fmt.Fprintf(&b, "Team: %s\n", team.Name)
		for _, p := range team.Roster {
			fmt.Fprintf(&b, "- Player #%d %s %s: %d PTS, %d REB, %d AST\n",
				p.Number, p.FirstName, p.Surname, p.Points, p.Rebounds(), p.Assists)
		}
		fmt.Fprintf(&b, "Total Score: %d\n\n", boxscore.TeamTotals(team).Points)
	}
	return b.String()
}

// Prompt returns the full request text for kind. Unknown kinds fall back to the summary.
func Prompt(kind Kind, m model.Match) string {
	var lead string
	switch kind {
	case KindTeamA:
		lead = teamPrompt(m.BoxScore.TeamA.Name)
	case KindTeamB:
		lead = teamPrompt(m.BoxScore.TeamB.Name)
	case KindMVP:
		lead = "Based on the box score, identify the most valuable player (MVP) for each team and briefly explain why, citing their key statistics.\n\n"
	default:
		lead = "Based on the following basketball box score data, please provide a concise, narrative-style game summary. Mention the final score and key team performances.\n\n"
	}
	return lead + RenderBoxScore(m)
}

func teamPrompt(name string) string {
	return fmt.Sprintf("Analyze the performance of %s based on this box score. What were their strengths and weaknesses in this game?\n\n", name)
}
