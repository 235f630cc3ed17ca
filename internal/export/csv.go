// Package export renders a match box score as a downloadable CSV document.
package export

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// ContentType is served alongside the CSV body.
const ContentType = "text/csv; charset=utf-8"

var header = []string{
	"#", "First Name", "Surname", "MIN", "2PTM", "2PTA", "3PTM", "3PTA",
	"FTM", "FTA", "OREB", "DREB", "AST", "STL", "BLK", "TO", "PF", "+/-", "PTS",
}

// CSV writes one block per team: a quoted team-name line, the quoted header, one quoted row
// per player in roster order and a TOTALS line. Blocks are separated by a blank line.
func CSV(m model.Match) []byte {
	var buf bytes.Buffer
	for i, team := range []model.Team{m.BoxScore.TeamA, m.BoxScore.TeamB} {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeRow(&buf, []string{team.Name})
		writeRow(&buf, header)
		for _, p := range team.Roster {
			writeRow(&buf, append([]string{strconv.Itoa(p.Number), p.FirstName, p.Surname}, counters(p.StatLine)...))
		}
		writeRow(&buf, append([]string{"TOTALS", "", ""}, counters(boxscore.TeamTotals(team))...))
	}
	return buf.Bytes()
}

// FileName is the match name with spaces replaced by underscores plus ".csv".
func FileName(m model.Match) string {
	return strings.ReplaceAll(m.Name, " ", "_") + ".csv"
}

func counters(s model.StatLine) []string {
	vals := []int{
		s.Minutes, s.TwoPtMade, s.TwoPtAttempted, s.ThreePtMade, s.ThreePtAttempted,
		s.FreeThrowsMade, s.FreeThrowsAttempted, s.OffensiveRebounds, s.DefensiveRebounds,
		s.Assists, s.Steals, s.Blocks, s.Turnovers, s.Fouls, s.PlusMinus, s.Points,
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// writeRow quotes every field unconditionally and doubles embedded quotes.
func writeRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
