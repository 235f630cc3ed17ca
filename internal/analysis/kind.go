// Package analysis turns a box score into a prompt for an external text-generation endpoint
// and guards the single outstanding request.
package analysis

import "strings"

// Kind selects one of the fixed prompt templates.
type Kind string

const (
	KindSummary Kind = "summary"
	KindTeamA   Kind = "team_a"
	KindTeamB   Kind = "team_b"
	KindMVP     Kind = "mvp"
)

// ParseKind accepts the canonical names plus the camel-case ones older clients send.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "summary":
		return KindSummary, true
	case "team_a", "teama":
		return KindTeamA, true
	case "team_b", "teamb":
		return KindTeamB, true
	case "mvp":
		return KindMVP, true
	default:
		return "", false
	}
}
