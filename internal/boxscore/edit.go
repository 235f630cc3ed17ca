package boxscore

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// Identity fields editable in a roster edit session.
const (
	FieldNumber    = "number"
	FieldFirstName = "first_name"
	FieldSurname   = "surname"
)

const maxNameLen = 50

// EditSession stages identity edits on a detached copy of a box score.
// Nothing reaches the match until Commit.
type EditSession struct {
	matchID string
	draft   model.BoxScore
}

// BeginEdit snapshots the match's box score.
func BeginEdit(m model.Match) *EditSession {
	return &EditSession{matchID: m.ID, draft: m.BoxScore.Clone()}
}

func (s *EditSession) MatchID() string { return s.matchID }

// Draft returns a copy of the staged box score.
func (s *EditSession) Draft() model.BoxScore { return s.draft.Clone() }

// SetIdentity changes one identity field of one player in the draft.
func (s *EditSession) SetIdentity(side model.Side, index int, field, value string) error {
	p, err := player(&s.draft, side, index)
	if err != nil {
		return err
	}
	switch field {
	case FieldNumber:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 || n > 99 {
			return &IdentityError{Field: field, Message: "must be an integer between 0 and 99"}
		}
		p.Number = n
	case FieldFirstName, FieldSurname:
		v := strings.TrimSpace(value)
		if v == "" {
			return &IdentityError{Field: field, Message: "must not be empty"}
		}
		if utf8.RuneCountInString(v) > maxNameLen {
			return &IdentityError{Field: field, Message: "length must be at most 50"}
		}
		if field == FieldFirstName {
			p.FirstName = v
		} else {
			p.Surname = v
		}
	default:
		return &IdentityError{Field: field, Message: "unknown field"}
	}
	return nil
}

// Commit replaces the match's box score with the draft. The session keeps its own copy,
// so later edits never alias the committed state.
func (s *EditSession) Commit(m *model.Match) {
	m.BoxScore = s.draft.Clone()
}
