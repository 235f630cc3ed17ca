package service

import (
	"context"
	"strings"
	"time"

	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/model"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
)

// MatchSummary is one row of the home screen list.
type MatchSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	CreatedAt time.Time `json:"created_at"`
}

func summarize(m model.Match) MatchSummary {
	tot := boxscore.MatchTotals(m.BoxScore)
	return MatchSummary{
		ID:        m.ID,
		Name:      m.Name,
		Date:      m.Date,
		HomeTeam:  m.BoxScore.TeamA.Name,
		AwayTeam:  m.BoxScore.TeamB.Name,
		HomeScore: tot.TeamA.Points,
		AwayScore: tot.TeamB.Points,
		CreatedAt: m.CreatedAt,
	}
}

// ListMatches returns a page of the match list in creation order.
func (t *Tracker) ListMatches(_ context.Context, page repository.Page) (repository.PageResult[MatchSummary], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLoggedIn(); err != nil {
		return repository.PageResult[MatchSummary]{}, err
	}
	all := make([]MatchSummary, len(t.state.Matches))
	for i, m := range t.state.Matches {
		all[i] = summarize(m)
	}
	return repository.Paginate(all, normalizePage(page)), nil
}

// GetMatch returns a detached copy of one match.
func (t *Tracker) GetMatch(_ context.Context, id string) (model.Match, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireLoggedIn(); err != nil {
		return model.Match{}, err
	}
	i := t.indexOf(id)
	if i < 0 {
		return model.Match{}, repository.ErrNotFound
	}
	return t.state.Matches[i].Clone(), nil
}

// CreateMatch generates fresh rosters for both teams and appends the match.
func (t *Tracker) CreateMatch(ctx context.Context, date, home, away string) (model.Match, error) {
	start := time.Now()
	date, home, away = strings.TrimSpace(date), strings.TrimSpace(home), strings.TrimSpace(away)
	if err := validateNewMatch(date, home, away); err != nil {
		t.log.Debug().Str("home", home).Str("away", away).Str("date", date).Interface("field_errors", FieldErrors(err)).Msg("match validation failed")
		return model.Match{}, err
	}

	t.mu.Lock()
	defer t.flush(ctx)
	defer t.mu.Unlock()
	if err := t.requireLoggedIn(); err != nil {
		return model.Match{}, err
	}
	m := t.gen.NewMatch(date, home, away)
	t.state.Matches = append(t.state.Matches, m)
	t.commit(ctx, snapshotEvent(model.EventMatchCreated, m))

	t.log.Info().Dur("took", time.Since(start)).Str("match_id", m.ID).Str("name", m.Name).Msg("match created")
	return m.Clone(), nil
}

// CloneMatch starts a new match from src's team names and roster identities with every counter
// reset. An empty date means today.
func (t *Tracker) CloneMatch(ctx context.Context, srcID, date string) (model.Match, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = t.now().Format(dateLayout)
	}
	if !isValidDate(date) {
		return model.Match{}, NewInvalidInputError([]FieldError{{Field: "date", Message: "must be in YYYY-MM-DD format"}})
	}

	t.mu.Lock()
	defer t.flush(ctx)
	defer t.mu.Unlock()
	if err := t.requireLoggedIn(); err != nil {
		return model.Match{}, err
	}
	i := t.indexOf(srcID)
	if i < 0 {
		return model.Match{}, repository.ErrNotFound
	}
	m := t.gen.CloneMatch(t.state.Matches[i], date)
	t.state.Matches = append(t.state.Matches, m)
	t.commit(ctx, snapshotEvent(model.EventMatchCreated, m))

	t.log.Info().Str("match_id", m.ID).Str("source_id", srcID).Str("name", m.Name).Msg("match cloned")
	return m.Clone(), nil
}

// DeleteMatch removes a match with its teams and players. Deleting the open match returns to Home.
func (t *Tracker) DeleteMatch(ctx context.Context, id string) (SessionView, error) {
	t.mu.Lock()
	defer t.flush(ctx)
	defer t.mu.Unlock()
	if err := t.requireLoggedIn(); err != nil {
		return t.sessionLocked(), err
	}
	i := t.indexOf(id)
	if i < 0 {
		return t.sessionLocked(), repository.ErrNotFound
	}
	t.state.Matches = append(t.state.Matches[:i:i], t.state.Matches[i+1:]...)
	if t.state.SelectedID == id {
		t.state.Screen = model.ScreenHome
		t.state.SelectedID = ""
		t.state.Edit = nil
	}
	t.commit(ctx, model.MatchEvent{Type: model.EventMatchDeleted, MatchID: id})

	t.log.Info().Str("match_id", id).Int("remaining", len(t.state.Matches)).Msg("match deleted")
	return t.sessionLocked(), nil
}

// HasMatch reports whether id exists, regardless of screen. Live watchers use it.
func (t *Tracker) HasMatch(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.indexOf(id) >= 0
}
