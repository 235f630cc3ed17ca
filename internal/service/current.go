package service

import (
	"context"

	"github.com/maxviazov/boxscore-tracker/internal/analysis"
	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/export"
	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// MatchView is the match detail screen: the match, its totals and the staged roster when editing.
type MatchView struct {
	Match   model.Match     `json:"match"`
	Totals  model.Totals    `json:"totals"`
	Editing bool            `json:"editing"`
	Draft   *model.BoxScore `json:"draft,omitempty"`
}

// Export is a rendered CSV attachment.
type Export struct {
	FileName    string
	ContentType string
	Body        []byte
}

func (t *Tracker) viewLocked(m *model.Match) MatchView {
	cp := m.Clone()
	v := MatchView{Match: cp, Totals: boxscore.MatchTotals(cp.BoxScore)}
	if t.state.Edit != nil {
		d := t.state.Edit.Draft()
		v.Editing = true
		v.Draft = &d
	}
	return v
}

// Current returns the open match.
func (t *Tracker) Current(_ context.Context) (MatchView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, err := t.selected()
	if err != nil {
		return MatchView{}, err
	}
	return t.viewLocked(m), nil
}

// AdjustStat applies delta to one counter of one player and returns the player afterwards.
func (t *Tracker) AdjustStat(ctx context.Context, side model.Side, index int, stat model.StatID, delta int) (model.Player, error) {
	t.mu.Lock()
	defer t.flush(ctx)
	defer t.mu.Unlock()
	m, err := t.selected()
	if err != nil {
		return model.Player{}, err
	}
	if t.state.Edit != nil {
		return model.Player{}, ErrEditInProgress
	}
	if err := boxscore.Adjust(&m.BoxScore, side, index, stat, delta); err != nil {
		t.log.Debug().Err(err).Str("match_id", m.ID).Str("team", side.String()).Int("index", index).Str("stat", stat.String()).Int("delta", delta).Msg("adjust rejected")
		return model.Player{}, translateEngineError(err)
	}
	p := m.BoxScore.Team(side).Roster[index]
	t.commit(ctx, snapshotEvent(model.EventStatAdjusted, *m))
	return p, nil
}

// ToggleOnCourt flips a player's court flag and returns the roster index the player moved to.
func (t *Tracker) ToggleOnCourt(ctx context.Context, side model.Side, index int) (model.Player, int, error) {
	t.mu.Lock()
	defer t.flush(ctx)
	defer t.mu.Unlock()
	m, err := t.selected()
	if err != nil {
		return model.Player{}, -1, err
	}
	if t.state.Edit != nil {
		return model.Player{}, -1, ErrEditInProgress
	}
	at, err := boxscore.ToggleOnCourt(&m.BoxScore, side, index)
	if err != nil {
		return model.Player{}, -1, translateEngineError(err)
	}
	p := m.BoxScore.Team(side).Roster[at]
	t.commit(ctx, snapshotEvent(model.EventCourtToggled, *m))
	t.log.Debug().Str("match_id", m.ID).Str("player_id", p.ID).Bool("on_court", p.OnCourt).Int("index", at).Msg("court toggled")
	return p, at, nil
}

// BeginEdit opens a roster edit session on a copy of the current box score.
func (t *Tracker) BeginEdit(_ context.Context) (MatchView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, err := t.selected()
	if err != nil {
		return MatchView{}, err
	}
	if t.state.Edit != nil {
		return MatchView{}, ErrEditInProgress
	}
	t.state.Edit = boxscore.BeginEdit(*m)
	return t.viewLocked(m), nil
}

// EditPlayer stages one identity field change in the open edit session.
func (t *Tracker) EditPlayer(_ context.Context, side model.Side, index int, field, value string) (model.Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.selected(); err != nil {
		return model.Player{}, err
	}
	if t.state.Edit == nil {
		return model.Player{}, ErrNoEditSession
	}
	if err := t.state.Edit.SetIdentity(side, index, field, value); err != nil {
		return model.Player{}, translateEngineError(err)
	}
	d := t.state.Edit.Draft()
	return d.Team(side).Roster[index], nil
}

// SaveEdit writes the staged identities into the match and closes the session.
func (t *Tracker) SaveEdit(ctx context.Context) (MatchView, error) {
	t.mu.Lock()
	defer t.flush(ctx)
	defer t.mu.Unlock()
	m, err := t.selected()
	if err != nil {
		return MatchView{}, err
	}
	if t.state.Edit == nil {
		return MatchView{}, ErrNoEditSession
	}
	t.state.Edit.Commit(m)
	t.state.Edit = nil
	t.commit(ctx, snapshotEvent(model.EventRosterSaved, *m))
	t.log.Info().Str("match_id", m.ID).Msg("roster saved")
	return t.viewLocked(m), nil
}

// ExportCSV renders the open match as a CSV attachment.
func (t *Tracker) ExportCSV(_ context.Context) (Export, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, err := t.selected()
	if err != nil {
		return Export{}, err
	}
	return Export{FileName: export.FileName(*m), ContentType: export.ContentType, Body: export.CSV(*m)}, nil
}

// Analyze asks the analyzer about the open match. The lock is not held during the request.
func (t *Tracker) Analyze(ctx context.Context, kind analysis.Kind) (analysis.Result, error) {
	if t.analyzer == nil {
		return analysis.Result{}, ErrAnalysisDisabled
	}
	t.mu.Lock()
	m, err := t.selected()
	if err != nil {
		t.mu.Unlock()
		return analysis.Result{}, err
	}
	snap := m.Clone()
	t.mu.Unlock()

	return t.analyzer.Analyze(ctx, kind, snap)
}
