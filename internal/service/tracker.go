// Package service holds the application state manager: the screen state machine,
// the match list and the orchestration of persistence, notification and analysis.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/analysis"
	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/model"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
)

const notifyTimeout = 2 * time.Second

// Notifier receives an event after every successful mutation of the match list.
type Notifier interface {
	Notify(ctx context.Context, ev model.MatchEvent) error
}

// Analyzer produces narrative analysis for a match.
type Analyzer interface {
	Analyze(ctx context.Context, kind analysis.Kind, m model.Match) (analysis.Result, error)
}

// AppState is the whole mutable application state. Only Tracker touches it.
type AppState struct {
	Screen     model.Screen
	Matches    []model.Match
	SelectedID string
	Edit       *boxscore.EditSession
}

// SessionView is the read-only projection of the state machine.
type SessionView struct {
	Screen     model.Screen `json:"screen"`
	SelectedID string       `json:"selected_id,omitempty"`
	Editing    bool         `json:"editing"`
	Matches    int          `json:"matches"`
}

// Tracker owns AppState behind one mutex; every method is a complete transition.
type Tracker struct {
	mu        sync.Mutex
	state     AppState
	outbox    []model.MatchEvent
	notifyMu  sync.Mutex
	store     repository.MatchRepository
	gen       *boxscore.Generator
	analyzer  Analyzer
	notifiers []Notifier
	now       func() time.Time
	log       zerolog.Logger
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithAnalyzer enables Analyze; without it Analyze returns ErrAnalysisDisabled.
func WithAnalyzer(a Analyzer) Option { return func(t *Tracker) { t.analyzer = a } }

// WithNotifiers appends event sinks.
func WithNotifiers(n ...Notifier) Option {
	return func(t *Tracker) { t.notifiers = append(t.notifiers, n...) }
}

// WithClock overrides the clock used for default dates and event timestamps.
func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

// NewTracker loads the saved match list and starts logged out.
func NewTracker(ctx context.Context, store repository.MatchRepository, gen *boxscore.Generator, logger zerolog.Logger, opts ...Option) *Tracker {
	l := logger.With().Str("module", "service").Str("component", "tracker").Logger()
	t := &Tracker{
		store: store,
		gen:   gen,
		now:   time.Now,
		log:   l,
	}
	for _, o := range opts {
		o(t)
	}
	t.state = AppState{Screen: model.ScreenLoggedOut, Matches: store.Load(ctx)}
	l.Info().Int("matches", len(t.state.Matches)).Int("notifiers", len(t.notifiers)).Msg("tracker ready")
	return t
}

// Session returns the current position in the state machine.
func (t *Tracker) Session() SessionView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionLocked()
}

func (t *Tracker) sessionLocked() SessionView {
	return SessionView{
		Screen:     t.state.Screen,
		SelectedID: t.state.SelectedID,
		Editing:    t.state.Edit != nil,
		Matches:    len(t.state.Matches),
	}
}

// Login moves LoggedOut → Home. No credentials are checked.
func (t *Tracker) Login(_ context.Context) (SessionView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Screen != model.ScreenLoggedOut {
		return t.sessionLocked(), ErrWrongScreen
	}
	t.state.Screen = model.ScreenHome
	t.log.Info().Msg("logged in")
	return t.sessionLocked(), nil
}

// Logout returns to LoggedOut from anywhere and drops any selection or edit session.
func (t *Tracker) Logout(_ context.Context) SessionView {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Screen = model.ScreenLoggedOut
	t.state.SelectedID = ""
	t.state.Edit = nil
	t.log.Info().Msg("logged out")
	return t.sessionLocked()
}

// Open moves Home → MatchDetail for the given match.
func (t *Tracker) Open(_ context.Context, id string) (SessionView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Screen != model.ScreenHome {
		return t.sessionLocked(), ErrWrongScreen
	}
	if t.indexOf(id) < 0 {
		return t.sessionLocked(), repository.ErrNotFound
	}
	t.state.Screen = model.ScreenMatchDetail
	t.state.SelectedID = id
	t.state.Edit = nil
	t.log.Debug().Str("match_id", id).Msg("match opened")
	return t.sessionLocked(), nil
}

// Back moves MatchDetail → Home; an open edit session is discarded.
func (t *Tracker) Back(_ context.Context) (SessionView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Screen != model.ScreenMatchDetail {
		return t.sessionLocked(), ErrWrongScreen
	}
	if t.state.Edit != nil {
		t.log.Debug().Str("match_id", t.state.SelectedID).Msg("unsaved roster edits discarded")
	}
	t.state.Screen = model.ScreenHome
	t.state.SelectedID = ""
	t.state.Edit = nil
	return t.sessionLocked(), nil
}

func (t *Tracker) indexOf(id string) int {
	for i := range t.state.Matches {
		if t.state.Matches[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) requireLoggedIn() error {
	if t.state.Screen == model.ScreenLoggedOut {
		return ErrWrongScreen
	}
	return nil
}

// selected returns a pointer to the open match. Caller holds mu.
func (t *Tracker) selected() (*model.Match, error) {
	if t.state.Screen != model.ScreenMatchDetail {
		return nil, ErrWrongScreen
	}
	i := t.indexOf(t.state.SelectedID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	return &t.state.Matches[i], nil
}

// commit persists the whole list and queues the event for flush. Store failures are logged,
// never returned: the in-memory state stays authoritative. Callers hold t.mu.
func (t *Tracker) commit(ctx context.Context, ev model.MatchEvent) {
	if err := t.store.Save(ctx, t.state.Matches); err != nil {
		t.log.Error().Err(err).Str("event", string(ev.Type)).Str("match_id", ev.MatchID).Msg("persist matches failed")
	}
	if len(t.notifiers) == 0 {
		return
	}
	ev.At = t.now().UTC()
	t.outbox = append(t.outbox, ev)
}

// flush delivers queued events in commit order without holding t.mu, so a slow notifier never
// blocks the next mutation. Only one goroutine delivers at a time; a caller that finds delivery
// in progress leaves its events to that goroutine, which re-checks the outbox after unlocking.
func (t *Tracker) flush(ctx context.Context) {
	for {
		if !t.notifyMu.TryLock() {
			return
		}
		t.mu.Lock()
		batch := t.outbox
		t.outbox = nil
		t.mu.Unlock()

		t.deliver(ctx, batch)
		t.notifyMu.Unlock()

		t.mu.Lock()
		pending := len(t.outbox)
		t.mu.Unlock()
		if pending == 0 {
			return
		}
	}
}

func (t *Tracker) deliver(ctx context.Context, batch []model.MatchEvent) {
	if len(batch) == 0 {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	for _, ev := range batch {
		for _, n := range t.notifiers {
			if err := n.Notify(nctx, ev); err != nil {
				t.log.Warn().Err(err).Str("event", string(ev.Type)).Str("match_id", ev.MatchID).Msg("notify failed")
			}
		}
	}
}

func snapshotEvent(typ model.EventType, m model.Match) model.MatchEvent {
	cp := m.Clone()
	totals := boxscore.MatchTotals(cp.BoxScore)
	return model.MatchEvent{Type: typ, MatchID: m.ID, Match: &cp, Totals: &totals}
}
