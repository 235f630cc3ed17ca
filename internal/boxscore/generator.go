package boxscore

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

var firstNames = []string{
	"LeBron", "Kevin", "Stephen", "James", "Anthony", "Kawhi", "Giannis", "Luka",
	"Nikola", "Joel", "Damian", "Jayson", "Devin", "Zion", "Ja",
}

var lastNames = []string{
	"James", "Durant", "Curry", "Harden", "Davis", "Leonard", "Antetokounmpo", "Dončić",
	"Jokić", "Embiid", "Lillard", "Tatum", "Booker", "Williamson", "Morant",
}

// Generator builds placeholder rosters and new matches.
// Random source, id factory and clock are injectable so tests stay deterministic.
type Generator struct {
	rnd   *rand.Rand
	newID func() string
	now   func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRand sets the random source used for names and jersey numbers.
func WithRand(r *rand.Rand) Option { return func(g *Generator) { g.rnd = r } }

// WithIDFunc sets the match id factory.
func WithIDFunc(f func() string) Option { return func(g *Generator) { g.newID = f } }

// WithClock sets the clock used for CreatedAt.
func WithClock(f func() time.Time) Option { return func(g *Generator) { g.now = f } }

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rnd:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Roster returns RosterSize players with distinct "First Last" names, random jersey numbers
// in [0,100), zeroed counters and the first MaxOnCourt flagged on court.
// The name space is 15×15 so the uniqueness loop terminates quickly for 15 draws.
func (g *Generator) Roster(teamName string) []model.Player {
	seen := make(map[string]struct{}, model.RosterSize)
	roster := make([]model.Player, 0, model.RosterSize)
	for len(roster) < model.RosterSize {
		first := firstNames[g.rnd.IntN(len(firstNames))]
		last := lastNames[g.rnd.IntN(len(lastNames))]
		key := first + " " + last
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		slot := len(roster) + 1
		roster = append(roster, model.Player{
			ID:        fmt.Sprintf("%s-%d", teamName, slot),
			Slot:      slot,
			Number:    g.rnd.IntN(100),
			FirstName: first,
			Surname:   last,
			OnCourt:   slot <= model.MaxOnCourt,
		})
	}
	return roster
}

// NewMatch creates a match with fresh rosters for both teams.
func (g *Generator) NewMatch(date, home, away string) model.Match {
	return model.Match{
		ID:   g.newID(),
		Name: model.MatchName(home, away, date),
		Date: date,
		BoxScore: model.BoxScore{
			TeamA: model.Team{Name: home, Roster: g.Roster(home)},
			TeamB: model.Team{Name: away, Roster: g.Roster(away)},
		},
		CreatedAt: g.now(),
	}
}

// CloneMatch is Clone with an id and timestamp from the generator.
func (g *Generator) CloneMatch(src model.Match, date string) model.Match {
	m := Clone(src, date, g.newID())
	m.CreatedAt = g.now()
	return m
}
