package analysis

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// Fixed user-facing texts for failed requests.
const (
	MsgInvalidResponse = "Could not get a valid response from the AI."
	MsgTransportError  = "An error occurred while contacting the AI. Please check your connection and try again."
)

// ErrAnalysisInFlight rejects a request while another one is still outstanding.
var ErrAnalysisInFlight = errors.New("analysis already in progress")

// Result is what the caller shows. Failed results carry one of the fixed messages as Text.
type Result struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text"`
	Failed bool   `json:"failed"`
}

// Analyzer allows one outstanding request at a time and never returns generator errors.
type Analyzer struct {
	gen      Generator
	inFlight atomic.Bool
	log      zerolog.Logger
}

func NewAnalyzer(gen Generator, logger zerolog.Logger) *Analyzer {
	l := logger.With().Str("module", "analysis").Str("component", "analyzer").Logger()
	return &Analyzer{gen: gen, log: l}
}

// InFlight reports whether a request is outstanding.
func (a *Analyzer) InFlight() bool { return a.inFlight.Load() }

// Analyze renders the prompt for kind and asks the generator. No retries.
func (a *Analyzer) Analyze(ctx context.Context, kind Kind, m model.Match) (Result, error) {
	if !a.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrAnalysisInFlight
	}
	defer a.inFlight.Store(false)

	start := time.Now()
	text, err := a.gen.Generate(ctx, Prompt(kind, m))
	if err != nil {
		msg := MsgTransportError
		if errors.Is(err, ErrInvalidResponse) {
			msg = MsgInvalidResponse
		}
		a.log.Warn().Err(err).Str("kind", string(kind)).Str("match_id", m.ID).Dur("took", time.Since(start)).Msg("analysis failed")
		return Result{Kind: kind, Text: msg, Failed: true}, nil
	}
	a.log.Info().Str("kind", string(kind)).Str("match_id", m.ID).Dur("took", time.Since(start)).Msg("analysis done")
	return Result{Kind: kind, Text: text}, nil
}
