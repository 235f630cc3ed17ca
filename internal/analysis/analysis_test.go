package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func sampleMatch() model.Match {
	a := model.Player{Number: 23, FirstName: "LeBron", Surname: "James"}
	a.TwoPtMade, a.TwoPtAttempted, a.ThreePtMade, a.ThreePtAttempted = 3, 5, 1, 2
	a.FreeThrowsMade, a.FreeThrowsAttempted = 2, 2
	a.OffensiveRebounds, a.DefensiveRebounds, a.Assists = 1, 6, 4
	a.Points = a.ComputePoints()
	b := model.Player{Number: 0, FirstName: "Jayson", Surname: "Tatum"}
	return model.Match{
		ID:   "m1",
		Name: "Lakers vs Celtics - 2024-03-01",
		BoxScore: model.BoxScore{
			TeamA: model.Team{Name: "Lakers", Roster: []model.Player{a}},
			TeamB: model.Team{Name: "Celtics", Roster: []model.Player{b}},
		},
	}
}

func TestRenderBoxScore(t *testing.T) {
	want := "Match: Lakers vs Celtics - 2024-03-01\n\n" +
		"Team: Lakers\n" +
		"- Player #23 LeBron James: 11 PTS, 7 REB, 4 AST\n" +
		"Total Score: 11\n\n" +
		"Team: Celtics\n" +
		"- Player #0 Jayson Tatum: 0 PTS, 0 REB, 0 AST\n" +
		"Total Score: 0\n\n"
	assert.Equal(t, want, RenderBoxScore(sampleMatch()))
}

func TestPrompt_Templates(t *testing.T) {
	m := sampleMatch()
	cases := []struct {
		kind   Kind
		prefix string
	}{
		{KindSummary, "Based on the following basketball box score data, please provide a concise, narrative-style game summary."},
		{KindTeamA, "Analyze the performance of Lakers based on this box score."},
		{KindTeamB, "Analyze the performance of Celtics based on this box score."},
		{KindMVP, "Based on the box score, identify the most valuable player (MVP) for each team"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			p := Prompt(tc.kind, m)
			assert.True(t, strings.HasPrefix(p, tc.prefix), p)
			assert.True(t, strings.HasSuffix(p, RenderBoxScore(m)))
		})
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("teamA")
	assert.True(t, ok)
	assert.Equal(t, KindTeamA, k)
	_, ok = ParseKind("haiku")
	assert.False(t, ok)
}

func TestGeminiClient_Generate(t *testing.T) {
	var gotURL, gotBody string
	client := NewGeminiClient(GeminiConfig{
		BaseURL: "https://example.test/v1beta/",
		APIKey:  "k&y",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			gotURL = req.URL.String()
			raw, _ := io.ReadAll(req.Body)
			gotBody = string(raw)
			return response(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Great game."}]}}]}`), nil
		})},
	})

	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Great game.", text)
	assert.Equal(t, "https://example.test/v1beta/models/gemini-2.0-flash:generateContent?key=k%26y", gotURL)

	var req geminiRequest
	require.NoError(t, json.Unmarshal([]byte(gotBody), &req))
	assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
}

func TestGeminiClient_Failures(t *testing.T) {
	cases := []struct {
		name  string
		rt    roundTripFunc
		errIs error
	}{
		{"transport", func(*http.Request) (*http.Response, error) { return nil, errors.New("dial tcp: refused") }, ErrTransport},
		{"status", func(*http.Request) (*http.Response, error) { return response(503, "boom"), nil }, ErrTransport},
		{"garbage", func(*http.Request) (*http.Response, error) { return response(200, "<html>"), nil }, ErrTransport},
		{"no candidates", func(*http.Request) (*http.Response, error) { return response(200, `{"candidates":[]}`), nil }, ErrInvalidResponse},
		{"no parts", func(*http.Request) (*http.Response, error) {
			return response(200, `{"candidates":[{"content":{"parts":[]}}]}`), nil
		}, ErrInvalidResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := NewGeminiClient(GeminiConfig{APIKey: "secret", HTTPClient: &http.Client{Transport: tc.rt}})
			_, err := client.Generate(context.Background(), "p")
			require.ErrorIs(t, err, tc.errIs)
			assert.NotContains(t, err.Error(), "secret")
		})
	}
}

func TestGeminiClient_WhitespaceTextPassesThrough(t *testing.T) {
	client := NewGeminiClient(GeminiConfig{HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return response(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`), nil
	})}})

	text, err := client.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "  ", text)
}

func TestAnalyzer_GeminiFailuresMapToMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"unavailable", http.StatusServiceUnavailable, "overloaded", MsgTransportError},
		{"html body", http.StatusOK, "<html>", MsgTransportError},
		{"no candidates", http.StatusOK, `{}`, MsgInvalidResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := NewGeminiClient(GeminiConfig{HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				return response(tc.status, tc.body), nil
			})}})
			res, err := NewAnalyzer(client, zerolog.Nop()).Analyze(context.Background(), KindSummary, sampleMatch())
			require.NoError(t, err)
			assert.True(t, res.Failed)
			assert.Equal(t, tc.want, res.Text)
		})
	}
}

type fakeGenerator struct {
	text    string
	err     error
	started chan struct{}
	release chan struct{}
	prompts []string
	mu      sync.Mutex
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.text, f.err
}

func TestAnalyzer_ResultMessages(t *testing.T) {
	cases := []struct {
		name   string
		gen    *fakeGenerator
		want   string
		failed bool
	}{
		{"ok", &fakeGenerator{text: "Lakers won."}, "Lakers won.", false},
		{"transport", &fakeGenerator{err: ErrTransport}, MsgTransportError, true},
		{"invalid", &fakeGenerator{err: ErrInvalidResponse}, MsgInvalidResponse, true},
		{"other", &fakeGenerator{err: errors.New("weird")}, MsgTransportError, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAnalyzer(tc.gen, zerolog.Nop())
			res, err := a.Analyze(context.Background(), KindMVP, sampleMatch())
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Text)
			assert.Equal(t, tc.failed, res.Failed)
			assert.Equal(t, KindMVP, res.Kind)
			assert.False(t, a.InFlight(), "flag must clear after completion")
		})
	}
}

func TestAnalyzer_RejectsDuplicateWhileInFlight(t *testing.T) {
	gen := &fakeGenerator{text: "done", started: make(chan struct{}), release: make(chan struct{})}
	a := NewAnalyzer(gen, zerolog.Nop())

	done := make(chan Result, 1)
	go func() {
		res, _ := a.Analyze(context.Background(), KindSummary, sampleMatch())
		done <- res
	}()
	<-gen.started
	assert.True(t, a.InFlight())

	_, err := a.Analyze(context.Background(), KindSummary, sampleMatch())
	assert.ErrorIs(t, err, ErrAnalysisInFlight)

	close(gen.release)
	select {
	case res := <-done:
		assert.Equal(t, "done", res.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("analysis did not finish")
	}
	assert.False(t, a.InFlight())
	assert.Len(t, gen.prompts, 1)
}
