package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/nights-engine/internal/services/events"
	"github.com/jwebster45206/nights-engine/internal/services/history"
	"github.com/jwebster45206/nights-engine/pkg/night"
	"github.com/jwebster45206/nights-engine/pkg/session"
	"github.com/jwebster45206/nights-engine/pkg/storage"
)

const (
	persistTimeout = 3 * time.Second
	recentNights   = 5
)

// persistedMsg reports the result of a background write.
type persistedMsg struct {
	what string
	err  error
}

// historyMsg carries the session's latest nights once an outcome is stored.
type historyMsg struct {
	entries []history.Entry
	depth   int
}

// consoleHost receives engine notifications on the update loop. It never
// blocks: anything that touches Redis is queued as a tea.Cmd and drained by
// the UI after each engine call.
type consoleHost struct {
	sess    *session.Session
	store   storage.Storage
	events  *events.Broadcaster // nil without Redis
	history *history.History    // nil without Redis
	logger  *slog.Logger

	nightDuration time.Duration
	elapsed       time.Duration // time into the night when the pick was made

	palette    map[night.CandidateID]string
	lightOff   map[string]bool
	panting    int
	phase      night.Phase
	outcome    *night.Result
	reloaded   bool
	restarting bool
	muted      bool

	lines []string
	cmds  []tea.Cmd
}

func newConsoleHost(sess *session.Session, store storage.Storage, bc *events.Broadcaster, hist *history.History, logger *slog.Logger) *consoleHost {
	return &consoleHost{
		sess:     sess,
		store:    store,
		events:   bc,
		history:  hist,
		logger:   logger,
		lightOff: make(map[string]bool),
	}
}

func (h *consoleHost) OnNightChanged(n, maxNight int) {
	h.sess.Record(n, maxNight, night.StatusIdle, night.Result{})
	h.outcome = nil
	h.panting = 0
	h.phase = night.PhaseNone
	h.logf("Night %d of %d begins.", n, maxNight)

	if h.events != nil {
		id := h.sess.ID
		h.queue("night event", func(ctx context.Context) error {
			return h.events.PublishNightBegan(ctx, id, n, maxNight)
		})
	}
}

func (h *consoleHost) OnOutcome(r night.Result) {
	h.outcome = &r
	h.sess.Record(h.sess.Night, h.sess.MaxNight, night.StatusEnded, r)

	elapsed := h.elapsed
	if r.Reason == night.ReasonTimedOut {
		elapsed = h.nightDuration
	}

	switch r.Outcome {
	case night.OutcomeWin:
		h.logf("The last glass was clean. You made it through night %d.", h.sess.Night)
	default:
		if r.Reason == night.ReasonTimedOut {
			h.logf("The clock ran out on night %d.", h.sess.Night)
		} else {
			h.logf("Wrong glass on night %d.", h.sess.Night)
		}
	}

	h.saveSession()
	h.publishOutcome(r)
	h.recordOutcome(history.Entry{
		Night:   h.sess.Night,
		Outcome: r.Outcome.String(),
		Reason:  reasonString(r.Reason),
		Elapsed: elapsed.Seconds(),
	})
}

func (h *consoleHost) ReloadScene(resumeAtNight int) {
	if !h.restarting {
		h.appendHistory(history.Entry{
			Night:   resumeAtNight - 1,
			Outcome: "advanced",
			Elapsed: h.elapsed.Seconds(),
		})
	}
	h.sess.ResumeNight = resumeAtNight
	h.reloaded = true
	h.elapsed = 0
	h.lightOff = make(map[string]bool)
	h.saveSession()
}

func (h *consoleHost) OnCue(c night.Cue) {
	switch c.Kind {
	case night.CuePalette:
		h.palette = c.Palette
	case night.CueLightOff:
		h.lightOff[c.Light] = true
		h.logf("The %s goes dark.", strings.ReplaceAll(c.Light, "_", " "))
	case night.CueLightOn:
		delete(h.lightOff, c.Light)
		h.logf("The %s flickers back on.", strings.ReplaceAll(c.Light, "_", " "))
	case night.CuePanting:
		h.panting++
		if !h.muted {
			h.logf("Something breathes in the dark.")
		}
	case night.CuePhase:
		h.phase = c.Phase
	case night.CueIntroEnded:
		h.logger.Debug("Intro ended", "night", c.Night)
	}
}

// selected records the pick so history can note how long the night took.
func (h *consoleHost) selected(n int, id night.CandidateID, remaining time.Duration) {
	h.elapsed = h.nightDuration - remaining
	if h.events != nil {
		sessionID := h.sess.ID
		h.queue("resolving event", func(ctx context.Context) error {
			return h.events.PublishNightResolving(ctx, sessionID, n, string(id))
		})
	}
}

// restart runs fn as a restart rather than an advance.
func (h *consoleHost) restart(n int, fn func() error) error {
	h.restarting = true
	defer func() { h.restarting = false }()
	if err := fn(); err != nil {
		return err
	}
	h.restarted(n)
	return nil
}

func (h *consoleHost) restarted(n int) {
	h.sess.Restarts++
	h.logf("Starting over from night %d.", n)
	if h.events != nil {
		id := h.sess.ID
		h.queue("restart event", func(ctx context.Context) error {
			return h.events.PublishRestarted(ctx, id, n)
		})
	}
	h.saveSession()
}

// takeReload reports and clears a pending scene reload.
func (h *consoleHost) takeReload() bool {
	r := h.reloaded
	h.reloaded = false
	return r
}

// drain returns the queued commands and event log lines.
func (h *consoleHost) drain() ([]tea.Cmd, []string) {
	cmds, lines := h.cmds, h.lines
	h.cmds, h.lines = nil, nil
	return cmds, lines
}

func (h *consoleHost) saveSession() {
	snapshot := *h.sess
	h.queue("session", func(ctx context.Context) error {
		return h.store.SaveSession(ctx, &snapshot)
	})
}

func (h *consoleHost) publishOutcome(r night.Result) {
	if h.events == nil {
		return
	}
	id, n := h.sess.ID, h.sess.Night
	h.queue("outcome event", func(ctx context.Context) error {
		return h.events.PublishOutcome(ctx, id, n, r.Outcome == night.OutcomeWin, reasonString(r.Reason))
	})
}

func (h *consoleHost) appendHistory(e history.Entry) {
	if h.history == nil {
		return
	}
	id := h.sess.ID
	h.queue("history", func(ctx context.Context) error {
		return h.history.Append(ctx, id, e)
	})
}

// recordOutcome appends the final entry and reads back the recent nights for
// the end panel in the same command, so the read sees the write.
func (h *consoleHost) recordOutcome(e history.Entry) {
	if h.history == nil {
		return
	}
	id := h.sess.ID
	h.cmds = append(h.cmds, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := h.history.Append(ctx, id, e); err != nil {
			return persistedMsg{what: "history", err: err}
		}
		entries, err := h.history.Recent(ctx, id, recentNights)
		if err != nil {
			return persistedMsg{what: "history", err: err}
		}
		depth, err := h.history.Depth(ctx, id)
		if err != nil {
			return persistedMsg{what: "history", err: err}
		}
		return historyMsg{entries: entries, depth: depth}
	})
}

func (h *consoleHost) queue(what string, fn func(ctx context.Context) error) {
	h.cmds = append(h.cmds, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return persistedMsg{what: what, err: fn(ctx)}
	})
}

func (h *consoleHost) logf(format string, args ...any) {
	h.lines = append(h.lines, fmt.Sprintf(format, args...))
}

func reasonString(r night.Reason) string {
	if r == night.ReasonNone {
		return ""
	}
	return r.String()
}
