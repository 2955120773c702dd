package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jwebster45206/nights-engine/internal/config"
	"github.com/jwebster45206/nights-engine/internal/logger"
	"github.com/jwebster45206/nights-engine/internal/services/events"
	"github.com/jwebster45206/nights-engine/internal/services/history"
	"github.com/jwebster45206/nights-engine/pkg/night"
	"github.com/jwebster45206/nights-engine/pkg/scenario"
	"github.com/jwebster45206/nights-engine/pkg/scene"
	"github.com/jwebster45206/nights-engine/pkg/session"
	"github.com/jwebster45206/nights-engine/pkg/storage"
	"github.com/muesli/reflow/wordwrap"
)

const (
	frameInterval = 50 * time.Millisecond

	// shakeColumns converts a shake magnitude into columns of jitter.
	shakeColumns = 20.0

	sensitivityStep = 0.01
	volumeStep      = 0.1
	maxLogLines     = 200
)

// Settings rows in display order.
const (
	settingSensitivity = iota
	settingVolume
	settingFullscreen
	settingCount
)

// GameUI is the BubbleTea model that hosts the night engine.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	cfg     *config.Config
	store   storage.Storage
	events  *events.Broadcaster
	history *history.History
	logger  *slog.Logger

	logViewport viewport.Model
	logLines    []string
	ready       bool
	width       int
	height      int
	err         error
	status      string

	// Scenario selection state
	showScenarioModal bool
	scenarios         []string
	scenarioMap       map[string]string
	selectedScenario  int
	loadingScenarios  bool
	loadingGame       bool

	// Game state
	scenario  *scenario.Scenario
	sess      *session.Session
	engine    *night.Engine
	host      *consoleHost
	table     *scene.Table
	lastFrame time.Time

	// Recent nights for the end panel, filled once the outcome is stored.
	recent       []history.Entry
	historyDepth int
	jitter    int

	// Settings state
	prefs          session.Preferences
	showSettings   bool
	settingsCursor int

	// Quit confirmation state
	showQuitModal bool
}

type scenariosLoadedMsg struct {
	scenarios   []string
	scenarioMap map[string]string
	err         error
}

type gameLoadedMsg struct {
	scenario *scenario.Scenario
	session  *session.Session
	err      error
}

type frameMsg time.Time

type clipboardMsg struct {
	text string
	err  error
}

func NewGameUI(cfg *config.Config, store storage.Storage, bc *events.Broadcaster, hist *history.History, prefs session.Preferences, logger *slog.Logger) GameUI {
	logVp := viewport.New(30, 20)
	logVp.MouseWheelEnabled = true

	prefs.Clamp()
	return GameUI{
		cfg:               cfg,
		store:             store,
		events:            bc,
		history:           hist,
		logger:            logger,
		logViewport:       logVp,
		prefs:             prefs,
		showScenarioModal: cfg.Scenario == "" && cfg.ResumeSession == "",
		loadingScenarios:  cfg.Scenario == "" && cfg.ResumeSession == "",
		loadingGame:       cfg.Scenario != "" || cfg.ResumeSession != "",
	}
}

func (m GameUI) Init() tea.Cmd {
	if m.showScenarioModal {
		return m.loadScenarios()
	}
	return m.loadGame(m.cfg.Scenario, m.cfg.ResumeSession)
}

func (m GameUI) loadScenarios() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		scenarioMap, err := store.ListScenarios(ctx)
		if err != nil {
			return scenariosLoadedMsg{err: err}
		}
		names := make([]string, 0, len(scenarioMap))
		for name := range scenarioMap {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) == 0 {
			return scenariosLoadedMsg{err: errors.New("no scenarios found")}
		}
		return scenariosLoadedMsg{scenarios: names, scenarioMap: scenarioMap}
	}
}

// loadGame fetches the scenario, resuming a saved session when resumeID is
// set.
func (m GameUI) loadGame(filename, resumeID string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var sess *session.Session
		if resumeID != "" {
			id, err := uuid.Parse(resumeID)
			if err != nil {
				return gameLoadedMsg{err: fmt.Errorf("invalid session id: %w", err)}
			}
			sess, err = store.LoadSession(ctx, id)
			if err != nil {
				return gameLoadedMsg{err: fmt.Errorf("failed to load session: %w", err)}
			}
			if sess == nil {
				return gameLoadedMsg{err: fmt.Errorf("session %s not found", id)}
			}
			filename = sess.Scenario
		}

		sc, err := store.GetScenario(ctx, filename)
		if err != nil {
			return gameLoadedMsg{err: err}
		}
		if err := sc.Validate(); err != nil {
			return gameLoadedMsg{err: fmt.Errorf("invalid scenario %s: %w", filename, err)}
		}
		if sess == nil {
			sess = session.New(filename)
		}
		return gameLoadedMsg{scenario: sc, session: sess}
	}
}

// startGame builds the engine and table and begins the session's night.
func (m *GameUI) startGame(sc *scenario.Scenario, sess *session.Session) error {
	cfg, err := sc.NightConfig()
	if err != nil {
		return err
	}

	if sess.Ended() {
		m.logger.Info("Saved session already ended, starting over", "session_id", sess.ID)
		sess.ResumeNight = 0
	}

	host := newConsoleHost(sess, m.store, m.events, m.history, logger.WithSession(m.logger, sess.ID.String()))
	host.nightDuration = cfg.NightDuration
	host.muted = m.prefs.Muted()

	opts := []night.Option{night.WithLogger(host.logger)}
	if m.cfg.Seed != 0 {
		opts = append(opts, night.WithSeed(m.cfg.Seed))
	}
	engine, err := night.New(cfg, host, opts...)
	if err != nil {
		return err
	}
	if err := engine.BeginNight(sess.ResumeAt(cfg.StartNight), sc.CandidateIDs()); err != nil {
		return err
	}
	host.saveSession()

	m.scenario = sc
	m.sess = sess
	m.host = host
	m.engine = engine
	m.table = scene.NewTable(sc.Candidates)
	m.lastFrame = time.Now()
	m.logger.Info("Game started", "session_id", sess.ID, "scenario", sc.FileName, "night", engine.Night())
	return nil
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
	}

	// Frames and background results keep flowing under every modal.
	switch msg := msg.(type) {
	case frameMsg:
		return m.updateFrame(time.Time(msg))
	case persistedMsg:
		if msg.err != nil {
			logger.WithError(m.logger, msg.err).Error("Background write failed", "what", msg.what)
			m.appendLog(errorStyle.Render(fmt.Sprintf("Could not save %s: %v", msg.what, msg.err)))
		}
		return m, nil
	case historyMsg:
		if m.engine != nil && m.engine.Status() == night.StatusEnded {
			m.recent = msg.entries
			m.historyDepth = msg.depth
		}
		return m, nil
	case clipboardMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Clipboard unavailable: " + msg.err.Error())
		} else {
			m.status = "Copied session ID " + msg.text
		}
		return m, nil
	case scenariosLoadedMsg:
		m.loadingScenarios = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.scenarios = msg.scenarios
		m.scenarioMap = msg.scenarioMap
		return m, nil
	case gameLoadedMsg:
		m.loadingGame = false
		if msg.err != nil {
			m.err = msg.err
			m.showScenarioModal = true
			return m, nil
		}
		if err := m.startGame(msg.scenario, msg.session); err != nil {
			m.err = err
			m.showScenarioModal = true
			return m, nil
		}
		m.showScenarioModal = false
		m.appendStory()
		cmd := m.afterEngine()
		return m, tea.Batch(cmd, frame())
	}

	if m.showScenarioModal {
		return m.updateScenarioModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showSettings {
		return m.updateSettings(msg)
	}
	return m.updateGame(msg)
}

func (m *GameUI) resize(width, height int) {
	m.width = width
	m.height = height

	gameWidth := int(float64(m.width)*0.68) - 4
	logWidth := m.width - gameWidth - 6
	if logWidth < 10 {
		logWidth = 10
	}
	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 4
	m.ready = true
	m.refreshLog()
}

func (m GameUI) updateFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}
	dt := now.Sub(m.lastFrame)
	m.lastFrame = now
	m.engine.Tick(dt)
	m.jitter = shakeOffset(m.engine.Shake())
	cmd := m.afterEngine()
	return m, tea.Batch(cmd, frame())
}

func (m GameUI) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var vpCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		return m, vpCmd

	case tea.KeyMsg:
		m.status = ""
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			if _, ok := m.table.Inspecting(); ok {
				m.table.StopInspecting()
				return m, nil
			}
			m.showQuitModal = true
			return m, nil
		case tea.KeyLeft:
			m.table.Aim(-1, m.prefs.Sensitivity)
			return m, nil
		case tea.KeyRight:
			m.table.Aim(1, m.prefs.Sensitivity)
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			m.logViewport, vpCmd = m.logViewport.Update(msg)
			return m, vpCmd
		}

		switch strings.ToLower(msg.String()) {
		case "a", "h":
			m.table.Aim(-1, m.prefs.Sensitivity)
		case "d", "l":
			m.table.Aim(1, m.prefs.Sensitivity)
		case "e":
			m.inspect()
		case "f":
			m.drink()
			cmd := m.afterEngine()
			return m, cmd
		case "r":
			if m.engine.Status() == night.StatusEnded {
				start := m.engine.Config().StartNight
				if err := m.host.restart(start, m.engine.Restart); err != nil {
					logger.WithError(m.host.logger, err).Error("Restart failed")
					m.appendLog(errorStyle.Render("Restart failed: " + err.Error()))
				}
				cmd := m.afterEngine()
				return m, cmd
			}
		case "q":
			m.showQuitModal = true
		case "s":
			m.showSettings = true
			m.settingsCursor = 0
		case "y":
			return m, copySessionID(m.sess.ID)
		}
	}

	return m, nil
}

// inspect opens the description of the glass under the crosshair.
func (m *GameUI) inspect() {
	if !m.canAct() {
		return
	}
	if slot, ok := m.table.Inspect(); ok {
		m.logger.Debug("Inspecting candidate", "candidate", slot.ID)
	}
}

// drink selects the glass under the crosshair.
func (m *GameUI) drink() {
	if !m.canAct() {
		return
	}
	if _, ok := m.table.Inspecting(); ok {
		return
	}
	id, ok := m.table.Hit()
	if !ok {
		return
	}
	m.host.selected(m.engine.Night(), id, m.engine.RemainingTime())
	m.engine.Select(id)
	label := string(id)
	if slot, ok := m.table.Slot(id); ok {
		label = slot.Label
	}
	m.appendLog(fmt.Sprintf("You drink from the %s.", label))
}

func (m GameUI) canAct() bool {
	return m.engine != nil && m.engine.Status() == night.StatusIdle && !m.engine.Introducing()
}

// afterEngine applies host notifications gathered during an engine call.
func (m *GameUI) afterEngine() tea.Cmd {
	if m.host == nil {
		return nil
	}
	if m.host.takeReload() {
		m.table = scene.NewTable(m.scenario.Candidates)
		m.jitter = 0
		m.recent = nil
		m.historyDepth = 0
	}
	cmds, lines := m.host.drain()
	for _, line := range lines {
		m.appendLog(line)
	}
	return tea.Batch(cmds...)
}

func (m GameUI) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	switch key.String() {
	case "up", "k":
		m.settingsCursor = (m.settingsCursor + settingCount - 1) % settingCount
	case "down", "j":
		m.settingsCursor = (m.settingsCursor + 1) % settingCount
	case "left", "h":
		cmd = m.adjustSetting(-1)
	case "right", "l":
		cmd = m.adjustSetting(1)
	case "enter", " ":
		if m.settingsCursor == settingFullscreen {
			cmd = m.adjustSetting(1)
		}
	case "esc", "s", "q", "ctrl+c":
		m.showSettings = false
		return m, m.savePreferences()
	}
	return m, cmd
}

func (m *GameUI) adjustSetting(dir int) tea.Cmd {
	switch m.settingsCursor {
	case settingSensitivity:
		m.prefs.Sensitivity += float64(dir) * sensitivityStep
	case settingVolume:
		m.prefs.MasterVolume += float64(dir) * volumeStep
	case settingFullscreen:
		m.prefs.Fullscreen = !m.prefs.Fullscreen
		m.prefs.Clamp()
		if m.prefs.Fullscreen {
			return tea.EnterAltScreen
		}
		return tea.ExitAltScreen
	}
	m.prefs.Clamp()
	// Keep two decimals so repeated steps do not drift.
	m.prefs.Sensitivity = math.Round(m.prefs.Sensitivity*100) / 100
	m.prefs.MasterVolume = math.Round(m.prefs.MasterVolume*10) / 10
	if m.host != nil {
		m.host.muted = m.prefs.Muted()
	}
	return nil
}

func (m GameUI) savePreferences() tea.Cmd {
	store, profile, prefs := m.store, m.cfg.Profile, m.prefs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return persistedMsg{what: "preferences", err: store.SavePreferences(ctx, profile, prefs)}
	}
}

func (m GameUI) updateScenarioModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.showQuitModal = true
		m.showScenarioModal = false
		return m, nil
	case tea.KeyUp:
		if m.selectedScenario > 0 {
			m.selectedScenario--
		}
	case tea.KeyDown:
		if m.selectedScenario < len(m.scenarios)-1 {
			m.selectedScenario++
		}
	case tea.KeyEnter:
		if m.loadingScenarios || m.loadingGame || len(m.scenarios) == 0 {
			return m, nil
		}
		m.err = nil
		m.loadingGame = true
		name := m.scenarios[m.selectedScenario]
		return m, m.loadGame(m.scenarioMap[name], "")
	}
	return m, nil
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEnter:
		return m, tea.Quit
	case tea.KeyEsc:
		m.closeQuitModal()
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N":
		m.closeQuitModal()
	}
	return m, nil
}

func (m *GameUI) closeQuitModal() {
	m.showQuitModal = false
	if m.engine == nil {
		m.showScenarioModal = true
	}
}

// appendStory writes the scenario's opening text to the event log.
func (m *GameUI) appendStory() {
	if m.scenario == nil || m.scenario.Story == "" {
		return
	}
	m.appendLog(storyStyle.Render(m.scenario.Story))
}

func (m *GameUI) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.refreshLog()
}

func (m *GameUI) refreshLog() {
	width := m.logViewport.Width
	if width < 10 {
		width = 10
	}
	var content strings.Builder
	content.WriteString(titleStyle.Render("EVENTS") + "\n\n")
	for _, line := range m.logLines {
		content.WriteString(wordwrap.String(line, width) + "\n")
	}
	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func copySessionID(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		text := id.String()
		return clipboardMsg{text: text, err: clipboard.WriteAll(text)}
	}
}

// shakeOffset turns the engine's shake into a random horizontal offset.
func shakeOffset(magnitude float64, active bool) int {
	if !active || magnitude <= 0 {
		return 0
	}
	amp := int(math.Round(magnitude * shakeColumns))
	if amp < 1 {
		amp = 1
	}
	return rand.IntN(2*amp+1) - amp
}
