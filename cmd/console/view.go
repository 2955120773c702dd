package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/nights-engine/pkg/night"
	"github.com/jwebster45206/nights-engine/pkg/scene"
	"github.com/muesli/reflow/wordwrap"
)

// tableIndent leaves room for the table to shake left.
const tableIndent = 4

// glassArt is drawn once per slot; row 0 holds the liquid.
var glassArt = [...]string{
	`\~~~~~~~/`,
	` \     / `,
	`  \___/  `,
	`   _|_   `,
}

func (m GameUI) View() string {
	if m.width == 0 || m.height == 0 {
		return "\n  Initializing..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showScenarioModal {
		return m.renderScenarioModal()
	}
	if m.showSettings {
		return m.renderSettingsModal()
	}
	if m.engine == nil {
		return "\n  Loading..."
	}

	gameWidth := int(float64(m.width)*0.68) - 4
	logWidth := m.width - gameWidth - 6

	gamePanel := gamePanelStyle.Width(gameWidth).Height(m.height - 2).Render(m.renderGame(gameWidth - 4))
	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 2).Render(m.logViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, gamePanel, logPanel)
}

func (m GameUI) renderGame(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("NIGHTS") + "  " + promptStyle.Render(m.scenario.Name) + "\n")
	content.WriteString(m.renderHeader() + "\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(width, 1))) + "\n\n")

	switch {
	case m.engine.Introducing():
		content.WriteString(m.renderIntro(width))
	case m.engine.Status() == night.StatusEnded:
		content.WriteString(m.renderTable())
		content.WriteString("\n")
		content.WriteString(m.renderEnd())
	default:
		content.WriteString(m.renderTable())
		content.WriteString("\n")
		content.WriteString(m.renderHover(width))
	}

	content.WriteString("\n\n")
	if m.status != "" {
		content.WriteString(m.status + "\n")
	}
	content.WriteString(promptStyle.Render("←/→ aim · E inspect · F drink · S settings · Y copy session · Q quit"))
	return content.String()
}

func (m GameUI) renderHeader() string {
	nightLabel := nightStyle.Render(fmt.Sprintf("Night %d/%d", m.engine.Night(), m.engine.MaxNight()))

	remaining := m.engine.RemainingTime()
	style := clockStyle
	if remaining < 10*time.Second {
		style = urgentClockStyle
	}
	clock := style.Render(night.FormatCountdown(remaining))

	header := nightLabel + "   " + clock
	if m.host.panting > 0 && !m.prefs.Muted() && m.engine.Status() == night.StatusIdle {
		header += "   " + promptStyle.Render(strings.Repeat("~", min(m.host.panting, 12)))
	}
	return header
}

func (m GameUI) renderIntro(width int) string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(fmt.Sprintf("Night %d", m.engine.Night())))
	if m.engine.Night() == m.engine.Config().StartNight && m.scenario.Story != "" {
		content.WriteString("\n\n")
		content.WriteString(storyStyle.Render(wordwrap.String(m.scenario.Story, max(width-10, 20))))
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render(fmt.Sprintf("Lights up in %.0fs", math.Ceil(m.engine.IntroRemaining().Seconds()))))
	return modalStyle.Width(min(width, 60)).Render(content.String())
}

// renderTable draws the glasses, their labels and the crosshair, shifted by
// the current shake jitter.
func (m GameUI) renderTable() string {
	indent := strings.Repeat(" ", max(tableIndent+m.jitter, 0))
	slots := m.table.Slots()
	hovered, _ := m.table.Hit()
	dark := len(m.host.lightOff) > 0

	var b strings.Builder
	for row, art := range glassArt {
		b.WriteString(indent)
		b.WriteString(strings.Repeat(" ", scene.Margin))
		for i, slot := range slots {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", scene.SlotGap))
			}
			style := glassStyle
			switch {
			case dark:
				style = darkStyle
			case row == 0:
				style = liquidStyle(m.host.palette[slot.ID])
			case slot.ID == hovered:
				style = hoverStyle
			}
			b.WriteString(style.Render(art))
		}
		b.WriteString("\n")
	}

	b.WriteString(indent)
	b.WriteString(strings.Repeat(" ", scene.Margin))
	for i, slot := range slots {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", scene.SlotGap))
		}
		label := fitLabel(slot.Label, slot.Width)
		if slot.ID == hovered && !dark {
			b.WriteString(hoverStyle.Render(label))
		} else {
			b.WriteString(promptStyle.Render(label))
		}
	}
	b.WriteString("\n")

	b.WriteString(indent)
	b.WriteString(strings.Repeat(" ", m.table.Crosshair()))
	b.WriteString(crosshairStyle.Render("▲"))
	b.WriteString("\n")
	return b.String()
}

func (m GameUI) renderHover(width int) string {
	if id, ok := m.table.Inspecting(); ok {
		slot, _ := m.table.Slot(id)
		var content strings.Builder
		content.WriteString(modalTitleStyle.Render(slot.Label))
		content.WriteString("\n\n")
		desc := slot.Description
		if desc == "" {
			desc = "Nothing about it stands out."
		}
		content.WriteString(wordwrap.String(desc, max(min(width, 60)-6, 10)))
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render(m.table.Prompt()))
		return modalStyle.Width(min(width, 60)).Render(content.String())
	}

	if m.engine.Status() == night.StatusResolving {
		return loadingStyle.Render("...")
	}
	if prompt := m.table.Prompt(); prompt != "" {
		return promptStyle.Render(prompt)
	}
	return ""
}

func (m GameUI) renderEnd() string {
	var content strings.Builder
	result := m.engine.Result()
	if result.Outcome == night.OutcomeWin {
		content.WriteString(winStyle.Render("YOU WIN"))
		content.WriteString("\n\n")
		content.WriteString(fmt.Sprintf("You made it through all %d nights.", m.engine.MaxNight()))
	} else {
		content.WriteString(errorStyle.Render("GAME OVER"))
		content.WriteString("\n\n")
		switch result.Reason {
		case night.ReasonTimedOut:
			content.WriteString("You waited too long.")
		default:
			content.WriteString("That was the wrong glass.")
		}
	}
	if len(m.recent) > 0 {
		content.WriteString("\n\n")
		content.WriteString(m.renderRecent())
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("R - Restart | Q - Quit"))
	return modalStyle.Width(44).Render(content.String())
}

// renderRecent lists the session's latest nights, oldest first.
func (m GameUI) renderRecent() string {
	var b strings.Builder
	b.WriteString(nightStyle.Render("Recent nights"))
	for _, e := range m.recent {
		line := fmt.Sprintf("Night %d  %-8s %.1fs", e.Night, e.Outcome, e.Elapsed)
		if e.Reason != "" {
			line += "  " + strings.ReplaceAll(e.Reason, "_", " ")
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	if m.historyDepth > len(m.recent) {
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("%d nights recorded", m.historyDepth)))
	}
	return b.String()
}

func (m GameUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the table?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) renderScenarioModal() string {
	var content strings.Builder

	switch {
	case m.loadingScenarios:
		content.WriteString(modalTitleStyle.Render("Loading Scenarios..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we fetch available scenarios..."))
	case m.loadingGame:
		content.WriteString(modalTitleStyle.Render("Setting the Table..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Pouring the glasses..."))
	case m.err != nil && len(m.scenarios) == 0:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(wordwrap.String(m.err.Error(), 50)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	default:
		content.WriteString(modalTitleStyle.Render("Select a Scenario"))
		content.WriteString("\n\n")
		if m.err != nil {
			content.WriteString(errorStyle.Render(wordwrap.String(m.err.Error(), 50)))
			content.WriteString("\n\n")
		}
		for i, name := range m.scenarios {
			if i == m.selectedScenario {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) renderSettingsModal() string {
	rows := [settingCount]string{
		settingSensitivity: fmt.Sprintf("Mouse sensitivity   %.2f", m.prefs.Sensitivity),
		settingVolume:      fmt.Sprintf("Master volume       %.1f", m.prefs.MasterVolume),
		settingFullscreen:  fmt.Sprintf("Fullscreen          %s", onOff(m.prefs.Fullscreen)),
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Settings"))
	content.WriteString("\n\n")
	for i, row := range rows {
		if i == m.settingsCursor {
			content.WriteString(modalSelectedItemStyle.Render("▶ " + row))
		} else {
			content.WriteString(modalItemStyle.Render("  " + row))
		}
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(promptStyle.Render("↑/↓ choose, ←/→ adjust, Enter toggle, Esc save and close"))

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

// fitLabel centers s in width columns, truncating when it does not fit.
func fitLabel(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		r = r[:width]
	}
	pad := width - len(r)
	left := pad / 2
	return strings.Repeat(" ", left) + string(r) + strings.Repeat(" ", pad-left)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
