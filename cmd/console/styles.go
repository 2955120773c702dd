package main

import (
	"hash/fnv"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	gamePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	nightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	urgentClockStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")). // red
				Bold(true)

	glassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	hoverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	darkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	crosshairStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

// materialColors maps palette material names to terminal colors.
var materialColors = map[string]lipgloss.Color{
	"ruby":   "160",
	"blood":  "124",
	"garnet": "88",
	"wine":   "89",
	"brick":  "130",
	"rust":   "166",
	"amber":  "214",
	"honey":  "220",
	"moss":   "64",
	"murky":  "58",
	"ink":    "54",
	"milk":   "255",
	"dull":   "244",
	"water":  "117",
}

// liquidStyle colors a glass's contents by material. Unknown names hash to a
// stable color.
func liquidStyle(material string) lipgloss.Style {
	if material == "" {
		return glassStyle
	}
	c, ok := materialColors[material]
	if !ok {
		h := fnv.New32a()
		_, _ = h.Write([]byte(material))
		c = lipgloss.Color(strconv.Itoa(int(17 + h.Sum32()%214)))
	}
	return lipgloss.NewStyle().Foreground(c)
}
