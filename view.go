package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m watchModel) View() string {
	cfg := config.Get()

	accent := cfg.UI.AccentColor
	if accent == "" {
		accent = "2" // ANSI green
	}
	color := lipgloss.Color(accent)
	highlight := lipgloss.NewStyle().Foreground(color)
	white := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	labelStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2)

	var content strings.Builder

	switch {
	case errors.Is(m.lastError, errPlayerNotRunning):
		content.WriteString(highlight.Render("󰓃 "+playerDisplayName(cfg)) + "\n\n")
		content.WriteString(mutedStyle.Render("Not running") + "\n\n")
		content.WriteString(dimStyle.Render("Open the player to begin"))

	case errors.Is(m.lastError, errNoSong):
		content.WriteString(highlight.Render("󰓃 Now Playing") + "\n\n")
		content.WriteString(mutedStyle.Render("Nothing playing") + "\n\n")
		content.WriteString(dimStyle.Render("Start playing music to begin"))

	case m.lastError != nil:
		content.WriteString(errorStyle.Render("Error: " + m.lastError.Error()))

	default:
		content.WriteString(highlight.Render("󰓃 Now Playing") + "\n\n")

		maxLen := cfg.UI.MaxWidth - 4
		addLine := func(label, value string) {
			if value != "" {
				content.WriteString(fmt.Sprintf("%s %s\n",
					labelStyle.Render(label),
					scrollText(value, maxLen, m.scrollOffset),
				))
			}
		}
		addLine("󰎈 ", m.song.Title)
		addLine("󰠃 ", m.song.ArtistLine())
		addLine("󰀥 ", m.song.Album)

		statusIcon := "󰐊 "
		switch m.song.Status {
		case StatusPaused:
			statusIcon = "󰏤 "
		case StatusStopped:
			statusIcon = "󰓛 "
		}
		addLine(statusIcon, string(m.song.Status))

		if m.song.Length > 0 {
			pos := m.currentPosition()
			progress := float64(pos) / float64(m.song.Length)
			if progress > 1 {
				progress = 1
			}

			barWidth := cfg.UI.MaxWidth - 17
			filled := int(float64(barWidth) * progress)
			bar := highlight.Render(strings.Repeat("█", filled)) +
				white.Render(strings.Repeat("─", barWidth-filled))

			content.WriteString(fmt.Sprintf(
				"\n%s %s/%s",
				bar,
				highlight.Render(formatTime(int64(pos.Seconds()))),
				highlight.Render(formatTime(int64(m.song.Length.Seconds()))),
			))
		}
	}

	panel := borderStyle.
		Width(cfg.UI.MaxWidth).
		Render(content.String())

	var helpText string
	if m.showHelp {
		helpText = lipgloss.NewStyle().
			Width(cfg.UI.MaxWidth).
			Align(lipgloss.Center).
			Render(lipgloss.JoinHorizontal(
				lipgloss.Center,
				"Play/Pause: "+highlight.Render("p"),
				"  Next: "+highlight.Render("n"),
				"  Previous: "+highlight.Render("b"),
				"  Quit: "+highlight.Render("q"),
			))
	} else {
		helpText = mutedStyle.Render("Press ? for help")
	}

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, panel, "\n"+helpText),
	)
}
