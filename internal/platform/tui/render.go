package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tower/internal/game"
)

// kindStyles maps unit kinds to lipgloss styles.
var kindStyles = map[game.Kind]lipgloss.Style{
	game.KindSamurai: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	game.KindGolem:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	game.KindBandit:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	game.KindRonin:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	game.KindArcher:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	game.KindCaptive: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
}

var (
	boundStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tickingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stairsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	floorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	wallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderSnapshot draws the floor grid and a status line from a snapshot.
func RenderSnapshot(snap game.Snapshot) string {
	// Index units by position. Later placements never overlap earlier
	// ones, so the first hit wins.
	occupied := make(map[game.Point]game.UnitSnapshot, len(snap.Units))
	for _, u := range snap.Units {
		p := game.Point{X: u.X, Y: u.Y}
		if _, ok := occupied[p]; !ok {
			occupied[p] = u
		}
	}

	var sb strings.Builder

	border := wallStyle.Render(strings.Repeat("-", snap.Width+2))
	sb.WriteString(border)
	sb.WriteRune('\n')

	for y := 0; y < snap.Height; y++ {
		sb.WriteString(wallStyle.Render("|"))
		for x := 0; x < snap.Width; x++ {
			p := game.Point{X: x, Y: y}
			if u, ok := occupied[p]; ok {
				sb.WriteString(renderUnit(u))
				continue
			}
			if p == snap.Stairs {
				sb.WriteString(stairsStyle.Render(">"))
				continue
			}
			sb.WriteString(floorStyle.Render("."))
		}
		sb.WriteString(wallStyle.Render("|"))
		sb.WriteRune('\n')
	}

	sb.WriteString(border)
	sb.WriteRune('\n')

	sb.WriteString(statusStyle.Render(statusLine(snap)))
	return sb.String()
}

func renderUnit(u game.UnitSnapshot) string {
	if u.Fuse > 0 {
		return tickingStyle.Render(string(u.Character))
	}
	if u.Bound {
		return boundStyle.Render(string(u.Character))
	}
	style, ok := kindStyles[u.Kind]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render(string(u.Character))
}

func statusLine(snap game.Snapshot) string {
	var health string
	for _, u := range snap.Units {
		if u.Kind == game.KindSamurai {
			health = fmt.Sprintf("  hp %d/%d", u.Health, u.MaxHealth)
			break
		}
	}
	return fmt.Sprintf("round %d  score %d  %s%s", snap.Round, snap.Score, snap.Outcome, health)
}

// RenderFailures formats recent round failures for the status area.
func RenderFailures(failures []game.RoundFailure, limit int) string {
	if len(failures) == 0 {
		return ""
	}
	if limit > 0 && len(failures) > limit {
		failures = failures[len(failures)-limit:]
	}
	var sb strings.Builder
	for _, f := range failures {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("round %d: %v", f.Round, f.Err)))
		sb.WriteRune('\n')
	}
	return sb.String()
}
