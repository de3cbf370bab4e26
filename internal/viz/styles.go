package viz

import "github.com/charmbracelet/lipgloss"

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Header).Bold(true).MarginBottom(1)
}

func statsStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2).
		Width(42)
}

func canvasStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(1, 2)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Label).Width(14)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Value)
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Header).Bold(true)
}

func graphStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Graph).Padding(1, 0)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Help).MarginTop(1)
}
