package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorBlue
	colorBrand   = colorBlue
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 1)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSubtext1).
				Bold(true)

	rowStyle = lipgloss.NewStyle().Foreground(colorText)

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Bold(true)

	promotionStyle = lipgloss.NewStyle().Foreground(colorGreen)

	relegationStyle = lipgloss.NewStyle().Foreground(colorRed)

	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 1)

	scrollHintStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	helpKeyStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
