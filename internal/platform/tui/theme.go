package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the configurable visual styles for the menu and records screens.
// In-game colors come from the screen buffer and are not themed here.
type Theme struct {
	// Menu styles
	MenuTitle      lipgloss.Style
	MenuSubtitle   lipgloss.Style
	MenuItemNormal lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuItemFaded  lipgloss.Style // best-score annotations, scroll markers
	Controls       lipgloss.Style

	// Records styles
	RecordsTitle lipgloss.Style
	RecordsEmpty lipgloss.Style
	RecordsHelp  lipgloss.Style

	// Panel chrome shared by the records layouts
	PanelBorder lipgloss.Color
	SelectedFg  lipgloss.Color
	SelectedBg  lipgloss.Color
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true), // Magenta-pink
		MenuSubtitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Bright yellow
		MenuItemFaded:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Controls:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		RecordsTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		RecordsEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		RecordsHelp:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		PanelBorder: lipgloss.Color("240"),
		SelectedFg:  lipgloss.Color("229"),
		SelectedBg:  lipgloss.Color("57"),
	}
}

// MonochromeTheme returns a grayscale theme for limited terminals.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.RecordsTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.SelectedFg = lipgloss.Color("232")
	theme.SelectedBg = lipgloss.Color("250")
	return theme
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}

// ThemeByName resolves a theme flag value. Unknown names fall back to the
// default theme.
func ThemeByName(name string) Theme {
	switch name {
	case "mono", "monochrome":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}
