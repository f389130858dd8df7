package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

const profileListHeight = 10

// ProfileModel represents the bubbletea model for SSO profile selection
type ProfileModel struct {
	profiles      []pkgtypes.SSOProfile
	filtered      []pkgtypes.SSOProfile
	cursor        int
	offset        int
	search        string
	selected      *pkgtypes.SSOProfile
	quitting      bool
	cancelled     bool
	termWidth     int
	contentWidth  int
	activeProfile string
}

// NewProfileModel creates a new profile selector model
func NewProfileModel(profiles []pkgtypes.SSOProfile, activeProfile string) ProfileModel {
	m := ProfileModel{
		profiles:      profiles,
		filtered:      profiles,
		termWidth:     80,
		activeProfile: activeProfile,
	}
	m.calculateWidths()
	return m
}

func (m *ProfileModel) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < minWidth {
		m.contentWidth = minWidth
	}
	if m.contentWidth > maxWidth {
		m.contentWidth = maxWidth
	}
}

// Init implements tea.Model
func (m ProfileModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.selected = &m.filtered[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+profileListHeight {
					m.offset = m.cursor - profileListHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.applyFilter()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.applyFilter()
		}
	}

	return m, nil
}

func (m *ProfileModel) applyFilter() {
	m.filtered = FilterProfiles(m.profiles, m.search)
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

// FilterProfiles returns the profiles whose name, account ID, role or
// region contains the query, case-insensitively, preserving order.
func FilterProfiles(profiles []pkgtypes.SSOProfile, query string) []pkgtypes.SSOProfile {
	if query == "" {
		return profiles
	}

	q := strings.ToLower(query)
	var filtered []pkgtypes.SSOProfile
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.AccountID), q) ||
			strings.Contains(strings.ToLower(p.RoleName), q) ||
			strings.Contains(strings.ToLower(p.Region), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// View implements tea.Model
func (m ProfileModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Title
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(HeaderStyle.Render(padToWidth(" Select AWS SSO Profile", w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Separator
	sb.WriteString(BorderStyle.Render(LeftT))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	// Search input
	searchLine := " > " + m.search
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(NameStyle.Render(padToWidth(searchLine, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Profile list
	visibleEnd := m.offset + profileListHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}

	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderProfileRow(i))
	}

	// Fill remaining lines
	for i := len(m.filtered); i < m.offset+profileListHeight; i++ {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(strings.Repeat(" ", w))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	// Status bar
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m ProfileModel) renderProfileRow(idx int) string {
	var sb strings.Builder
	profile := m.filtered[idx]
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))

	var line strings.Builder
	plainWidth := 0

	// Active indicator
	if profile.Name == m.activeProfile {
		line.WriteString(" ● ")
	} else if idx == m.cursor {
		line.WriteString(" > ")
	} else {
		line.WriteString("   ")
	}
	plainWidth += 3

	// Name
	nameWidth := 24
	nameText := padRight(profile.Name, nameWidth)
	if profile.Name == m.activeProfile {
		line.WriteString(RunningStyle.Render(nameText))
	} else {
		line.WriteString(NameStyle.Render(nameText))
	}
	line.WriteString("  ")
	plainWidth += nameWidth + 2

	// Account ID
	accountWidth := 14
	line.WriteString(IDStyle.Render(padRight(profile.AccountID, accountWidth)))
	line.WriteString("  ")
	plainWidth += accountWidth + 2

	// Role
	roleWidth := 20
	line.WriteString(ValueStyle.Render(padRight(profile.RoleName, roleWidth)))
	line.WriteString("  ")
	plainWidth += roleWidth + 2

	// Region
	regionText := profile.Region
	if regionText == "" {
		regionText = "-"
	}
	regionWidth := w - plainWidth
	if regionWidth > 0 {
		line.WriteString(MutedStyle.Render(padRight(regionText, regionWidth)))
		plainWidth += regionWidth
	}

	if plainWidth < w {
		line.WriteString(strings.Repeat(" ", w-plainWidth))
	}

	sb.WriteString(line.String())
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	return sb.String()
}

func (m ProfileModel) renderStatusBar() string {
	var sb strings.Builder
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d profiles", len(m.filtered), len(m.profiles))
	hintsPlain := "[Enter:select] [Esc:cancel]"

	countWidth := runewidth.StringWidth(countInfo)
	hintsWidth := runewidth.StringWidth(hintsPlain)
	padding := w - countWidth - hintsWidth

	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hintsPlain))
	sb.WriteString("\n")

	return sb.String()
}

// SelectProfile displays an interactive selector over SSO profiles.
// An empty slice fails with the NoProfiles error before any prompt is shown.
func SelectProfile(profiles []pkgtypes.SSOProfile, activeProfile string) (*pkgtypes.SSOProfile, error) {
	if len(profiles) == 0 {
		return nil, errors.NoProfiles()
	}

	m := NewProfileModel(profiles, activeProfile)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(ProfileModel)
	if result.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	return result.selected, nil
}
