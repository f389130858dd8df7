package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

const menuListHeight = 10

// MenuItem is one selectable entry of an interactive menu
type MenuItem struct {
	Label  string
	Value  string
	Detail string
}

// MenuModel is the bubbletea model behind all list menus (wizard actions,
// clusters, services, APIs, containers).
type MenuModel struct {
	title        string
	items        []MenuItem
	filtered     []MenuItem
	cursor       int
	offset       int
	search       string
	selected     *MenuItem
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
}

// NewMenuModel creates a menu model with the given title and items
func NewMenuModel(title string, items []MenuItem) MenuModel {
	m := MenuModel{
		title:     title,
		items:     items,
		filtered:  items,
		termWidth: 80,
	}
	m.calculateWidths()
	return m
}

func (m *MenuModel) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < minWidth {
		m.contentWidth = minWidth
	}
	if m.contentWidth > maxWidth {
		m.contentWidth = maxWidth
	}
}

// Init implements tea.Model
func (m MenuModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
				if m.cursor >= m.offset+menuListHeight {
					m.offset = m.cursor - menuListHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filterItems()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filterItems()
		}
	}

	return m, nil
}

func (m *MenuModel) filterItems() {
	m.filtered = FilterMenuItems(m.items, m.search)
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

// FilterMenuItems returns the items whose label or detail contains the
// query, case-insensitively, preserving order. An empty query keeps all.
func FilterMenuItems(items []MenuItem, query string) []MenuItem {
	if query == "" {
		return items
	}

	q := strings.ToLower(query)
	var filtered []MenuItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), q) ||
			strings.Contains(strings.ToLower(item.Detail), q) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// View implements tea.Model
func (m MenuModel) View() string {
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
	sb.WriteString(HeaderStyle.Render(padToWidth(" "+m.title, w)))
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

	// Item list
	visibleEnd := m.offset + menuListHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}

	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderItemRow(i))
	}

	// Fill remaining lines
	for i := len(m.filtered); i < m.offset+menuListHeight; i++ {
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

func (m MenuModel) renderItemRow(idx int) string {
	var sb strings.Builder
	item := m.filtered[idx]
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))

	var line strings.Builder
	plainWidth := 0

	if idx == m.cursor {
		line.WriteString(" > ")
	} else {
		line.WriteString("   ")
	}
	plainWidth += 3

	labelWidth := 40
	detailWidth := w - plainWidth - labelWidth - 2
	if detailWidth < 0 {
		labelWidth = w - plainWidth
		detailWidth = 0
	}

	labelText := padRight(item.Label, labelWidth)
	line.WriteString(NameStyle.Render(labelText))
	plainWidth += labelWidth

	if detailWidth > 0 {
		line.WriteString("  ")
		detailText := padRight(item.Detail, detailWidth)
		line.WriteString(MutedStyle.Render(detailText))
		plainWidth += detailWidth + 2
	}

	if plainWidth < w {
		line.WriteString(strings.Repeat(" ", w-plainWidth))
	}

	sb.WriteString(line.String())
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	return sb.String()
}

func (m MenuModel) renderStatusBar() string {
	var sb strings.Builder
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d items", len(m.filtered), len(m.items))
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

// SelectFromMenu displays an interactive menu and returns the chosen item.
// Esc or Ctrl-C cancels with an error so callers can exit non-zero.
func SelectFromMenu(title string, items []MenuItem) (*MenuItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("nothing to select")
	}

	m := NewMenuModel(title, items)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(MenuModel)
	if result.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	return result.selected, nil
}

// SelectString is a convenience wrapper for menus over plain strings
func SelectString(title string, options []string) (string, error) {
	items := make([]MenuItem, len(options))
	for i, opt := range options {
		items[i] = MenuItem{Label: opt, Value: opt}
	}

	selected, err := SelectFromMenu(title, items)
	if err != nil {
		return "", err
	}
	return selected.Value, nil
}
