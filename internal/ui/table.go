package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// PrintTable renders a bordered table with styled headers. Column widths
// follow the widest cell of each column.
func PrintTable(headers []string, rows [][]string) {
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && runewidth.StringWidth(cell) > colWidths[i] {
				colWidths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	var sb strings.Builder

	writeBorder := func(left, mid, right string) {
		sb.WriteString(BorderStyle.Render(left))
		for i, w := range colWidths {
			sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
			if i < len(colWidths)-1 {
				sb.WriteString(BorderStyle.Render(mid))
			}
		}
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
	}

	// Top border
	writeBorder(TopLeft, TopT, TopRight)

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		cell := " " + padRight(h, colWidths[i]) + " "
		sb.WriteString(HeaderStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	writeBorder(LeftT, Cross, RightT)

	// Data rows
	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			text := " " + padRight(cell, colWidths[i]) + " "
			if i == 0 {
				sb.WriteString(NameStyle.Render(text))
			} else {
				sb.WriteString(ValueStyle.Render(text))
			}
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	// Bottom border
	writeBorder(BottomLeft, BottomT, BottomRight)

	fmt.Print(sb.String())
}

// PrintProfileTable prints SSO profiles in a styled table, marking the
// active profile.
func PrintProfileTable(profiles []pkgtypes.SSOProfile, activeProfile string) {
	headers := []string{"", "Profile", "Account ID", "Role", "Region"}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		marker := " "
		if p.Name == activeProfile {
			marker = "●"
		}
		region := p.Region
		if region == "" {
			region = "-"
		}
		rows = append(rows, []string{marker, p.Name, p.AccountID, p.RoleName, region})
	}

	PrintTable(headers, rows)
	fmt.Printf("  %d profiles\n", len(profiles))
}

// PrintInstanceTable prints EC2 instances in a styled table
func PrintInstanceTable(instances []pkgtypes.Instance) {
	headers := []string{"ID", "Name", "Private IP", "State", "Type", "AZ"}

	rows := make([][]string, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, []string{
			inst.ID,
			Truncate(inst.Name, 30),
			inst.PrivateIP,
			inst.State,
			inst.Type,
			inst.AZ,
		})
	}

	PrintTable(headers, rows)
	fmt.Printf("  %d instances\n", len(instances))
}

// FormatState renders an instance state with its indicator dot
func FormatState(state string) string {
	switch state {
	case "running":
		return RunningStyle.Render("● " + state)
	case "stopped":
		return StoppedStyle.Render("○ " + state)
	case "pending", "stopping":
		return PendingStyle.Render("◐ " + state)
	default:
		return StoppedStyle.Render("○ " + state)
	}
}
