package progress

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	markerFilled = "●"
	markerHollow = "○"
)

var (
	titleColor   = color.New(color.FgCyan)
	guideColor   = color.New(color.FgHiBlack)
	labelColor   = color.New(color.FgWhite)
	detailColor  = color.New(color.FgHiBlack)
	pendingColor = color.New(color.FgHiBlack)

	markerColors = map[Status]*color.Color{
		StatusDone:    color.New(color.FgGreen),
		StatusPending: color.New(color.FgGreen, color.Faint),
		StatusRunning: color.New(color.FgCyan),
		StatusError:   color.New(color.FgRed),
		StatusSkipped: color.New(color.FgYellow),
	}
)

// Line is the rendered form of one step.
type Line struct {
	Status Status
	Label  string
	Detail string
}

// Marker returns the status glyph: filled for done and error, hollow
// otherwise.
func (l Line) Marker() string {
	switch l.Status {
	case StatusDone, StatusError:
		return markerFilled
	case StatusPending, StatusRunning, StatusSkipped:
		return markerHollow
	}
	return " "
}

// String returns the styled line without tree guides.
func (l Line) String() string {
	marker := l.Marker()
	if c, ok := markerColors[l.Status]; ok {
		marker = c.Sprint(marker)
	}

	if l.Status == StatusPending {
		text := l.Label
		if l.Detail != "" {
			text += " (" + l.Detail + ")"
		}
		return marker + " " + pendingColor.Sprint(text)
	}

	text := labelColor.Sprint(l.Label)
	if l.Detail != "" {
		text += " " + detailColor.Sprint("("+l.Detail+")")
	}
	return marker + " " + text
}

// Tree is a rendered snapshot of a tracker.
type Tree struct {
	Title string
	Lines []Line
}

// Render snapshots the tracker. It has no side effects.
func (t *Tracker) Render() Tree {
	tree := Tree{Title: t.title}
	for pair := t.steps.Oldest(); pair != nil; pair = pair.Next() {
		step := pair.Value
		tree.Lines = append(tree.Lines, Line{
			Status: step.Status,
			Label:  step.Label,
			Detail: strings.TrimSpace(step.Detail),
		})
	}
	return tree
}

// String renders the tree with box-drawing guides, one line per step.
func (tr Tree) String() string {
	var b strings.Builder
	b.WriteString(titleColor.Sprint(tr.Title))
	b.WriteString("\n")
	for i, line := range tr.Lines {
		guide := "├── "
		if i == len(tr.Lines)-1 {
			guide = "└── "
		}
		b.WriteString(guideColor.Sprint(guide))
		b.WriteString(line.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Height returns the number of terminal lines String produces.
func (tr Tree) Height() int {
	return len(tr.Lines) + 1
}

// WriteTo writes the rendered tree to w.
func (tr Tree) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, tr.String())
	return int64(n), err
}
