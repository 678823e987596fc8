package progress

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Live redraws a tree in place on a terminal. On anything that is not a
// terminal it stays silent, and the caller is expected to print the final
// tree once the work is over.
type Live struct {
	w       io.Writer
	out     *termenv.Output
	enabled bool
	closed  bool
	height  int
}

// NewLive creates a live region on w. The region is only active when w is a
// terminal.
func NewLive(w io.Writer) *Live {
	return newLive(w, isTerminal(w))
}

func newLive(w io.Writer, enabled bool) *Live {
	l := &Live{w: w, out: termenv.NewOutput(w), enabled: enabled}
	if enabled {
		l.out.HideCursor()
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Enabled reports whether updates are drawn.
func (l *Live) Enabled() bool {
	return l.enabled
}

// Update replaces the previously drawn tree with tree.
func (l *Live) Update(tree Tree) error {
	if !l.enabled || l.closed {
		return nil
	}
	l.clear()
	if _, err := tree.WriteTo(l.w); err != nil {
		return err
	}
	l.height = tree.Height()
	return nil
}

// Follow attaches the live region to a tracker so every mutation redraws it.
func (l *Live) Follow(t *Tracker) {
	t.AttachRefresh(func() error {
		return l.Update(t.Render())
	})
}

// Close erases the region and restores the cursor. Further updates are
// ignored.
func (l *Live) Close() error {
	if !l.enabled || l.closed {
		return nil
	}
	l.closed = true
	l.clear()
	l.out.ShowCursor()
	return nil
}

func (l *Live) clear() {
	if l.height == 0 {
		return
	}
	l.out.ClearLines(l.height)
	l.height = 0
}
