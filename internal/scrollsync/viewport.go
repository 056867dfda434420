package scrollsync

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Viewport is a horizontally scrollable window over a block of ANSI-styled
// lines. It is the native scrolling primitive for a cell-grid host: it owns
// its offset, clamps it against the content extent, and reports every offset
// change through a single notification hook without distinguishing
// user-driven changes from programmatic ones.
type Viewport struct {
	width        int
	lines        []string
	contentWidth int
	offset       int
	notify       func(int)
}

func NewViewport(width int) *Viewport {
	return &Viewport{width: max(0, width)}
}

// OnOffsetChanged registers the hook fired after any offset change.
func (v *Viewport) OnOffsetChanged(fn func(int)) {
	v.notify = fn
}

// SetWidth resizes the visible window. The offset is re-clamped against the
// new extent, which fires the notification if it moves.
func (v *Viewport) SetWidth(w int) {
	v.width = max(0, w)
	v.SetOffset(v.offset)
}

// SetContent replaces the rendered content and remeasures its width. The
// offset is re-clamped against the new extent, which fires the notification
// if it moves.
func (v *Viewport) SetContent(content string) {
	v.lines = strings.Split(content, "\n")
	v.contentWidth = 0
	for _, line := range v.lines {
		if w := ansi.StringWidth(line); w > v.contentWidth {
			v.contentWidth = w
		}
	}
	v.SetOffset(v.offset)
}

// Width returns the visible window width.
func (v *Viewport) Width() int { return v.width }

// ContentWidth returns the measured width of the widest content line.
func (v *Viewport) ContentWidth() int { return v.contentWidth }

// Offset returns the current horizontal offset.
func (v *Viewport) Offset() int { return v.offset }

// MaxOffset returns the scrollable extent: contentWidth - width, floored at 0.
func (v *Viewport) MaxOffset() int {
	return max(0, v.contentWidth-v.width)
}

// SetOffset clamps n to [0, MaxOffset] and applies it. The notification fires
// only when the applied offset actually differs from the current one, so
// re-applying the current value is a no-op.
func (v *Viewport) SetOffset(n int) {
	if n < 0 {
		n = 0
	}
	if m := v.MaxOffset(); n > m {
		n = m
	}
	if n == v.offset {
		return
	}
	v.offset = n
	if v.notify != nil {
		v.notify(n)
	}
}

// ScrollBy moves the offset by delta cells.
func (v *Viewport) ScrollBy(delta int) {
	v.SetOffset(v.offset + delta)
}

// AtLeftEdge reports whether the viewport shows the leftmost content.
func (v *Viewport) AtLeftEdge() bool { return v.offset == 0 }

// AtRightEdge reports whether the viewport shows the rightmost content.
func (v *Viewport) AtRightEdge() bool { return v.offset >= v.MaxOffset() }

// View renders the visible window: each line cut at the offset and padded to
// the viewport width so styled cells stay column-aligned.
func (v *Viewport) View() string {
	out := make([]string, len(v.lines))
	for i, line := range v.lines {
		out[i] = padRight(ansi.Cut(line, v.offset, v.offset+v.width), v.width)
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
