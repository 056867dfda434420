package scrollsync

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestViewportClampsOffset(t *testing.T) {
	t.Parallel()

	v := NewViewport(10)
	v.SetContent(strings.Repeat("a", 25))
	require.Equal(t, 15, v.MaxOffset())

	v.SetOffset(-3)
	require.Equal(t, 0, v.Offset())

	v.SetOffset(999)
	require.Equal(t, 15, v.Offset())
	require.True(t, v.AtRightEdge())
}

func TestViewportNotifiesOnlyOnRealChange(t *testing.T) {
	t.Parallel()

	v := NewViewport(10)
	v.SetContent(strings.Repeat("a", 30))
	var fired []int
	v.OnOffsetChanged(func(n int) { fired = append(fired, n) })

	v.SetOffset(5)
	v.SetOffset(5)
	v.ScrollBy(0)
	v.SetOffset(7)
	require.Equal(t, []int{5, 7}, fired)
}

func TestViewportSetContentReclamps(t *testing.T) {
	t.Parallel()

	v := NewViewport(10)
	v.SetContent(strings.Repeat("a", 40))
	v.SetOffset(30)

	var fired []int
	v.OnOffsetChanged(func(n int) { fired = append(fired, n) })

	// Narrower content pulls the offset in and reports the move.
	v.SetContent(strings.Repeat("b", 15))
	require.Equal(t, 5, v.Offset())
	require.Equal(t, []int{5}, fired)
}

func TestViewportViewCutsAndPads(t *testing.T) {
	t.Parallel()

	v := NewViewport(5)
	v.SetContent("0123456789\nab")
	v.SetOffset(3)

	lines := strings.Split(v.View(), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "34567", ansi.Strip(lines[0]))
	require.Equal(t, "     ", ansi.Strip(lines[1]), "short lines pad to the window width")
}

func TestViewportStyledContentKeepsAlignment(t *testing.T) {
	t.Parallel()

	styled := "\x1b[31m0123456789\x1b[0m"
	v := NewViewport(4)
	v.SetContent(styled + "\n0123456789")
	v.SetOffset(2)

	lines := strings.Split(v.View(), "\n")
	require.Equal(t, ansi.Strip(lines[0]), ansi.Strip(lines[1]))
	require.Equal(t, "2345", ansi.Strip(lines[0]))
}

func TestOffsetStoreNeverRejects(t *testing.T) {
	t.Parallel()

	s := NewOffsetStore()
	s.Set(-40)
	require.Equal(t, -40, s.Get())
	s.Set(10_000)
	require.Equal(t, 10_000, s.Get())
}
