package scrollsync

import tea "github.com/charmbracelet/bubbletea"

// ReleaseGuardMsg asks the update loop to release a surface's guard. It is
// produced by the deferred command a surface schedules after writing the
// store and must be routed back via Surface.ReleaseGuard.
type ReleaseGuardMsg struct {
	Surface *Surface
}

// Surface binds one Viewport to a shared OffsetStore.
//
// User-driven scrolling flows viewport -> store; the store's value flows back
// into every sibling surface on its next Sync. Applying a store value to the
// viewport synchronously re-fires the viewport's own offset-changed
// notification, so the surface carries a private guard flag that swallows
// that echo. The guard is released by a deferred command on the next tick of
// the event loop, never inside the pass that set it: a second notification
// landing before the release runs is dropped.
type Surface struct {
	store    *OffsetStore
	vp       *Viewport
	onChange func(int)

	guard         bool
	releaseQueued bool
}

// NewSurface wires a surface to the shared store. onChange is an optional
// side channel invoked with every offset change this surface itself
// originates; it is not required for synchronization.
func NewSurface(store *OffsetStore, width int, onChange func(int)) *Surface {
	s := &Surface{store: store, vp: NewViewport(width), onChange: onChange}
	s.vp.OnOffsetChanged(s.offsetChanged)
	return s
}

// Viewport exposes the wrapped viewport for rendering and sizing queries.
func (s *Surface) Viewport() *Viewport { return s.vp }

// SetWidth resizes the wrapped viewport. Any resulting clamp notification
// follows the user-driven path, so the caller must dispatch the returned
// command like any other.
func (s *Surface) SetWidth(w int) tea.Cmd {
	s.vp.SetWidth(w)
	return s.takeRelease()
}

// Scroll moves the viewport by delta cells in response to user input.
func (s *Surface) Scroll(delta int) tea.Cmd {
	s.vp.ScrollBy(delta)
	return s.takeRelease()
}

// ScrollTo moves the viewport to an absolute offset in response to user
// input. The viewport clamps against its own extent.
func (s *Surface) ScrollTo(offset int) tea.Cmd {
	s.vp.SetOffset(offset)
	return s.takeRelease()
}

// Sync runs once per update pass: it installs the freshly rendered content
// (sizing must be current before the offset is reconciled), then pulls the
// store's value, clamps it against this surface's own extent, and applies it
// if the viewport disagrees. The echo fired by the apply is swallowed by the
// guard.
func (s *Surface) Sync(content string) tea.Cmd {
	s.vp.SetContent(content)
	want := s.store.Get()
	if want < 0 {
		want = 0
	}
	if m := s.vp.MaxOffset(); want > m {
		want = m
	}
	if want != s.vp.Offset() {
		s.guard = true
		s.releaseQueued = true
		s.vp.SetOffset(want)
	}
	return s.takeRelease()
}

// View renders the surface's visible window.
func (s *Surface) View() string { return s.vp.View() }

// ReleaseGuard clears the guard. Called from the update loop when the
// deferred ReleaseGuardMsg arrives.
func (s *Surface) ReleaseGuard() {
	s.guard = false
}

// offsetChanged is the viewport's notification hook. With the guard up the
// notification is an echo of this surface's own apply and is dropped.
// Otherwise the change is user-driven: raise the guard, publish to the store,
// fire the side channel, and queue the deferred release.
func (s *Surface) offsetChanged(offset int) {
	if s.guard {
		return
	}
	s.guard = true
	s.releaseQueued = true
	s.store.Set(offset)
	if s.onChange != nil {
		s.onChange(offset)
	}
}

// takeRelease hands out at most one pending release command. The command
// yields a ReleaseGuardMsg after the current pass completes; releasing
// in-pass would let the echo of a same-pass apply leak back into the store.
func (s *Surface) takeRelease() tea.Cmd {
	if !s.releaseQueued {
		return nil
	}
	s.releaseQueued = false
	return func() tea.Msg {
		return ReleaseGuardMsg{Surface: s}
	}
}
