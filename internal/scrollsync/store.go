package scrollsync

// OffsetStore holds the canonical horizontal offset for one synchronized
// group of surfaces. Offsets are terminal cells.
//
// Set never validates: a surface may push a value that exceeds a sibling's
// scrollable extent, and each consumer clamps against its own extent when
// applying. All access happens on the Bubble Tea update goroutine, so the
// store carries no locking.
type OffsetStore struct {
	offset int
}

func NewOffsetStore() *OffsetStore {
	return &OffsetStore{}
}

// Get returns the current canonical offset.
func (s *OffsetStore) Get() int {
	return s.offset
}

// Set replaces the canonical offset unconditionally.
func (s *OffsetStore) Set(v int) {
	s.offset = v
}
