package idgenerator

// sequence hands out 0..max within one tick and refuses to wrap.
type sequence struct {
	max     uint64
	current uint64
	started bool
}

func newSequence(max uint64) sequence {
	return sequence{max: max}
}

// reset starts a new tick; the next call to next returns 0.
func (s *sequence) reset() {
	s.current = 0
	s.started = false
}

// next returns the next value for the current tick, or false once max has
// already been handed out.
func (s *sequence) next() (uint64, bool) {
	if !s.started {
		s.started = true
		s.current = 0
		return 0, true
	}
	if s.current >= s.max {
		return s.current, false
	}
	s.current++
	return s.current, true
}
