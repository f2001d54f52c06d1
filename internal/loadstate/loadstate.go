// Package loadstate tracks the lifecycle of one asynchronous page load.
//
// A State is a value: every transition returns a new State, which keeps it
// safe to store inside a bubbletea model. Each Begin hands out a sequence
// number and Resolve only commits a result carrying the latest one, so a
// slow response can never overwrite a fresher request.
package loadstate

// Phase is the stage a load is in.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

// String implements fmt.Stringer
func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrorPolicy decides what happens to held data when a load fails.
type ErrorPolicy int

const (
	// KeepOnError retains the last good data.
	KeepOnError ErrorPolicy = iota
	// ClearOnError drops held data.
	ClearOnError
)

// State is the load state for data of type T.
type State[T any] struct {
	phase   Phase
	data    T
	hasData bool
	err     error
	seq     uint64
	policy  ErrorPolicy
}

// New returns an idle state using policy.
func New[T any](policy ErrorPolicy) State[T] {
	return State[T]{policy: policy}
}

// Begin moves to Loading and returns the sequence number the eventual
// Resolve must carry.
func (s State[T]) Begin() (State[T], uint64) {
	s.seq++
	s.phase = Loading
	return s, s.seq
}

// Resolve commits the outcome of request seq. Results from superseded
// requests are ignored and the state is returned unchanged.
func (s State[T]) Resolve(seq uint64, data T, err error) State[T] {
	if seq != s.seq || s.phase != Loading {
		return s
	}

	if err != nil {
		s.phase = Failed
		s.err = err
		if s.policy == ClearOnError {
			var zero T
			s.data = zero
			s.hasData = false
		}
		return s
	}

	s.phase = Loaded
	s.data = data
	s.hasData = true
	s.err = nil
	return s
}

// Invalidate abandons any in-flight request. A pending load falls back to
// Loaded when data is held and Idle otherwise.
func (s State[T]) Invalidate() State[T] {
	s.seq++
	if s.phase == Loading {
		if s.hasData {
			s.phase = Loaded
		} else {
			s.phase = Idle
		}
	}
	return s
}

// Phase returns the current phase.
func (s State[T]) Phase() Phase { return s.phase }

// Loading reports whether a request is in flight.
func (s State[T]) Loading() bool { return s.phase == Loading }

// Data returns the held data and whether any is held.
func (s State[T]) Data() (T, bool) { return s.data, s.hasData }

// Err returns the error of the last failed load. It is cleared by the next
// successful one.
func (s State[T]) Err() error { return s.err }

// Seq returns the latest request sequence number.
func (s State[T]) Seq() uint64 { return s.seq }
