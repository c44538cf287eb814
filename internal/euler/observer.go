package euler

import (
	"sync"

	"github.com/rs/zerolog"
)

// ProgressObserver receives progress notifications from a calculation.
type ProgressObserver interface {
	// Update is called with the calculator index and the normalized progress.
	Update(calcIndex int, progress float64)
}

// ProgressSubject fans progress notifications out to registered observers.
// It is safe for concurrent use.
type ProgressSubject struct {
	observers []ProgressObserver
	mu        sync.RWMutex
}

// NewProgressSubject creates a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{observers: make([]ProgressObserver, 0)}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer, preserving the order of the others.
func (s *ProgressSubject) Unregister(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends an update to every observer, in registration order.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, observer := range s.observers {
		observer.Update(calcIndex, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Freeze returns a reporter bound to a snapshot of the current observers.
// Observers registered afterwards are not notified by it, and the hot loop
// of a calculation does not contend on the subject's lock.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressReporter {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, observer := range snapshot {
			observer.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards progress updates to a channel. Sends never block:
// when the channel buffer is full the update is dropped, since a later one
// supersedes it.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer sending to ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}:
	default:
	}
}

// LoggingObserver logs progress at debug level each time it crosses a
// multiple of Step.
type LoggingObserver struct {
	logger zerolog.Logger
	// Step is the progress increment between two log lines (0.25 by default).
	Step float64

	mu   sync.Mutex
	next map[int]float64
}

// NewLoggingObserver creates an observer writing to logger.
func NewLoggingObserver(logger zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger, Step: 0.25, next: make(map[int]float64)}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	step := o.Step
	if step <= 0 {
		step = 0.25
	}

	o.mu.Lock()
	threshold, ok := o.next[calcIndex]
	if !ok {
		threshold = step
	}
	if progress < threshold {
		o.mu.Unlock()
		return
	}
	for threshold <= progress {
		threshold += step
	}
	o.next[calcIndex] = threshold
	o.mu.Unlock()

	o.logger.Debug().
		Int("calculator", calcIndex).
		Float64("progress", progress).
		Msg("calculation progress")
}
