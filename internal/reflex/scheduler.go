package reflex

import "sort"

// TaskID identifies a deferred task. The zero value is never issued.
type TaskID uint64

type task struct {
	id       TaskID
	deadline float64
	fn       func()
}

// Scheduler is a queue of one-shot callbacks measured in game time.
// It has no goroutines: callbacks run inside Advance, on the caller's thread,
// interleaved with frame updates and taps.
type Scheduler struct {
	now    float64
	nextID TaskID
	tasks  []task

	// due holds tasks taken off the queue by the current Advance call.
	due []task
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current game time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once, delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, task{id: s.nextID, deadline: s.now + delay, fn: fn})
	return s.nextID
}

// Cancel drops a task that has not run yet.
// Returns false if it already ran or was never scheduled.
func (s *Scheduler) Cancel(id TaskID) bool {
	if id == 0 {
		return false
	}
	if i := indexOf(s.tasks, id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		return true
	}
	if i := indexOf(s.due, id); i >= 0 {
		s.due[i].fn = nil
		return true
	}
	return false
}

// Pending reports whether the task is still waiting to run.
func (s *Scheduler) Pending(id TaskID) bool {
	if id == 0 {
		return false
	}
	if indexOf(s.tasks, id) >= 0 {
		return true
	}
	i := indexOf(s.due, id)
	return i >= 0 && s.due[i].fn != nil
}

// Len returns the number of queued tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Reset drops every task and rewinds game time to zero.
func (s *Scheduler) Reset() {
	s.now = 0
	s.tasks = nil
	for i := range s.due {
		s.due[i].fn = nil
	}
}

// Advance moves game time forward by dt seconds and runs every task that
// came due, earliest deadline first. Tasks scheduled by a running callback
// wait for a later Advance even if their deadline has already passed.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}

	due := make([]task, 0, len(s.tasks))
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.deadline <= s.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	if len(due) == 0 {
		return
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline < due[j].deadline
	})

	s.due = due
	for i := range s.due {
		fn := s.due[i].fn
		if fn == nil {
			continue
		}
		s.due[i].fn = nil
		fn()
	}
	s.due = nil
}

func indexOf(tasks []task, id TaskID) int {
	for i, t := range tasks {
		if t.id == id {
			return i
		}
	}
	return -1
}
