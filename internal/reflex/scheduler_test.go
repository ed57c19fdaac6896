package reflex

import (
	"reflect"
	"testing"
)

func TestSchedulerRunsDueTasksInOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(2, func() { order = append(order, "b") })
	s.After(1, func() { order = append(order, "a") })
	s.After(2, func() { order = append(order, "c") })
	s.After(5, func() { order = append(order, "late") })

	s.Advance(0.5)
	if len(order) != 0 {
		t.Fatalf("tasks ran early: %v", order)
	}

	s.Advance(2)
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("order = %v, expected %v", order, expected)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	id := s.After(1, func() { ran = true })

	if !s.Pending(id) {
		t.Fatal("task should be pending")
	}
	if !s.Cancel(id) {
		t.Fatal("Cancel() = false, expected true")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() should report false")
	}

	s.Advance(2)
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestSchedulerCancelFromEarlierCallback(t *testing.T) {
	s := NewScheduler()
	ran := false
	var second TaskID

	s.After(1, func() { s.Cancel(second) })
	second = s.After(1.5, func() { ran = true })

	s.Advance(2)
	if ran {
		t.Error("task cancelled by an earlier callback in the same Advance still ran")
	}
}

func TestSchedulerRescheduleWaitsForNextAdvance(t *testing.T) {
	s := NewScheduler()
	count := 0

	var tick func()
	tick = func() {
		count++
		s.After(0, tick)
	}
	s.After(0, tick)

	s.Advance(0)
	if count != 1 {
		t.Fatalf("count = %d after one Advance, expected 1", count)
	}
	s.Advance(0)
	if count != 2 {
		t.Errorf("count = %d after two Advances, expected 2", count)
	}
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler()
	s.After(1, func() { t.Error("task survived Reset") })
	s.Advance(0.5)
	s.Reset()

	if s.Now() != 0 || s.Len() != 0 {
		t.Errorf("after Reset: Now() = %v, Len() = %d", s.Now(), s.Len())
	}
	s.Advance(5)
}
