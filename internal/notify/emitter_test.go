package notify

import (
	"sync"
	"testing"
	"time"
)

func TestNotification_Timeline(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ms := func(n int) time.Time { return base.Add(time.Duration(n) * time.Millisecond) }

	n := Show(ms(0), "X", DefaultTTL)
	if msg, ok := n.Visible(ms(999)); !ok || msg != "X" {
		t.Errorf("Visible(T+999) = %q, %v, want X, true", msg, ok)
	}

	n = Show(ms(1000), "Y", DefaultTTL)
	checks := []struct {
		at   int
		want string
	}{
		{1000, "Y"},
		{2999, "Y"},
		{3000, "Y"},
		{3999, "Y"},
		{4000, ""},
		{9000, ""},
	}
	for _, c := range checks {
		msg, _ := n.Visible(ms(c.at))
		if msg != c.want {
			t.Errorf("Visible(T+%d) = %q, want %q", c.at, msg, c.want)
		}
	}
}

func TestNotification_ZeroIsIdle(t *testing.T) {
	var n Notification
	if !n.IsZero() {
		t.Error("zero Notification should be idle")
	}
	if _, ok := n.Visible(time.Now()); ok {
		t.Error("zero Notification should not be visible")
	}
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n.Message)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}

func TestEmitter_ShowThenExpire(t *testing.T) {
	e := NewEmitter(WithTTL(40 * time.Millisecond))
	rec := &recorder{}
	e.Subscribe(rec.record)

	e.Show("Searching...")
	if got := e.Current(); got != "Searching..." {
		t.Errorf("Current() = %q, want Searching...", got)
	}

	waitFor(t, 2*time.Second, func() bool { return e.Current() == "" })

	waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) == 2 })
	events := rec.snapshot()
	if events[0] != "Searching..." || events[1] != "" {
		t.Errorf("events = %q, want [Searching... \"\"]", events)
	}
}

func TestEmitter_PreemptRestartsTimer(t *testing.T) {
	e := NewEmitter(WithTTL(150 * time.Millisecond))
	rec := &recorder{}
	e.Subscribe(rec.record)

	e.Show("X")
	time.Sleep(75 * time.Millisecond)
	e.Show("Y")

	// Past X's original expiry, before Y's.
	time.Sleep(100 * time.Millisecond)
	if got := e.Current(); got != "Y" {
		t.Fatalf("Current() = %q, want Y", got)
	}

	waitFor(t, 2*time.Second, func() bool { return e.Current() == "" })
	waitFor(t, 2*time.Second, func() bool { return len(rec.snapshot()) >= 3 })

	events := rec.snapshot()
	want := []string{"X", "Y", ""}
	if len(events) != len(want) {
		t.Fatalf("events = %q, want %q", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestEmitter_Unsubscribe(t *testing.T) {
	e := NewEmitter(WithTTL(time.Hour))
	rec := &recorder{}
	unsubscribe := e.Subscribe(rec.record)

	e.Show("one")
	unsubscribe()
	e.Show("two")
	e.Stop()

	if events := rec.snapshot(); len(events) != 1 || events[0] != "one" {
		t.Errorf("events = %q, want [one]", events)
	}
}

func TestEmitter_StopKeepsMessage(t *testing.T) {
	e := NewEmitter(WithTTL(30 * time.Millisecond))
	rec := &recorder{}
	e.Subscribe(rec.record)

	e.Show("Here are the results.")
	e.Stop()
	time.Sleep(60 * time.Millisecond)

	if events := rec.snapshot(); len(events) != 1 {
		t.Errorf("events = %q, want only the show event", events)
	}
}

func TestEmitter_ClockStampsExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEmitter(WithClock(func() time.Time { return now }), WithTTL(time.Hour))
	defer e.Stop()

	n := e.Show("hi")
	if !n.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %s, want %s", n.ExpiresAt, now.Add(time.Hour))
	}
	if snap := e.Snapshot(); snap.Message != "hi" {
		t.Errorf("Snapshot().Message = %q, want hi", snap.Message)
	}
}
