package timing

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tanema/gween/ease"
)

const frame = 1.0 / 60.0

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	var got []string
	s := NewScheduler(SystemFunc(func(float64) { got = append(got, "a") }))
	s.Add(nil)
	s.Add(SystemFunc(func(float64) { got = append(got, "b") }))

	s.Update(frame)
	s.Update(frame)

	if diff := cmp.Diff([]string{"a", "b", "a", "b"}, got); diff != "" {
		t.Fatalf("system order mismatch (-want +got):\n%s", diff)
	}
	if len(s.Systems()) != 2 {
		t.Fatalf("expected 2 systems, got %d", len(s.Systems()))
	}
}

func TestTimersRepeatAndRemove(t *testing.T) {
	cases := []struct {
		name   string
		repeat int
		ticks  int
		want   int
	}{
		{"forever", 0, 5, 5},
		{"twice", 2, 5, 2},
		{"once", 1, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			timers := NewTimers()
			key := new(int)
			fired := 0
			timers.Add(key, 0.001, c.repeat, func(float64) { fired++ })
			for i := 0; i < c.ticks; i++ {
				timers.Update(frame)
			}
			if fired != c.want {
				t.Fatalf("fired %d times, want %d", fired, c.want)
			}
			if c.repeat > 0 && timers.Exists(key) {
				t.Fatalf("finite timer should be removed after its last repeat")
			}
		})
	}
}

func TestTimersRemoveDuringTick(t *testing.T) {
	timers := NewTimers()
	a, b := new(int), new(int)
	bFired := 0
	timers.Add(a, 0, 0, func(float64) { timers.Remove(b) })
	timers.Add(b, 0, 0, func(float64) { bFired++ })

	timers.Update(frame)
	if bFired != 0 {
		t.Fatalf("timer removed earlier in the tick must not fire")
	}
	if timers.Exists(b) || !timers.Exists(a) {
		t.Fatalf("unexpected timer set after removal")
	}
	timers.Remove(b)
	if timers.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", timers.Len())
	}
}

func TestTweenProgressAndComplete(t *testing.T) {
	e := NewEngine()
	var last float64
	started, completed := 0, 0
	e.To(0.5).SetEase(ease.Linear).
		OnStart(func() { started++ }).
		OnUpdate(func(p float64) { last = p }).
		OnComplete(func() { completed++ })

	e.Update(0.25)
	if started != 1 || !approx(last, 0.5) {
		t.Fatalf("after 0.25s: started=%d progress=%v", started, last)
	}
	e.Update(0.25)
	if completed != 1 || !approx(last, 1) {
		t.Fatalf("after 0.5s: completed=%d progress=%v", completed, last)
	}
	if e.Len() != 0 {
		t.Fatalf("finished tween should leave the engine")
	}
}

func TestTweenDelay(t *testing.T) {
	e := NewEngine()
	started := false
	var last float64
	e.To(1).SetEase(ease.Linear).SetDelay(0.5).
		OnStart(func() { started = true }).
		OnUpdate(func(p float64) { last = p })

	e.Update(0.25)
	if started {
		t.Fatalf("tween started during its delay")
	}
	e.Update(0.5)
	if !started || !approx(last, 0.25) {
		t.Fatalf("expected overflow of the delay to count: started=%v p=%v", started, last)
	}
}

func TestTweenYoyoFinalProgress(t *testing.T) {
	cases := []struct {
		name  string
		loops int
		yoyo  bool
		want  float64
	}{
		{"restart_two_passes", 2, false, 1},
		{"yoyo_two_passes", 2, true, 0},
		{"yoyo_three_passes", 3, true, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewEngine()
			var last float64
			done := false
			e.To(0.1).SetEase(ease.Linear).SetLoops(c.loops, c.yoyo).
				OnUpdate(func(p float64) { last = p }).
				OnComplete(func() { done = true })
			for i := 0; i < 100 && !done; i++ {
				e.Update(0.03)
			}
			if !done {
				t.Fatalf("tween never completed")
			}
			if !approx(last, c.want) {
				t.Fatalf("final progress = %v, want %v", last, c.want)
			}
		})
	}
}

func TestTweenYoyoRunsBackwards(t *testing.T) {
	e := NewEngine()
	var last float64
	e.To(1).SetEase(ease.Linear).SetLoops(2, true).OnUpdate(func(p float64) { last = p })
	e.Update(1.25)
	if !approx(last, 0.75) {
		t.Fatalf("second yoyo pass progress = %v, want 0.75", last)
	}
}

func TestTweenKillSuppressesCallbacks(t *testing.T) {
	e := NewEngine()
	calls := 0
	tw := e.To(0.1).OnUpdate(func(float64) { calls++ }).OnComplete(func() { calls++ })
	tw.Kill()
	e.Update(1)
	if calls != 0 {
		t.Fatalf("killed tween called back %d times", calls)
	}
	if tw.Active() {
		t.Fatalf("killed tween reports active")
	}
}

func TestDelayedCallFiresOnce(t *testing.T) {
	e := NewEngine()
	fired := 0
	e.DelayedCall(0.1, func() { fired++ })
	e.Update(0.05)
	if fired != 0 {
		t.Fatalf("delayed call fired early")
	}
	e.Update(0.05)
	e.Update(0.05)
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
}

func TestTweenCreatedInCallbackWaitsForNextTick(t *testing.T) {
	e := NewEngine()
	innerStarted := false
	e.DelayedCall(0, func() {
		e.To(1).OnStart(func() { innerStarted = true })
	})
	e.Update(frame)
	if innerStarted {
		t.Fatalf("tween created during a tick must not advance in the same tick")
	}
	e.Update(frame)
	if !innerStarted {
		t.Fatalf("tween created during a tick should start on the next tick")
	}
}

func TestInfiniteLoopNeverCompletes(t *testing.T) {
	e := NewEngine()
	completed := false
	e.To(0.1).SetLoops(-1, false).OnComplete(func() { completed = true })
	for i := 0; i < 200; i++ {
		e.Update(frame)
	}
	if completed || e.Len() != 1 {
		t.Fatalf("infinite tween completed=%v len=%d", completed, e.Len())
	}
}

func TestParseEase(t *testing.T) {
	for _, name := range []string{"", "Linear", "Quad.Out", "Cube.InOut", "Bounce.In", "Elastic.Out"} {
		if fn, err := ParseEase(name); err != nil || fn == nil {
			t.Fatalf("ParseEase(%q) = %v, %v", name, fn, err)
		}
	}
	if _, err := ParseEase("Wobble.In"); !errors.Is(err, ErrUnknownEase) {
		t.Fatalf("expected ErrUnknownEase, got %v", err)
	}
}
