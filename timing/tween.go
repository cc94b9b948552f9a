package timing

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Engine advances every live tween once per frame.
type Engine struct {
	active []*Tween
}

func NewEngine() *Engine {
	return &Engine{}
}

// To registers a tween that runs for duration seconds. Configure it with the
// setters before the next Update.
func (e *Engine) To(duration float64) *Tween {
	if duration < 0 {
		duration = 0
	}
	t := &Tween{
		duration: duration,
		loops:    1,
		easing:   DefaultEase,
	}
	e.active = append(e.active, t)
	return t
}

// DelayedCall runs fn once after delay seconds.
func (e *Engine) DelayedCall(delay float64, fn func()) *Tween {
	return e.To(0).SetDelay(delay).OnComplete(fn)
}

// Len reports how many tweens are still pending or running.
func (e *Engine) Len() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, t := range e.active {
		if t.Active() {
			n++
		}
	}
	return n
}

func (e *Engine) Update(dt float64) {
	if e == nil || len(e.active) == 0 {
		return
	}

	snapshot := append([]*Tween(nil), e.active...)
	for _, t := range snapshot {
		t.advance(dt)
	}

	live := e.active[:0]
	for _, t := range e.active {
		if t.Active() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = live
}

// Tween reports eased progress in [0,1] to its update callback.
type Tween struct {
	duration float64
	delay    float64
	loops    int
	yoyo     bool
	easing   ease.TweenFunc

	curve   *gween.Tween
	elapsed float64
	pass    int
	started bool
	done    bool
	killed  bool

	onStart    func()
	onUpdate   func(p float64)
	onComplete func()
}

func (t *Tween) SetEase(fn ease.TweenFunc) *Tween {
	if fn != nil {
		t.easing = fn
	}
	return t
}

func (t *Tween) SetDelay(delay float64) *Tween {
	if delay > 0 {
		t.delay = delay
	}
	return t
}

// SetLoops sets the total number of passes; negative loops forever. With yoyo
// every odd pass runs backwards.
func (t *Tween) SetLoops(loops int, yoyo bool) *Tween {
	if loops == 0 {
		loops = 1
	}
	t.loops = loops
	t.yoyo = yoyo
	return t
}

func (t *Tween) OnStart(fn func()) *Tween {
	t.onStart = fn
	return t
}

func (t *Tween) OnUpdate(fn func(p float64)) *Tween {
	t.onUpdate = fn
	return t
}

func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = fn
	return t
}

// Kill stops the tween without invoking any further callback.
func (t *Tween) Kill() {
	if t == nil {
		return
	}
	t.killed = true
}

func (t *Tween) Active() bool {
	return t != nil && !t.killed && !t.done
}

func (t *Tween) Started() bool {
	return t != nil && t.started
}

func (t *Tween) advance(dt float64) {
	if !t.Active() {
		return
	}

	if t.delay > 0 {
		t.delay -= dt
		if t.delay > 0 {
			return
		}
		dt = -t.delay
		t.delay = 0
	}

	if !t.started {
		t.started = true
		t.curve = gween.New(0, 1, float32(t.duration), t.easing)
		if t.onStart != nil {
			t.onStart()
		}
		if t.killed {
			return
		}
	}

	t.elapsed += dt
	for t.elapsed >= t.duration {
		t.pass++
		if t.loops >= 0 && t.pass >= t.loops {
			t.finish()
			return
		}
		if t.duration <= 0 {
			t.elapsed = 0
			break
		}
		t.elapsed -= t.duration
	}
	t.update(t.progress(t.elapsed))
}

func (t *Tween) progress(elapsed float64) float64 {
	if t.yoyo && t.pass%2 == 1 {
		elapsed = t.duration - elapsed
	}
	if t.duration <= 0 {
		if elapsed < 0 {
			return 0
		}
		return 1
	}
	v, _ := t.curve.Set(float32(elapsed))
	return float64(v)
}

func (t *Tween) finish() {
	t.done = true
	final := 1.0
	if t.yoyo && (t.pass-1)%2 == 1 {
		final = 0
	}
	t.update(final)
	if t.killed {
		return
	}
	if t.onComplete != nil {
		t.onComplete()
	}
}

func (t *Tween) update(p float64) {
	if t.onUpdate != nil && !t.killed {
		t.onUpdate(p)
	}
}
