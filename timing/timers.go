package timing

// Timers runs repeating or delayed callbacks keyed by callback identity.
// Keys must be comparable; pointers are the usual choice.
type Timers struct {
	items []*timer
	byKey map[any]*timer
}

type timer struct {
	key      any
	interval float64
	repeat   int
	elapsed  float64
	fn       func(dt float64)
	removed  bool
}

func NewTimers() *Timers {
	return &Timers{byKey: map[any]*timer{}}
}

// Add registers fn under key. A repeat of 0 fires forever; otherwise the timer
// is dropped after firing repeat times. Adding an existing key replaces it.
func (t *Timers) Add(key any, interval float64, repeat int, fn func(dt float64)) {
	if t == nil || fn == nil {
		return
	}
	if old, ok := t.byKey[key]; ok {
		old.interval = interval
		old.repeat = repeat
		old.fn = fn
		old.elapsed = 0
		return
	}
	tm := &timer{key: key, interval: interval, repeat: repeat, fn: fn}
	t.items = append(t.items, tm)
	t.byKey[key] = tm
}

func (t *Timers) Exists(key any) bool {
	if t == nil {
		return false
	}
	_, ok := t.byKey[key]
	return ok
}

func (t *Timers) Remove(key any) {
	if t == nil {
		return
	}
	tm, ok := t.byKey[key]
	if !ok {
		return
	}
	tm.removed = true
	delete(t.byKey, key)
}

// Len reports the number of live timers.
func (t *Timers) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}

func (t *Timers) Update(dt float64) {
	if t == nil || len(t.items) == 0 {
		return
	}

	snapshot := append([]*timer(nil), t.items...)
	for _, tm := range snapshot {
		if tm.removed {
			continue
		}
		tm.elapsed += dt
		if tm.elapsed < tm.interval {
			continue
		}
		tm.elapsed -= tm.interval
		if tm.elapsed < 0 || tm.elapsed > 0.03 {
			tm.elapsed = 0
		}
		if tm.repeat > 0 {
			tm.repeat--
			if tm.repeat == 0 {
				t.Remove(tm.key)
			}
		}
		tm.fn(dt)
	}

	live := t.items[:0]
	for _, tm := range t.items {
		if !tm.removed {
			live = append(live, tm)
		}
	}
	for i := len(live); i < len(t.items); i++ {
		t.items[i] = nil
	}
	t.items = live
}
