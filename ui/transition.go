package ui

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/uimotion/common"
	"github.com/milk9111/uimotion/descriptor"
	"github.com/milk9111/uimotion/timing"
)

// OptionIgnoreDisplayController keeps every target on screen while the
// transition plays, not only the owner.
const OptionIgnoreDisplayController = 1

// Transition is a named set of timed actions played against a component and
// its children.
type Transition struct {
	name    string
	owner   *Component
	items   []*TransitionItem
	options int

	AutoPlay      bool
	AutoPlayTimes int
	AutoPlayDelay float64

	totalTimes int
	totalTasks int
	playing    bool
	scheduling bool
	pass       int
	onComplete func()

	ownerBaseX, ownerBaseY float64

	displayLocks []func()
}

// NewTransition creates an empty transition and registers it on owner.
func NewTransition(owner *Component, name string) *Transition {
	t := &Transition{name: name}
	owner.AddTransition(t)
	return t
}

func (t *Transition) Name() string        { return t.name }
func (t *Transition) Owner() *Component   { return t.owner }
func (t *Transition) Options() int        { return t.options }
func (t *Transition) SetOptions(opts int) { t.options = opts }
func (t *Transition) Playing() bool       { return t.playing }

func (t *Transition) Items() []*TransitionItem {
	return append([]*TransitionItem(nil), t.items...)
}

// AddItem appends an item built in code.
func (t *Transition) AddItem(item *TransitionItem) {
	t.items = append(t.items, item)
}

// NewItem returns an item with default values: owner target, default ease
// and both axes defined.
func NewItem(typ ActionType) *TransitionItem {
	item := newTransitionItem()
	item.Type = typ
	return item
}

// Setup replaces the items with those decoded from spec. Nothing changes
// when any item is invalid.
func (t *Transition) Setup(spec descriptor.TransitionSpec) error {
	items := make([]*TransitionItem, 0, len(spec.Items))
	for i, is := range spec.Items {
		item, err := newTransitionItemFromSpec(is)
		if err != nil {
			return fmt.Errorf("ui: transition %q item %d: %w", spec.Name, i, err)
		}
		items = append(items, item)
	}
	if spec.Name != "" {
		t.name = spec.Name
	}
	t.options = spec.Options
	t.items = items
	t.AutoPlay = spec.AutoPlay
	t.AutoPlayTimes = spec.Times
	t.AutoPlayDelay = spec.Delay
	return nil
}

// Play stops any running playback and starts the transition times times
// after delay seconds; negative times loops until stopped and 0 means once.
// Items whose target id does not resolve are skipped. Items due at time 0
// are applied in order while Play runs, and their start hooks fire right
// after each value lands, so a hook may already see the transition playing
// and may Stop it. When nothing needs to wait, onComplete runs before Play
// returns.
func (t *Transition) Play(times int, delay float64, onComplete func()) error {
	t.Stop(true, true)

	if t.stage() == nil {
		return fmt.Errorf("%w: transition %q", ErrNoStage, t.name)
	}
	if err := t.resolveTargets(true); err != nil {
		return fmt.Errorf("ui: play %q: %w", t.name, err)
	}

	if times == 0 {
		times = 1
	}
	t.totalTimes = times
	t.onComplete = onComplete
	t.playing = true
	t.holdDisplay(t.owner.Base())
	if t.options&OptionIgnoreDisplayController != 0 {
		for _, item := range t.items {
			if item.target != nil && !t.isOwner(item.target) {
				t.holdDisplay(item.target.Base())
			}
		}
	}

	if !t.internalPlay(delay) {
		return nil
	}
	if t.totalTasks == 0 {
		t.finish()
	}
	return nil
}

// Stop cancels every pending tween, delayed action and shake. With
// setToComplete, unfinished items jump to their final value. Stopping an idle
// transition does nothing.
func (t *Transition) Stop(setToComplete, processCallback bool) {
	if !t.playing {
		return
	}
	t.playing = false
	t.totalTasks = 0
	t.totalTimes = 0
	fn := t.onComplete
	t.onComplete = nil
	t.releaseDisplay()

	for _, item := range t.items {
		if item.target == nil || item.completed {
			continue
		}
		item.killTween()

		switch item.Type {
		case ActionTransition:
			if c, ok := item.target.(*Component); ok {
				if nested := c.Transition(item.Value.S); nested != nil {
					nested.Stop(setToComplete, false)
				}
			}
		case ActionShake:
			t.stopShake(item)
		default:
			if !setToComplete {
				continue
			}
			switch {
			case item.Tween && (!item.Yoyo || item.Repeat%2 == 0):
				t.apply(item, item.EndValue)
			case item.Tween:
				t.apply(item, item.StartValue)
			case item.Type != ActionSound:
				t.apply(item, item.Value)
			}
		}
	}

	if processCallback && fn != nil {
		fn()
	}
}

// SetValue overrides the value of every item labelled label: the start or
// static value for label matches and the end value for label2 matches.
func (t *Transition) SetValue(label string, args ...any) error {
	if label == "" {
		return nil
	}
	for _, item := range t.items {
		var v *TransitionValue
		switch label {
		case item.Label:
			if item.Tween {
				v = &item.StartValue
			} else {
				v = &item.Value
			}
		case item.Label2:
			v = &item.EndValue
		default:
			continue
		}
		nv, err := valueFromArgs(item.Type, *v, args)
		if err != nil {
			return fmt.Errorf("ui: transition %q label %q: %w", t.name, label, err)
		}
		*v = nv
	}
	return nil
}

// SetHook installs fn as the start hook of items labelled label and the end
// hook of items whose label2 is label. A nil fn removes the hook.
func (t *Transition) SetHook(label string, fn func()) {
	if label == "" {
		return
	}
	for _, item := range t.items {
		switch label {
		case item.Label:
			item.hook = fn
		case item.Label2:
			item.hook2 = fn
		}
	}
}

func (t *Transition) ClearHooks() {
	for _, item := range t.items {
		item.hook = nil
		item.hook2 = nil
	}
}

// SetTarget retargets the items labelled label. It takes effect on the next
// Play.
func (t *Transition) SetTarget(label string, target Element) {
	if label == "" {
		return
	}
	id := target.Base().id
	if t.isOwner(target) {
		id = ""
	}
	for _, item := range t.items {
		if item.Label == label || item.Label2 == label {
			item.TargetID = id
		}
	}
}

// Copy stops this transition and replaces its items with clones of src's.
func (t *Transition) Copy(src *Transition) {
	t.Stop(true, false)
	t.items = make([]*TransitionItem, 0, len(src.items))
	for _, item := range src.items {
		t.items = append(t.items, item.Clone())
	}
	t.options = src.options
}

// UpdateFromRelations shifts XY items aimed at targetID by (dx, dy) on every
// defined axis, so a running animation follows a layout nudge.
func (t *Transition) UpdateFromRelations(targetID string, dx, dy float64) {
	if targetID == "" {
		return
	}
	shift := func(v *TransitionValue) {
		if v.Def1 {
			v.F1 += dx
		}
		if v.Def2 {
			v.F2 += dy
		}
	}
	for _, item := range t.items {
		if item.Type != ActionXY || item.TargetID != targetID {
			continue
		}
		if !item.Tween {
			shift(&item.Value)
			continue
		}
		shift(&item.StartValue)
		shift(&item.EndValue)
		d := cp.Vector{X: dx, Y: dy}
		item.tweenFrom = item.tweenFrom.Add(d)
		item.tweenTo = item.tweenTo.Add(d)
	}
}

func (t *Transition) stage() *Stage {
	if t.owner == nil {
		return nil
	}
	return t.owner.Stage()
}

func (t *Transition) isOwner(e Element) bool {
	return e != nil && t.owner != nil && e.Base() == &t.owner.Object
}

// resolveTargets binds each item to its target for the coming pass. In
// strict mode a capability mismatch aborts; otherwise the item is skipped.
func (t *Transition) resolveTargets(strict bool) error {
	for _, item := range t.items {
		item.target = nil
		var target Element
		if item.TargetID == "" {
			target = t.owner
		} else if e := t.owner.ChildByID(item.TargetID); e != nil {
			target = e
		}
		if target == nil {
			continue
		}
		if err := item.checkCapability(target); err != nil {
			if strict {
				for _, it := range t.items {
					it.target = nil
				}
				return err
			}
			log.Printf("ui: transition %q: skipping %s item: %v", t.name, item.Type, err)
			continue
		}
		item.target = target
	}
	return nil
}

// internalPlay schedules one pass. It stops early and returns false when a
// hook stops or restarts the transition while the pass is being scheduled.
func (t *Transition) internalPlay(delay float64) bool {
	t.ownerBaseX, t.ownerBaseY = t.owner.x, t.owner.y
	t.totalTasks = 0
	t.pass++
	pass := t.pass
	t.scheduling = true
	defer func() {
		if t.pass == pass {
			t.scheduling = false
		}
	}()

	for _, item := range t.items {
		if item.target == nil {
			continue
		}
		item.completed = false
		startTime := delay + item.Time
		if item.Tween {
			t.playTween(item, startTime)
		} else {
			t.playStatic(item, startTime)
		}
		if !t.playing || t.pass != pass {
			return false
		}
	}
	return true
}

func (t *Transition) playStatic(item *TransitionItem, startTime float64) {
	if startTime == 0 {
		item.completed = true
		t.apply(item, item.Value)
		item.callHook()
		return
	}
	t.totalTasks++
	item.tweener = t.stage().tweens.DelayedCall(startTime, func() {
		item.tweener = nil
		item.completed = true
		t.totalTasks--
		t.apply(item, item.Value)
		item.callHook()
		t.checkAllComplete()
	})
}

func (t *Transition) playTween(item *TransitionItem, startTime float64) {
	t.totalTasks++
	switch item.Type {
	case ActionXY, ActionSize:
		if startTime == 0 {
			t.startTween(item)
			return
		}
		item.tweener = t.stage().tweens.DelayedCall(startTime, func() {
			item.tweener = nil
			t.startTween(item)
		})

	default:
		item.tweenFrom, item.tweenTo = t.tweenEnds(item)
		setTweenValue(item, 0)
		tw := t.stage().tweens.To(item.Duration).
			SetEase(item.Ease).
			OnStart(item.callHook).
			OnUpdate(func(p float64) {
				setTweenValue(item, p)
				t.apply(item, item.Value)
			}).
			OnComplete(func() { t.tweenComplete(item) })
		setLoops(item, tw)
		item.tweener = tw
		if startTime > 0 {
			tw.SetDelay(startTime)
		} else {
			t.apply(item, item.Value)
		}
	}
}

// startTween starts an XY or Size tween. Undefined start axes take the
// target's value at this moment; undefined end axes keep the start.
func (t *Transition) startTween(item *TransitionItem) {
	base := item.target.Base()
	s, e := item.StartValue, item.EndValue

	var cur cp.Vector
	switch {
	case item.Type == ActionXY && t.isOwner(item.target):
		// owner positions are offsets from the base snapshot
	case item.Type == ActionXY:
		cur = cp.Vector{X: base.x, Y: base.y}
	default:
		cur = cp.Vector{X: base.width, Y: base.height}
	}
	from := cp.Vector{X: pick(s.Def1, s.F1, cur.X), Y: pick(s.Def2, s.F2, cur.Y)}
	to := cp.Vector{X: pick(e.Def1, e.F1, from.X), Y: pick(e.Def2, e.F2, from.Y)}
	item.tweenFrom, item.tweenTo = from, to
	setTweenValue(item, 0)

	tw := t.stage().tweens.To(item.Duration).
		SetEase(item.Ease).
		OnUpdate(func(p float64) {
			setTweenValue(item, p)
			t.apply(item, item.Value)
		}).
		OnComplete(func() { t.tweenComplete(item) })
	setLoops(item, tw)
	item.tweener = tw

	t.apply(item, item.Value)
	item.callHook()
}

// tweenEnds returns the interpolation range of a Scale, Pivot, Alpha or
// Rotation tween. Scalars use X only.
func (t *Transition) tweenEnds(item *TransitionItem) (from, to cp.Vector) {
	s, e := item.StartValue, item.EndValue
	switch item.Type {
	case ActionAlpha:
		return cp.Vector{X: s.F1}, cp.Vector{X: e.F1}
	case ActionRotation:
		return cp.Vector{X: float64(s.I)}, cp.Vector{X: float64(e.I)}
	case ActionPivot:
		base := item.target.Base()
		from = cp.Vector{X: pick(s.Def1, s.F1, base.pivotX), Y: pick(s.Def2, s.F2, base.pivotY)}
		to = cp.Vector{X: pick(e.Def1, e.F1, from.X), Y: pick(e.Def2, e.F2, from.Y)}
		return from, to
	default:
		return cp.Vector{X: s.F1, Y: s.F2}, cp.Vector{X: e.F1, Y: e.F2}
	}
}

func setTweenValue(item *TransitionItem, p float64) {
	v := &item.Value
	v.Def1, v.Def2 = true, true
	switch item.Type {
	case ActionAlpha:
		v.F1 = common.Lerp(item.tweenFrom.X, item.tweenTo.X, p)
	case ActionRotation:
		v.I = int(math.Round(common.Lerp(item.tweenFrom.X, item.tweenTo.X, p)))
	default:
		cur := item.tweenFrom.Lerp(item.tweenTo, p)
		v.F1, v.F2 = cur.X, cur.Y
	}
}

func setLoops(item *TransitionItem, tw *timing.Tween) {
	switch {
	case item.Repeat > 0:
		tw.SetLoops(item.Repeat+1, item.Yoyo)
	case item.Repeat < 0:
		tw.SetLoops(-1, item.Yoyo)
	}
}

func pick(defined bool, v, fallback float64) float64 {
	if defined {
		return v
	}
	return fallback
}

func (t *Transition) tweenComplete(item *TransitionItem) {
	item.tweener = nil
	item.completed = true
	t.totalTasks--
	item.callHook2()
	t.checkAllComplete()
}

func (t *Transition) nestedComplete(item *TransitionItem) {
	t.totalTasks--
	item.completed = true
	t.checkAllComplete()
}

// checkAllComplete starts the next pass or finishes once every task of the
// current pass is done.
func (t *Transition) checkAllComplete() {
	if !t.playing || t.scheduling || t.totalTasks != 0 {
		return
	}
	for {
		if t.totalTimes > 0 {
			t.totalTimes--
			if t.totalTimes == 0 {
				break
			}
		}
		_ = t.resolveTargets(false)
		if !t.internalPlay(0) || t.totalTasks > 0 {
			return
		}
		if t.totalTimes < 0 {
			// an endless pass with nothing to wait on would spin forever
			break
		}
	}
	t.finish()
}

func (t *Transition) finish() {
	t.playing = false
	t.releaseDisplay()
	if fn := t.onComplete; fn != nil {
		t.onComplete = nil
		fn()
	}
}

func (t *Transition) holdDisplay(o *Object) {
	o.internalVisible++
	t.displayLocks = append(t.displayLocks, func() { o.internalVisible-- })
}

func (t *Transition) releaseDisplay() {
	for _, release := range t.displayLocks {
		release()
	}
	t.displayLocks = nil
}
