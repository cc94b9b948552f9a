package ui

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strconv"

	"github.com/milk9111/uimotion/common"
	"github.com/milk9111/uimotion/descriptor"
)

// apply writes v to the item's target and logs failures; it runs from tween
// and timer callbacks that have no caller to report to.
func (t *Transition) apply(item *TransitionItem, v TransitionValue) {
	if err := t.applyValue(item, v); err != nil {
		log.Printf("ui: transition %q: %s on %q: %v", t.name, item.Type, item.target.Base().id, err)
	}
}

// applyValue performs the write with the target's gear lock held, so gears
// do not record transition-driven changes.
func (t *Transition) applyValue(item *TransitionItem, v TransitionValue) error {
	target := item.target
	base := target.Base()
	release := base.LockGear()
	defer release()

	switch item.Type {
	case ActionXY:
		x, y := base.x, base.y
		if t.isOwner(target) {
			if v.Def1 {
				x = v.F1 + t.ownerBaseX
			}
			if v.Def2 {
				y = v.F2 + t.ownerBaseY
			}
		} else {
			x = pick(v.Def1, v.F1, x)
			y = pick(v.Def2, v.F2, y)
		}
		base.SetXY(x, y)

	case ActionSize:
		base.SetSize(pick(v.Def1, v.F1, base.width), pick(v.Def2, v.F2, base.height))

	case ActionPivot:
		base.SetPivot(pick(v.Def1, v.F1, base.pivotX), pick(v.Def2, v.F2, base.pivotY), base.pivotAsAnchor)

	case ActionAlpha:
		base.SetAlpha(v.F1)

	case ActionRotation:
		base.SetRotation(float64(v.I))

	case ActionScale:
		base.SetScale(v.F1, v.F2)

	case ActionColor:
		cg, ok := target.(ColorGear)
		if !ok {
			return capabilityError(target, "color")
		}
		cg.SetColor(v.C)

	case ActionAnimation:
		ag, ok := target.(AnimationGear)
		if !ok {
			return capabilityError(target, "animation")
		}
		frame := ag.Frame()
		if v.Def1 {
			frame = v.I
		}
		ag.SetFrame(frame)
		ag.SetPlaying(v.B)

	case ActionVisible:
		base.SetVisible(v.B)

	case ActionController:
		c, ok := target.(*Component)
		if !ok {
			return capabilityError(target, "controllers")
		}
		return selectPages(c, v.S)

	case ActionTransition:
		c, ok := target.(*Component)
		if !ok {
			return capabilityError(target, "transitions")
		}
		return t.playNested(item, c, v)

	case ActionSound:
		if s := t.stage(); s != nil {
			s.playSound(v.S, v.F1)
		}

	case ActionShake:
		t.startShake(item, v)
	}
	return nil
}

// selectPages applies a "name=index,name=$page" controller value.
func selectPages(c *Component, s string) error {
	pages, err := parseControllerValue(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	for _, p := range pages {
		ctrl := c.Controller(p.controller)
		if ctrl == nil {
			continue
		}
		if p.byName {
			ctrl.SetSelectedPage(p.page)
			continue
		}
		if err := ctrl.SetSelectedIndex(p.index); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transition) playNested(item *TransitionItem, c *Component, v TransitionValue) error {
	nested := c.Transition(v.S)
	if nested == nil || nested == t {
		return nil
	}
	if v.I == 0 {
		nested.Stop(false, true)
		return nil
	}
	if nested.playing {
		nested.totalTimes = v.I
		return nil
	}
	item.completed = false
	t.totalTasks++
	err := nested.Play(v.I, 0, func() { t.nestedComplete(item) })
	if err != nil {
		item.completed = true
		t.totalTasks--
	}
	return err
}

func (t *Transition) startShake(item *TransitionItem, v TransitionValue) {
	s := t.stage()
	if s == nil {
		return
	}
	item.shakeAmp, item.shakePeriod = v.F1, v.F2
	item.shakeX, item.shakeY = 0, 0
	item.shakeLeft = v.F2
	item.completed = false
	t.totalTasks++
	s.timers.Add(item, 0.001, 0, func(dt float64) { t.shake(item, dt) })
}

// shake moves the target by a fresh jitter, undoing the previous one. The
// radius shrinks linearly with the remaining time.
func (t *Transition) shake(item *TransitionItem, dt float64) {
	s := t.stage()
	base := item.target.Base()

	r := 0.0
	if item.shakePeriod > 0 {
		r = math.Ceil(item.shakeAmp * item.shakeLeft / item.shakePeriod)
	}
	ux, uy := s.randomInUnitCircle()
	jx, jy := common.RoundOutward(ux*r), common.RoundOutward(uy*r)

	release := base.LockGear()
	base.SetXY(base.x-item.shakeX+jx, base.y-item.shakeY+jy)
	release()
	item.shakeX, item.shakeY = jx, jy

	item.shakeLeft -= dt
	if item.shakeLeft > 0 {
		return
	}

	t.restoreShake(item)
	item.completed = true
	t.totalTasks--
	s.timers.Remove(item)
	t.checkAllComplete()
}

func (t *Transition) stopShake(item *TransitionItem) {
	s := t.stage()
	if s == nil || !s.timers.Exists(item) {
		return
	}
	s.timers.Remove(item)
	t.restoreShake(item)
}

func (t *Transition) restoreShake(item *TransitionItem) {
	base := item.target.Base()
	release := base.LockGear()
	defer release()
	base.SetXY(base.x-item.shakeX, base.y-item.shakeY)
	item.shakeX, item.shakeY = 0, 0
}

// valueFromArgs returns v overridden by args, interpreted per action type.
func valueFromArgs(typ ActionType, v TransitionValue, args []any) (TransitionValue, error) {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrInvalidValue, typ, n, len(args))
		}
		return nil
	}
	if err := need(1); err != nil {
		return v, err
	}

	var err error
	switch typ {
	case ActionXY, ActionSize, ActionPivot, ActionScale:
		if err = need(2); err != nil {
			return v, err
		}
		if v.F1, err = toFloat(args[0]); err != nil {
			return v, err
		}
		if v.F2, err = toFloat(args[1]); err != nil {
			return v, err
		}
		v.Def1, v.Def2 = true, true

	case ActionAlpha:
		v.F1, err = toFloat(args[0])

	case ActionRotation:
		v.I, err = toInt(args[0])

	case ActionColor:
		v.C, err = toColor(args[0])

	case ActionAnimation:
		if v.I, err = toInt(args[0]); err != nil {
			return v, err
		}
		v.Def1 = true
		if len(args) > 1 {
			v.B, err = toBool(args[1])
		}

	case ActionVisible:
		v.B, err = toBool(args[0])

	case ActionController:
		s, ok := args[0].(string)
		if !ok {
			return v, fmt.Errorf("%w: controller value %v is not a string", ErrInvalidValue, args[0])
		}
		if err = validateControllerValue(s); err != nil {
			return v, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		v.S = s

	case ActionSound:
		s, ok := args[0].(string)
		if !ok {
			return v, fmt.Errorf("%w: sound url %v is not a string", ErrInvalidValue, args[0])
		}
		v.S = s
		if len(args) > 1 {
			v.F1, err = toFloat(args[1])
		}

	case ActionTransition:
		s, ok := args[0].(string)
		if !ok {
			return v, fmt.Errorf("%w: transition name %v is not a string", ErrInvalidValue, args[0])
		}
		v.S = s
		if len(args) > 1 {
			v.I, err = toInt(args[1])
		}

	case ActionShake:
		if v.F1, err = toFloat(args[0]); err != nil {
			return v, err
		}
		if len(args) > 1 {
			v.F2, err = toFloat(args[1])
		}
	}
	return v, err
}

func toFloat(a any) (float64, error) {
	switch n := a.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %T is not a number", ErrInvalidValue, a)
}

func toInt(a any) (int, error) {
	switch n := a.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case float32:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: %T is not an integer", ErrInvalidValue, a)
}

func toBool(a any) (bool, error) {
	switch b := a.(type) {
	case bool:
		return b, nil
	case string:
		v, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return v, nil
	}
	return false, fmt.Errorf("%w: %T is not a bool", ErrInvalidValue, a)
}

func toColor(a any) (color.NRGBA, error) {
	switch c := a.(type) {
	case string:
		return descriptor.ParseColor(c)
	case color.Color:
		return color.NRGBAModel.Convert(c).(color.NRGBA), nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %T is not a color", ErrInvalidValue, a)
}
