package ui

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/uimotion/descriptor"
	"github.com/milk9111/uimotion/timing"
	"github.com/tanema/gween/ease"
)

// FrameRate converts descriptor frame counts to seconds.
const FrameRate = 24

// TransitionItem is one timed action of a transition.
type TransitionItem struct {
	Time     float64
	TargetID string
	Type     ActionType
	Tween    bool
	Duration float64
	Ease     ease.TweenFunc
	Repeat   int
	Yoyo     bool
	Label    string
	Label2   string

	Value      TransitionValue
	StartValue TransitionValue
	EndValue   TransitionValue

	hook  func()
	hook2 func()

	target    Element
	tweener   *timing.Tween
	completed bool

	// running interpolation range, shifted by UpdateFromRelations
	tweenFrom, tweenTo cp.Vector

	// shake parameters, net displacement and remaining time
	shakeAmp, shakePeriod float64
	shakeX, shakeY        float64
	shakeLeft             float64
}

func newTransitionItem() *TransitionItem {
	return &TransitionItem{
		Ease:       timing.DefaultEase,
		Value:      NewTransitionValue(),
		StartValue: NewTransitionValue(),
		EndValue:   NewTransitionValue(),
	}
}

// newTransitionItemFromSpec decodes one descriptor item. A tween without an
// end value, or of a type that cannot be interpolated, becomes a static item
// holding its start value.
func newTransitionItemFromSpec(spec descriptor.TransitionItemSpec) (*TransitionItem, error) {
	item := newTransitionItem()
	typ, err := ParseActionType(spec.Type)
	if err != nil {
		return nil, err
	}
	item.Type = typ
	item.Time = float64(spec.Time) / FrameRate
	item.TargetID = spec.Target
	item.Tween = spec.Tween
	item.Label = spec.Label

	if !item.Tween {
		if item.Value, err = decodeValue(typ, spec.Value); err != nil {
			return nil, err
		}
		return item, nil
	}

	item.Duration = float64(spec.Duration) / FrameRate
	if spec.Ease != "" {
		if item.Ease, err = timing.ParseEase(spec.Ease); err != nil {
			return nil, fmt.Errorf("%w: %w", descriptor.ErrInvalidDescriptor, err)
		}
	}
	item.Repeat = spec.Repeat
	item.Yoyo = spec.Yoyo
	item.Label2 = spec.Label2

	start := ""
	if spec.StartValue != nil {
		start = *spec.StartValue
	}
	if spec.EndValue == nil || !typ.tweenable() {
		item.Tween = false
		if item.Value, err = decodeValue(typ, start); err != nil {
			return nil, err
		}
		return item, nil
	}
	if item.StartValue, err = decodeValue(typ, start); err != nil {
		return nil, err
	}
	if item.EndValue, err = decodeValue(typ, *spec.EndValue); err != nil {
		return nil, err
	}
	return item, nil
}

// Target returns the element resolved by the last Play, or nil.
func (item *TransitionItem) Target() Element { return item.target }

func (item *TransitionItem) Completed() bool { return item.completed }

// Clone copies the authored data without hooks or running state.
func (item *TransitionItem) Clone() *TransitionItem {
	c := newTransitionItem()
	c.Time = item.Time
	c.TargetID = item.TargetID
	c.Type = item.Type
	c.Tween = item.Tween
	c.Duration = item.Duration
	c.Ease = item.Ease
	c.Repeat = item.Repeat
	c.Yoyo = item.Yoyo
	c.Label = item.Label
	c.Label2 = item.Label2
	c.Value = item.Value
	c.StartValue = item.StartValue
	c.EndValue = item.EndValue
	return c
}

func (item *TransitionItem) callHook() {
	if item.hook != nil {
		item.hook()
	}
}

func (item *TransitionItem) callHook2() {
	if item.hook2 != nil {
		item.hook2()
	}
}

func (item *TransitionItem) killTween() {
	if item.tweener != nil {
		item.tweener.Kill()
		item.tweener = nil
	}
}

// checkCapability reports whether target can receive this item's action.
func (item *TransitionItem) checkCapability(target Element) error {
	switch item.Type {
	case ActionColor:
		if _, ok := target.(ColorGear); !ok {
			return capabilityError(target, "color")
		}
	case ActionAnimation:
		if _, ok := target.(AnimationGear); !ok {
			return capabilityError(target, "animation")
		}
	case ActionController:
		if _, ok := target.(*Component); !ok {
			return capabilityError(target, "controllers")
		}
	case ActionTransition:
		if _, ok := target.(*Component); !ok {
			return capabilityError(target, "transitions")
		}
	}
	return nil
}
