package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/uimotion/descriptor"
)

// ActionType is what a transition item writes to its target.
type ActionType int

const (
	ActionXY ActionType = iota
	ActionSize
	ActionScale
	ActionPivot
	ActionAlpha
	ActionRotation
	ActionColor
	ActionAnimation
	ActionVisible
	ActionController
	ActionSound
	ActionTransition
	ActionShake
)

var actionNames = [...]string{
	ActionXY:         "XY",
	ActionSize:       "Size",
	ActionScale:      "Scale",
	ActionPivot:      "Pivot",
	ActionAlpha:      "Alpha",
	ActionRotation:   "Rotation",
	ActionColor:      "Color",
	ActionAnimation:  "Animation",
	ActionVisible:    "Visible",
	ActionController: "Controller",
	ActionSound:      "Sound",
	ActionTransition: "Transition",
	ActionShake:      "Shake",
}

func (t ActionType) String() string {
	if t >= 0 && int(t) < len(actionNames) {
		return actionNames[t]
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

func ParseActionType(s string) (ActionType, error) {
	for i, name := range actionNames {
		if name == s {
			return ActionType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: action type %q", descriptor.ErrInvalidDescriptor, s)
}

// tweenable reports whether the action can be interpolated.
func (t ActionType) tweenable() bool {
	switch t {
	case ActionXY, ActionSize, ActionScale, ActionPivot, ActionAlpha, ActionRotation:
		return true
	}
	return false
}

// TransitionValue is the value of one action. Which fields are used depends
// on the action type:
//
//	XY, Size, Scale, Pivot: F1, F2 (Def1/Def2 false keeps the current axis)
//	Alpha: F1
//	Rotation: I (degrees)
//	Color: C
//	Animation: I frame (Def1 false keeps the current frame), B playing
//	Visible: B
//	Controller: S ("name=page,name=$pageName")
//	Sound: S url, F1 volume
//	Transition: S name, I times
//	Shake: F1 amplitude, F2 period in seconds
type TransitionValue struct {
	F1, F2, F3 float64
	I          int
	C          color.NRGBA
	B          bool
	S          string
	Def1, Def2 bool
}

func NewTransitionValue() TransitionValue {
	return TransitionValue{Def1: true, Def2: true}
}

func decodeValue(t ActionType, s string) (TransitionValue, error) {
	v := NewTransitionValue()
	fail := func(err error) (TransitionValue, error) {
		return TransitionValue{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, t, s, err)
	}
	switch t {
	case ActionXY, ActionSize, ActionPivot:
		a, b, err := splitPair(s)
		if err != nil {
			return fail(err)
		}
		if a == "-" {
			v.Def1 = false
		} else if v.F1, err = strconv.ParseFloat(a, 64); err != nil {
			return fail(err)
		}
		if b == "-" {
			v.Def2 = false
		} else if v.F2, err = strconv.ParseFloat(b, 64); err != nil {
			return fail(err)
		}

	case ActionScale, ActionShake:
		a, b, err := splitPair(s)
		if err != nil {
			return fail(err)
		}
		if v.F1, err = strconv.ParseFloat(a, 64); err != nil {
			return fail(err)
		}
		if v.F2, err = strconv.ParseFloat(b, 64); err != nil {
			return fail(err)
		}

	case ActionAlpha:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fail(err)
		}
		v.F1 = f

	case ActionRotation:
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fail(err)
		}
		v.I = i

	case ActionColor:
		c, err := descriptor.ParseColor(s)
		if err != nil {
			return fail(err)
		}
		v.C = c

	case ActionAnimation:
		a, b, err := splitPair(s)
		if err != nil {
			return fail(err)
		}
		if a == "-" {
			v.Def1 = false
		} else if v.I, err = strconv.Atoi(a); err != nil {
			return fail(err)
		}
		v.B = b == "p"

	case ActionVisible:
		v.B = s == "true"

	case ActionController:
		if err := validateControllerValue(s); err != nil {
			return fail(err)
		}
		v.S = s

	case ActionSound:
		url, rest, hasVolume := strings.Cut(s, ",")
		v.S = url
		v.F1 = 1
		if hasVolume {
			pct, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return fail(err)
			}
			if pct != 0 && pct != 100 {
				v.F1 = float64(pct) / 100
			}
		}

	case ActionTransition:
		name, rest, hasTimes := strings.Cut(s, ",")
		v.S = name
		v.I = 1
		if hasTimes {
			i, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return fail(err)
			}
			v.I = i
		}

	default:
		return fail(fmt.Errorf("unknown action"))
	}
	return v, nil
}

func splitPair(s string) (string, string, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return "", "", fmt.Errorf("want two comma separated fields")
	}
	return strings.TrimSpace(a), strings.TrimSpace(b), nil
}

// controllerPage is one "name=page" token of a Controller value.
type controllerPage struct {
	controller string
	page       string
	index      int
	byName     bool
}

func parseControllerValue(s string) ([]controllerPage, error) {
	var pages []controllerPage
	for _, tok := range strings.Split(s, ",") {
		if tok == "" {
			continue
		}
		name, spec, ok := strings.Cut(tok, "=")
		if !ok || spec == "" {
			return nil, fmt.Errorf("controller token %q: want name=page", tok)
		}
		p := controllerPage{controller: name}
		if strings.HasPrefix(spec, "$") {
			p.byName = true
			p.page = spec[1:]
		} else {
			i, err := strconv.Atoi(spec)
			if err != nil {
				return nil, fmt.Errorf("controller token %q: %v", tok, err)
			}
			p.index = i
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func validateControllerValue(s string) error {
	_, err := parseControllerValue(s)
	return err
}
