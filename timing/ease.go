package timing

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// ErrUnknownEase is returned by ParseEase for names outside the vocabulary.
var ErrUnknownEase = errors.New("timing: unknown ease")

// DefaultEase is used when a descriptor names no curve.
var DefaultEase ease.TweenFunc = ease.OutQuad

var easeByName = map[string]ease.TweenFunc{
	"Linear": ease.Linear,

	"Quad.In":    ease.InQuad,
	"Quad.Out":   ease.OutQuad,
	"Quad.InOut": ease.InOutQuad,

	"Cube.In":     ease.InCubic,
	"Cube.Out":    ease.OutCubic,
	"Cube.InOut":  ease.InOutCubic,
	"Cubic.In":    ease.InCubic,
	"Cubic.Out":   ease.OutCubic,
	"Cubic.InOut": ease.InOutCubic,

	"Quart.In":    ease.InQuart,
	"Quart.Out":   ease.OutQuart,
	"Quart.InOut": ease.InOutQuart,

	"Quint.In":    ease.InQuint,
	"Quint.Out":   ease.OutQuint,
	"Quint.InOut": ease.InOutQuint,

	"Sine.In":    ease.InSine,
	"Sine.Out":   ease.OutSine,
	"Sine.InOut": ease.InOutSine,

	"Expo.In":    ease.InExpo,
	"Expo.Out":   ease.OutExpo,
	"Expo.InOut": ease.InOutExpo,

	"Circ.In":    ease.InCirc,
	"Circ.Out":   ease.OutCirc,
	"Circ.InOut": ease.InOutCirc,

	"Elastic.In":    ease.InElastic,
	"Elastic.Out":   ease.OutElastic,
	"Elastic.InOut": ease.InOutElastic,

	"Back.In":    ease.InBack,
	"Back.Out":   ease.OutBack,
	"Back.InOut": ease.InOutBack,

	"Bounce.In":    ease.InBounce,
	"Bounce.Out":   ease.OutBounce,
	"Bounce.InOut": ease.InOutBounce,
}

// ParseEase maps a descriptor ease name ("Quad.Out", "Linear", ...) to its
// curve. An empty name yields DefaultEase.
func ParseEase(name string) (ease.TweenFunc, error) {
	if name == "" {
		return DefaultEase, nil
	}
	fn, ok := easeByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
	return fn, nil
}
