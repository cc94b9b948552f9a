package descriptor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseColor decodes "#RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidDescriptor, s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	a := uint8(255)
	off := 0
	if len(hex) == 8 {
		v, err := parse(0)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidDescriptor, s, err)
		}
		a = v
		off = 2
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := parse(off + i*2)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidDescriptor, s, err)
		}
		rgb[i] = v
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: a}, nil
}

// FormatColor is the inverse of ParseColor; opaque colors drop the alpha byte.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.A, n.R, n.G, n.B)
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}
