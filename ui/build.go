package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/uimotion/descriptor"
)

// SpecLoader returns the component descriptor called name.
// descriptor.LoadComponentSpec is the usual implementation.
type SpecLoader func(name string) (*descriptor.ComponentSpec, error)

const maxNesting = 16

// NewComponentFromSpec builds a component tree from its descriptor and then
// starts its auto-play transitions. Nested components are loaded with load.
func NewComponentFromSpec(stage *Stage, spec *descriptor.ComponentSpec, load SpecLoader) (*Component, error) {
	return buildComponent(stage, spec.Name, spec, load, 0)
}

func buildComponent(stage *Stage, id string, spec *descriptor.ComponentSpec, load SpecLoader, depth int) (*Component, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("%w: component %q nested deeper than %d", descriptor.ErrInvalidDescriptor, spec.Name, maxNesting)
	}

	c := NewComponent(stage, id)
	if spec.Name != "" {
		c.name = spec.Name
	}
	c.underConstruct = true
	c.SetSize(spec.Width, spec.Height)
	c.setSourceSize(spec.Width, spec.Height)

	for _, cs := range spec.Controllers {
		pages := make([]Page, 0, len(cs.Pages))
		for _, p := range cs.Pages {
			pages = append(pages, Page{ID: p.ID, Name: p.Name})
		}
		ctrl := NewController(cs.Name, pages...)
		if cs.Selected > 0 && cs.Selected < len(pages) {
			ctrl.selected = cs.Selected
		}
		c.AddController(ctrl)
	}

	children := make([]Element, 0, len(spec.Children))
	for _, cs := range spec.Children {
		e, err := buildChild(stage, cs, load, depth)
		if err != nil {
			return nil, fmt.Errorf("ui: component %q: %w", spec.Name, err)
		}
		c.AddChild(e)
		children = append(children, e)
	}

	for i, cs := range spec.Children {
		if err := children[i].Base().relations.Setup(cs.Relations); err != nil {
			return nil, fmt.Errorf("ui: component %q: %w", spec.Name, err)
		}
	}
	for i, cs := range spec.Children {
		for _, gs := range cs.Gears {
			if err := setupGear(c, children[i], gs); err != nil {
				return nil, fmt.Errorf("ui: component %q child %q: %w", spec.Name, cs.ID, err)
			}
		}
	}

	if err := c.relations.Setup(spec.Relations); err != nil {
		return nil, fmt.Errorf("ui: component %q: %w", spec.Name, err)
	}

	for _, ts := range spec.Transitions {
		t := NewTransition(c, ts.Name)
		if err := t.Setup(ts); err != nil {
			return nil, fmt.Errorf("ui: component %q: %w", spec.Name, err)
		}
	}

	c.underConstruct = false

	for _, t := range c.transitions {
		if !t.AutoPlay {
			continue
		}
		if err := t.Play(t.AutoPlayTimes, t.AutoPlayDelay, nil); err != nil {
			return nil, fmt.Errorf("ui: component %q: auto play: %w", spec.Name, err)
		}
	}
	return c, nil
}

func buildChild(stage *Stage, cs descriptor.ChildSpec, load SpecLoader, depth int) (Element, error) {
	var e Element
	switch cs.Type {
	case "", "object":
		e = NewObject(cs.ID)
	case "image":
		img := NewImage(cs.ID)
		if cs.Color != nil {
			img.SetColor(cs.Color.Color)
		}
		e = img
	case "movieclip":
		mc := NewMovieClip(cs.ID, cs.FrameCount, cs.FrameInterval)
		if cs.Color != nil {
			mc.SetColor(cs.Color.Color)
		}
		mc.SetFrame(cs.Frame)
		mc.SetPlaying(cs.Playing)
		e = mc
	case "text":
		var m TextMeasurer
		if stage != nil {
			m = stage.measurer
		}
		tf := NewTextField(cs.ID, m)
		if cs.Color != nil {
			tf.SetColor(cs.Color.Color)
		}
		tf.text = cs.Text
		e = tf
	case "component":
		if load == nil || cs.Src == "" {
			return nil, fmt.Errorf("%w: child %q: component without src", descriptor.ErrInvalidDescriptor, cs.ID)
		}
		sub, err := load(cs.Src)
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", cs.ID, err)
		}
		child, err := buildComponent(stage, cs.ID, sub, load, depth+1)
		if err != nil {
			return nil, err
		}
		e = child
	default:
		return nil, fmt.Errorf("%w: child %q: unknown type %q", descriptor.ErrInvalidDescriptor, cs.ID, cs.Type)
	}

	o := e.Base()
	if cs.Name != "" {
		o.name = cs.Name
	}
	if cs.Width != 0 || cs.Height != 0 {
		o.SetSize(cs.Width, cs.Height)
	}
	o.setSourceSize(o.width, o.height)
	o.SetPivot(cs.PivotX, cs.PivotY, cs.PivotAsAnchor)
	o.SetXY(cs.X, cs.Y)
	if cs.ScaleX != nil || cs.ScaleY != nil {
		sx, sy := o.scaleX, o.scaleY
		if cs.ScaleX != nil {
			sx = *cs.ScaleX
		}
		if cs.ScaleY != nil {
			sy = *cs.ScaleY
		}
		o.SetScale(sx, sy)
	}
	if cs.Alpha != nil {
		o.SetAlpha(*cs.Alpha)
	}
	o.SetRotation(cs.Rotation)
	if cs.Visible != nil {
		o.SetVisible(*cs.Visible)
	}
	if tf, ok := e.(*TextField); ok && cs.AutoSize {
		tf.SetAutoSize(true)
	}
	return e, nil
}

// setupGear binds one gear of e to a controller of c. Values are "x,y" for
// xy and size gears and hex colors for color gears.
func setupGear(c *Component, e Element, gs descriptor.GearSpec) error {
	ctrl := c.Controller(gs.Controller)
	if ctrl == nil {
		return fmt.Errorf("%w: gear %s: unknown controller %q", descriptor.ErrInvalidDescriptor, gs.Type, gs.Controller)
	}
	switch gs.Type {
	case "xy", "size":
		pages := make(map[string][2]float64, len(gs.Pages))
		for _, p := range gs.Pages {
			v, err := parseGearPair(p.Value)
			if err != nil {
				return err
			}
			pages[p.Page] = v
		}
		var def [2]float64
		if gs.Default != "" {
			v, err := parseGearPair(gs.Default)
			if err != nil {
				return err
			}
			def = v
		}
		if gs.Type == "xy" {
			g := NewGearXY(e, ctrl)
			if gs.Default != "" {
				g.SetDefault(def[0], def[1])
			}
			for id, v := range pages {
				g.storage[id] = v
			}
			g.apply()
			return nil
		}
		g := NewGearSize(e, ctrl)
		if gs.Default != "" {
			g.SetDefault(def[0], def[1])
		}
		for id, v := range pages {
			g.storage[id] = v
		}
		g.apply()

	case "color":
		g, err := NewGearColor(e, ctrl)
		if err != nil {
			return err
		}
		for _, p := range gs.Pages {
			col, err := descriptor.ParseColor(p.Value)
			if err != nil {
				return err
			}
			g.storage[p.Page] = col
		}
		if gs.Default != "" {
			col, err := descriptor.ParseColor(gs.Default)
			if err != nil {
				return err
			}
			g.SetDefault(col)
		}
		g.apply()

	default:
		return fmt.Errorf("%w: unknown gear type %q", descriptor.ErrInvalidDescriptor, gs.Type)
	}
	return nil
}

func parseGearPair(s string) ([2]float64, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return [2]float64{}, fmt.Errorf("%w: gear value %q: want x,y", descriptor.ErrInvalidDescriptor, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("%w: gear value %q: %v", descriptor.ErrInvalidDescriptor, s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("%w: gear value %q: %v", descriptor.ErrInvalidDescriptor, s, err)
	}
	return [2]float64{x, y}, nil
}
