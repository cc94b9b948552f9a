package ui

import (
	"image/color"
)

type gearIndex int

const (
	gearXY gearIndex = iota
	gearSize
	gearColor
	gearCount
)

// gear binds one property of an object to a controller's selected page.
type gear interface {
	controller() *Controller
	apply()
	updateState()
	updateFromRelations(dx, dy float64)
}

func (o *Object) setGear(i gearIndex, g gear) {
	o.gears[i] = g
	if g != nil {
		g.apply()
	}
}

// updateGear records the current value for the selected page, unless the
// change was driven by a transition, a gear or the builder.
func (o *Object) updateGear(i gearIndex) {
	if o.underConstruct || o.gearLocked > 0 {
		return
	}
	if g := o.gears[i]; g != nil && g.controller() != nil {
		g.updateState()
	}
}

// updateGearFromRelations shifts every stored page value of the position
// (gearXY) or size (gearSize) gear after relations moved the object.
func (o *Object) updateGearFromRelations(i gearIndex, dx, dy float64) {
	if g := o.gears[i]; g != nil && g.controller() != nil {
		g.updateFromRelations(dx, dy)
	}
}

func (o *Object) applyGears(c *Controller) {
	for _, g := range o.gears {
		if g != nil && g.controller() == c {
			g.apply()
		}
	}
}

type gearBase struct {
	owner *Object
	ctrl  *Controller
}

func (g *gearBase) controller() *Controller { return g.ctrl }

// pageKey is the storage key for the selected page, or "" when there is none.
func (g *gearBase) pageKey() string {
	if g.ctrl == nil {
		return ""
	}
	return g.ctrl.SelectedPageID()
}

// GearXY stores a position per controller page.
type GearXY struct {
	gearBase
	def     [2]float64
	storage map[string][2]float64
}

// NewGearXY binds owner's position to ctrl. The current position becomes the
// default for pages without a stored value.
func NewGearXY(owner Element, ctrl *Controller) *GearXY {
	o := owner.Base()
	g := &GearXY{
		gearBase: gearBase{owner: o, ctrl: ctrl},
		def:      [2]float64{o.x, o.y},
		storage:  map[string][2]float64{},
	}
	o.setGear(gearXY, g)
	return g
}

func (g *GearXY) SetPage(pageID string, x, y float64) {
	g.storage[pageID] = [2]float64{x, y}
	if pageID == g.pageKey() {
		g.apply()
	}
}

func (g *GearXY) SetDefault(x, y float64) { g.def = [2]float64{x, y} }

func (g *GearXY) Page(pageID string) (x, y float64, ok bool) {
	v, ok := g.storage[pageID]
	return v[0], v[1], ok
}

func (g *GearXY) apply() {
	v, ok := g.storage[g.pageKey()]
	if !ok {
		v = g.def
	}
	release := g.owner.LockGear()
	defer release()
	g.owner.SetXY(v[0], v[1])
}

func (g *GearXY) updateState() {
	g.storage[g.pageKey()] = [2]float64{g.owner.x, g.owner.y}
}

func (g *GearXY) updateFromRelations(dx, dy float64) {
	for k, v := range g.storage {
		g.storage[k] = [2]float64{v[0] + dx, v[1] + dy}
	}
	g.def[0] += dx
	g.def[1] += dy
	g.owner.updateGear(gearXY)
}

// GearSize stores a size per controller page.
type GearSize struct {
	gearBase
	def     [2]float64
	storage map[string][2]float64
}

func NewGearSize(owner Element, ctrl *Controller) *GearSize {
	o := owner.Base()
	g := &GearSize{
		gearBase: gearBase{owner: o, ctrl: ctrl},
		def:      [2]float64{o.width, o.height},
		storage:  map[string][2]float64{},
	}
	o.setGear(gearSize, g)
	return g
}

func (g *GearSize) SetPage(pageID string, w, h float64) {
	g.storage[pageID] = [2]float64{w, h}
	if pageID == g.pageKey() {
		g.apply()
	}
}

func (g *GearSize) SetDefault(w, h float64) { g.def = [2]float64{w, h} }

func (g *GearSize) Page(pageID string) (w, h float64, ok bool) {
	v, ok := g.storage[pageID]
	return v[0], v[1], ok
}

func (g *GearSize) apply() {
	v, ok := g.storage[g.pageKey()]
	if !ok {
		v = g.def
	}
	release := g.owner.LockGear()
	defer release()
	g.owner.SetSize(v[0], v[1])
}

func (g *GearSize) updateState() {
	g.storage[g.pageKey()] = [2]float64{g.owner.width, g.owner.height}
}

func (g *GearSize) updateFromRelations(dw, dh float64) {
	for k, v := range g.storage {
		g.storage[k] = [2]float64{v[0] + dw, v[1] + dh}
	}
	g.def[0] += dw
	g.def[1] += dh
	g.owner.updateGear(gearSize)
}

// GearColor stores a tint per controller page. The owner must implement
// ColorGear.
type GearColor struct {
	gearBase
	def     color.Color
	storage map[string]color.Color
}

func NewGearColor(owner Element, ctrl *Controller) (*GearColor, error) {
	cg, ok := owner.(ColorGear)
	if !ok {
		return nil, capabilityError(owner, "color")
	}
	o := owner.Base()
	g := &GearColor{
		gearBase: gearBase{owner: o, ctrl: ctrl},
		def:      cg.Color(),
		storage:  map[string]color.Color{},
	}
	o.setGear(gearColor, g)
	return g, nil
}

func (g *GearColor) SetPage(pageID string, c color.Color) {
	g.storage[pageID] = c
	if pageID == g.pageKey() {
		g.apply()
	}
}

func (g *GearColor) SetDefault(c color.Color) { g.def = c }

func (g *GearColor) Page(pageID string) (color.Color, bool) {
	c, ok := g.storage[pageID]
	return c, ok
}

func (g *GearColor) apply() {
	c, ok := g.storage[g.pageKey()]
	if !ok {
		c = g.def
	}
	release := g.owner.LockGear()
	defer release()
	g.owner.self.(ColorGear).SetColor(c)
}

func (g *GearColor) updateState() {
	g.storage[g.pageKey()] = g.owner.self.(ColorGear).Color()
}

func (g *GearColor) updateFromRelations(dx, dy float64) {}
