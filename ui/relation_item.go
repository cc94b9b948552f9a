package ui

type relationKind int

const (
	kindEdge relationKind = iota
	kindSize
	kindLeadExt
	kindTrailExt
)

// relationShape describes a RelationType on its axis: which owner edge
// (0 leading, 0.5 center, 1 trailing) follows which target edge.
type relationShape struct {
	kind     relationKind
	vertical axis
	own, tgt float64
}

var relationShapes = [...]relationShape{
	RelationLeftLeft:     {kindEdge, false, 0, 0},
	RelationLeftCenter:   {kindEdge, false, 0, 0.5},
	RelationLeftRight:    {kindEdge, false, 0, 1},
	RelationCenterCenter: {kindEdge, false, 0.5, 0.5},
	RelationRightLeft:    {kindEdge, false, 1, 0},
	RelationRightCenter:  {kindEdge, false, 1, 0.5},
	RelationRightRight:   {kindEdge, false, 1, 1},

	RelationTopTop:       {kindEdge, true, 0, 0},
	RelationTopMiddle:    {kindEdge, true, 0, 0.5},
	RelationTopBottom:    {kindEdge, true, 0, 1},
	RelationMiddleMiddle: {kindEdge, true, 0.5, 0.5},
	RelationBottomTop:    {kindEdge, true, 1, 0},
	RelationBottomMiddle: {kindEdge, true, 1, 0.5},
	RelationBottomBottom: {kindEdge, true, 1, 1},

	RelationWidth:  {kindSize, false, 0, 0},
	RelationHeight: {kindSize, true, 0, 0},

	RelationLeftExtLeft:     {kindLeadExt, false, 0, 0},
	RelationLeftExtRight:    {kindLeadExt, false, 0, 1},
	RelationRightExtLeft:    {kindTrailExt, false, 1, 0},
	RelationRightExtRight:   {kindTrailExt, false, 1, 1},
	RelationTopExtTop:       {kindLeadExt, true, 0, 0},
	RelationTopExtBottom:    {kindLeadExt, true, 0, 1},
	RelationBottomExtTop:    {kindTrailExt, true, 1, 0},
	RelationBottomExtBottom: {kindTrailExt, true, 1, 1},
}

// axis selects x/width (false) or y/height (true).
type axis bool

func (a axis) pos(o *Object) float64 {
	if a {
		return o.y
	}
	return o.x
}

func (a axis) setPos(o *Object, v float64) {
	if a {
		o.SetY(v)
		return
	}
	o.SetX(v)
}

func (a axis) min(o *Object) float64 {
	if a {
		return o.YMin()
	}
	return o.XMin()
}

func (a axis) setMin(o *Object, v float64) {
	if a {
		o.SetYMin(v)
		return
	}
	o.SetXMin(v)
}

func (a axis) size(o *Object) float64 {
	if a {
		return o.height
	}
	return o.width
}

func (a axis) setSize(o *Object, v float64, ignorePivot bool) {
	if a {
		o.setSize(o.width, v, ignorePivot)
		return
	}
	o.setSize(v, o.height, ignorePivot)
}

func (a axis) source(o *Object) float64 {
	if a {
		return o.sourceHeight
	}
	return o.sourceWidth
}

func (a axis) initial(o *Object) float64 {
	if a {
		return o.initHeight
	}
	return o.initWidth
}

func (a axis) pivot(o *Object) float64 {
	if a {
		return o.pivotY
	}
	return o.pivotX
}

// RelationItem is the set of relations from one owner to one target.
type RelationItem struct {
	owner  *Object
	target *Object
	defs   []RelationDef

	// target geometry at the last propagation
	tx, ty, tw, th float64

	detach []func()
}

func newRelationItem(owner *Object) *RelationItem {
	return &RelationItem{owner: owner}
}

func (ri *RelationItem) Target() Element {
	if ri.target == nil {
		return nil
	}
	return ri.target.self
}

func (ri *RelationItem) Defs() []RelationDef {
	return append([]RelationDef(nil), ri.defs...)
}

func (ri *RelationItem) isEmpty() bool { return len(ri.defs) == 0 }

func (ri *RelationItem) setTarget(t *Object) {
	if ri.target == t {
		return
	}
	if ri.target != nil {
		ri.releaseTarget()
	}
	ri.target = t
	if t != nil {
		ri.watchTarget()
	}
}

func (ri *RelationItem) add(rt RelationType, percent bool) {
	if rt == RelationSize {
		ri.add(RelationWidth, percent)
		ri.add(RelationHeight, percent)
		return
	}
	for _, def := range ri.defs {
		if def.Type == rt {
			return
		}
	}
	ri.defs = append(ri.defs, RelationDef{Type: rt, Percent: percent})
}

func (ri *RelationItem) remove(rt RelationType) {
	if rt == RelationSize {
		ri.remove(RelationWidth)
		ri.remove(RelationHeight)
		return
	}
	for i, def := range ri.defs {
		if def.Type == rt {
			ri.defs = append(ri.defs[:i:i], ri.defs[i+1:]...)
			return
		}
	}
}

func (ri *RelationItem) copyFrom(src *RelationItem) {
	ri.setTarget(src.target)
	ri.defs = append([]RelationDef(nil), src.defs...)
}

// Dispose detaches the item from its target. Calling it twice is a no-op.
func (ri *RelationItem) Dispose() {
	if ri.target == nil {
		return
	}
	ri.releaseTarget()
	ri.target = nil
}

func (ri *RelationItem) watchTarget() {
	t := ri.target
	if !ri.targetIsOwnerParent() {
		ri.detach = append(ri.detach, t.OnXYChanged(ri.targetMoved))
	}
	ri.detach = append(ri.detach,
		t.OnSizeChanged(ri.targetResized),
		t.OnSizeWillChange(ri.targetSizeWillChange),
	)
	ri.tx, ri.ty = t.x, t.y
	ri.tw, ri.th = t.width, t.height
}

func (ri *RelationItem) releaseTarget() {
	for _, fn := range ri.detach {
		fn()
	}
	ri.detach = nil
}

func (ri *RelationItem) targetIsOwnerParent() bool {
	p := ri.owner.parent
	return p != nil && &p.Object == ri.target
}

func (ri *RelationItem) ownerIsTargetParent() bool {
	p := ri.target.parent
	return p != nil && &p.Object == ri.owner
}

func (ri *RelationItem) targetPos(a axis) float64 {
	if a {
		return ri.ty
	}
	return ri.tx
}

func (ri *RelationItem) targetSize(a axis) float64 {
	if a {
		return ri.th
	}
	return ri.tw
}

// applyOnSelfSizeChanged keeps centered and trailing edges anchored after the
// owner itself was resized by (dw, dh).
func (ri *RelationItem) applyOnSelfSizeChanged(dw, dh float64, applyPivot bool) {
	o := ri.owner
	ox, oy := o.x, o.y
	x, y := ox, oy
	for _, def := range ri.defs {
		sh := relationShapes[def.Type]
		if sh.kind != kindEdge || sh.own == 0 {
			continue
		}
		pivot := 0.0
		if applyPivot {
			pivot = sh.vertical.pivot(o)
		}
		if sh.vertical {
			y -= (sh.own - pivot) * dh
		} else {
			x -= (sh.own - pivot) * dw
		}
	}
	if x == ox && y == oy {
		return
	}
	o.SetXY(x, y)
	ri.ownerMoved(o.x-ox, o.y-oy)
}

func (ri *RelationItem) applyOnXYChanged(def RelationDef, dx, dy float64) {
	o := ri.owner
	sh := relationShapes[def.Type]
	a := sh.vertical
	d := dx
	if a {
		d = dy
	}
	switch sh.kind {
	case kindEdge:
		a.setPos(o, a.pos(o)+d)
	case kindLeadExt:
		if ri.ownerIsTargetParent() {
			a.setSize(o, a.size(o)-d, false)
			return
		}
		tmp := a.min(o)
		a.setSize(o, a.size(o)-d, false)
		a.setMin(o, tmp+d)
	case kindTrailExt:
		if ri.ownerIsTargetParent() {
			a.setSize(o, a.size(o)+d, false)
			return
		}
		tmp := a.min(o)
		a.setSize(o, a.size(o)+d, false)
		a.setMin(o, tmp)
	}
}

func (ri *RelationItem) applyOnSizeChanged(def RelationDef) {
	o, t := ri.owner, ri.target
	sh := relationShapes[def.Type]
	a := sh.vertical

	var pos, pivot, delta float64
	if !ri.targetIsOwnerParent() {
		pos = a.pos(t)
		if t.pivotAsAnchor {
			pivot = a.pivot(t)
		}
	}
	if def.Percent {
		if old := ri.targetSize(a); old != 0 {
			delta = a.size(t) / old
		}
	} else {
		delta = a.size(t) - ri.targetSize(a)
	}

	switch sh.kind {
	case kindEdge:
		if def.Percent {
			edge := a.size(o) * sh.own
			a.setMin(o, pos+(a.min(o)+edge-pos)*delta-edge)
		} else if v := delta * (sh.tgt - pivot); v != 0 {
			a.setPos(o, a.pos(o)+v)
		}

	case kindSize:
		var v float64
		if o.underConstruct && ri.ownerIsTargetParent() {
			v = a.source(o) - a.initial(t)
		} else {
			v = a.size(o) - ri.targetSize(a)
		}
		if def.Percent {
			v *= delta
		}
		if !ri.targetIsOwnerParent() {
			a.setSize(o, a.size(t)+v, false)
			return
		}
		if o.pivotAsAnchor {
			tmp := a.min(o)
			a.setSize(o, a.size(t)+v, true)
			a.setMin(o, tmp)
			return
		}
		a.setSize(o, a.size(t)+v, true)

	case kindLeadExt:
		tmp := a.min(o)
		var v float64
		if def.Percent {
			v = pos + (tmp-pos)*delta - tmp
		} else {
			v = delta * (sh.tgt - pivot)
		}
		a.setSize(o, a.size(o)-v, false)
		a.setMin(o, tmp+v)

	case kindTrailExt:
		tmp := a.min(o)
		if sh.tgt == 1 && ri.ownerIsTargetParent() {
			switch {
			case def.Percent && o.underConstruct:
				a.setSize(o, pos+a.size(t)-a.size(t)*pivot+
					(a.source(o)-pos-a.initial(t)+a.initial(t)*pivot)*delta, false)
			case def.Percent:
				a.setSize(o, pos+(a.size(o)-pos)*delta, false)
			case o.underConstruct:
				a.setSize(o, a.source(o)+(a.size(t)-a.initial(t))*(1-pivot), false)
			default:
				a.setSize(o, a.size(o)+delta*(1-pivot), false)
			}
			return
		}
		var v float64
		if def.Percent {
			end := tmp + a.size(o)
			v = pos + (end-pos)*delta - end
		} else {
			v = delta * (sh.tgt - pivot)
		}
		a.setSize(o, a.size(o)+v, false)
		a.setMin(o, tmp)
	}
}

func (ri *RelationItem) targetMoved() {
	t := ri.target
	rel := ri.owner.relations
	if rel.handling != nil {
		ri.tx, ri.ty = t.x, t.y
		return
	}
	rel.handling = t
	defer func() { rel.handling = nil }()

	o := ri.owner
	ox, oy := o.x, o.y
	dx, dy := t.x-ri.tx, t.y-ri.ty
	for _, def := range ri.defs {
		ri.applyOnXYChanged(def, dx, dy)
	}
	ri.tx, ri.ty = t.x, t.y

	if o.x != ox || o.y != oy {
		ri.ownerMoved(o.x-ox, o.y-oy)
	}
}

func (ri *RelationItem) targetResized() {
	t := ri.target
	rel := ri.owner.relations
	if rel.sizeDirty {
		rel.EnsureRelationsSizeCorrect()
	}
	if rel.handling != nil {
		ri.tw, ri.th = t.width, t.height
		return
	}
	rel.handling = t
	defer func() { rel.handling = nil }()

	o := ri.owner
	ox, oy := o.x, o.y
	ow, oh := o.width, o.height
	for _, def := range ri.defs {
		ri.applyOnSizeChanged(def)
	}
	ri.tw, ri.th = t.width, t.height

	if o.x != ox || o.y != oy {
		ri.ownerMoved(o.x-ox, o.y-oy)
	}
	if o.width != ow || o.height != oh {
		o.updateGearFromRelations(gearSize, o.width-ow, o.height-oh)
	}
}

func (ri *RelationItem) targetSizeWillChange() {
	ri.owner.relations.sizeDirty = true
}

// ownerMoved forwards a relation-driven move to the owner's gears and to
// the transitions of its parent.
func (ri *RelationItem) ownerMoved(dx, dy float64) {
	o := ri.owner
	o.updateGearFromRelations(gearXY, dx, dy)
	if o.parent == nil {
		return
	}
	for _, t := range o.parent.transitions {
		t.UpdateFromRelations(o.id, dx, dy)
	}
}
