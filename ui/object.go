package ui

// Element is anything that can live in a component's child list. Every
// element is backed by an Object; capabilities are queried with type
// assertions on the element itself.
type Element interface {
	Base() *Object
}

// Object holds the geometry and display state shared by all elements.
type Object struct {
	id   string
	name string

	x, y          float64
	width, height float64

	sourceWidth, sourceHeight float64
	initWidth, initHeight     float64

	pivotX, pivotY float64
	pivotAsAnchor  bool
	scaleX, scaleY float64
	rotation       float64
	alpha          float64
	visible        bool

	internalVisible int
	gearLocked      int
	underConstruct  bool

	pendingSize        bool
	pendingW, pendingH float64

	self      Element
	parent    *Component
	relations *Relations
	gears     [gearCount]gear

	xyListeners    listenerList
	sizeListeners  listenerList
	sizeWillChange listenerList
}

// NewObject creates a bare element with no capabilities.
func NewObject(id string) *Object {
	o := &Object{}
	o.init(o, id)
	return o
}

func (o *Object) init(self Element, id string) {
	o.id = id
	o.name = id
	o.scaleX, o.scaleY = 1, 1
	o.alpha = 1
	o.visible = true
	o.self = self
	o.relations = newRelations(o)
}

func (o *Object) Base() *Object { return o }

// Element returns the outermost value wrapping this object.
func (o *Object) Element() Element {
	if o == nil {
		return nil
	}
	return o.self
}

func (o *Object) ID() string   { return o.id }
func (o *Object) Name() string { return o.name }

func (o *Object) SetName(name string) { o.name = name }

func (o *Object) Parent() *Component { return o.parent }

func (o *Object) X() float64      { return o.x }
func (o *Object) Y() float64      { return o.y }
func (o *Object) Width() float64  { return o.width }
func (o *Object) Height() float64 { return o.height }

func (o *Object) PivotX() float64     { return o.pivotX }
func (o *Object) PivotY() float64     { return o.pivotY }
func (o *Object) PivotAsAnchor() bool { return o.pivotAsAnchor }
func (o *Object) ScaleX() float64     { return o.scaleX }
func (o *Object) ScaleY() float64     { return o.scaleY }
func (o *Object) Rotation() float64   { return o.rotation }
func (o *Object) Alpha() float64      { return o.alpha }
func (o *Object) Visible() bool       { return o.visible }

// InternalVisible is the number of display locks currently held on the
// object by playing transitions.
func (o *Object) InternalVisible() int { return o.internalVisible }

func (o *Object) Relations() *Relations { return o.relations }

// SetXY moves the object and notifies position listeners.
func (o *Object) SetXY(x, y float64) {
	if o.x == x && o.y == y {
		return
	}
	o.x, o.y = x, y
	o.updateGear(gearXY)
	o.xyListeners.call()
}

func (o *Object) SetX(x float64) { o.SetXY(x, o.y) }
func (o *Object) SetY(y float64) { o.SetXY(o.x, y) }

// XMin is the left edge, which differs from X when the pivot is the anchor.
func (o *Object) XMin() float64 {
	if o.pivotAsAnchor {
		return o.x - o.width*o.pivotX
	}
	return o.x
}

func (o *Object) SetXMin(v float64) {
	if o.pivotAsAnchor {
		o.SetXY(v+o.width*o.pivotX, o.y)
		return
	}
	o.SetXY(v, o.y)
}

func (o *Object) YMin() float64 {
	if o.pivotAsAnchor {
		return o.y - o.height*o.pivotY
	}
	return o.y
}

func (o *Object) SetYMin(v float64) {
	if o.pivotAsAnchor {
		o.SetXY(o.x, v+o.height*o.pivotY)
		return
	}
	o.SetXY(o.x, v)
}

func (o *Object) SetSize(w, h float64) { o.setSize(w, h, false) }

func (o *Object) SetWidth(w float64)  { o.setSize(w, o.height, false) }
func (o *Object) SetHeight(h float64) { o.setSize(o.width, h, false) }

func (o *Object) setSize(w, h float64, ignorePivot bool) {
	if o.width == w && o.height == h {
		return
	}
	dw, dh := w-o.width, h-o.height
	o.width, o.height = w, h

	if (o.pivotX != 0 || o.pivotY != 0) && !o.pivotAsAnchor && !ignorePivot {
		o.SetXY(o.x-o.pivotX*dw, o.y-o.pivotY*dh)
	}

	o.updateGear(gearSize)

	if o.parent != nil {
		o.relations.onOwnerSizeChanged(dw, dh, o.pivotAsAnchor || !ignorePivot)
	}
	o.sizeListeners.call()
}

// RequestSize records a size that is applied on the next EnsureSizeCorrect.
// Objects related to this one are marked dirty immediately.
func (o *Object) RequestSize(w, h float64) {
	if !o.pendingSize && o.width == w && o.height == h {
		return
	}
	o.pendingSize = true
	o.pendingW, o.pendingH = w, h
	o.sizeWillChange.call()
}

// SizePending reports whether a requested size has not been applied yet.
func (o *Object) SizePending() bool { return o.pendingSize }

// EnsureSizeCorrect resolves this object's related targets first, then any
// requested size. Calling it again in the same frame is a no-op.
func (o *Object) EnsureSizeCorrect() {
	if o.relations.sizeDirty {
		o.relations.EnsureRelationsSizeCorrect()
	}
	if o.pendingSize {
		o.pendingSize = false
		o.SetSize(o.pendingW, o.pendingH)
	}
}

func (o *Object) SetPivot(px, py float64, asAnchor bool) {
	if o.pivotX == px && o.pivotY == py && o.pivotAsAnchor == asAnchor {
		return
	}
	dx := (px - o.pivotX) * o.width
	dy := (py - o.pivotY) * o.height
	o.pivotX, o.pivotY = px, py
	o.pivotAsAnchor = asAnchor
	if asAnchor {
		o.SetXY(o.x+dx, o.y+dy)
	}
}

func (o *Object) SetScale(sx, sy float64) {
	o.scaleX, o.scaleY = sx, sy
}

func (o *Object) SetRotation(deg float64) {
	o.rotation = deg
}

func (o *Object) SetAlpha(a float64) {
	o.alpha = a
}

func (o *Object) SetVisible(v bool) {
	o.visible = v
}

// Displayed reports whether the object is drawn: visible, or held on screen
// by a transition.
func (o *Object) Displayed() bool {
	return o.visible || o.internalVisible > 0
}

// GearLocked reports whether writes are currently transition driven.
func (o *Object) GearLocked() bool { return o.gearLocked > 0 }

// LockGear marks subsequent writes as externally driven until release is
// called. Locks nest.
func (o *Object) LockGear() (release func()) {
	o.gearLocked++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		o.gearLocked--
	}
}

// AddRelation makes this object follow target.
func (o *Object) AddRelation(target Element, rt RelationType, usePercent bool) {
	o.relations.Add(target, rt, usePercent)
}

// OnXYChanged registers fn for position changes and returns its remover.
func (o *Object) OnXYChanged(fn func()) func() { return o.xyListeners.add(fn) }

// OnSizeChanged registers fn for size changes and returns its remover.
func (o *Object) OnSizeChanged(fn func()) func() { return o.sizeListeners.add(fn) }

// OnSizeWillChange registers fn for requested, not yet applied, size changes.
func (o *Object) OnSizeWillChange(fn func()) func() { return o.sizeWillChange.add(fn) }

func (o *Object) setSourceSize(w, h float64) {
	o.sourceWidth, o.sourceHeight = w, h
	o.initWidth, o.initHeight = w, h
}
