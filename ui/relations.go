package ui

import (
	"fmt"

	"github.com/milk9111/uimotion/descriptor"
)

// Relations is the per-object list of relation items, one per target in
// insertion order.
type Relations struct {
	owner    *Object
	items    []*RelationItem
	handling *Object

	sizeDirty bool
}

func newRelations(owner *Object) *Relations {
	return &Relations{owner: owner}
}

// Add relates the owner to target, merging into an existing item for the
// same target.
func (r *Relations) Add(target Element, rt RelationType, usePercent bool) {
	t := target.Base()
	for _, item := range r.items {
		if item.target == t {
			item.add(rt, usePercent)
			return
		}
	}
	item := newRelationItem(r.owner)
	item.setTarget(t)
	item.add(rt, usePercent)
	r.items = append(r.items, item)
}

// Remove drops rt from target's item, disposing the item once it is empty.
func (r *Relations) Remove(target Element, rt RelationType) {
	t := target.Base()
	kept := r.items[:0]
	for _, item := range r.items {
		if item.target == t {
			item.remove(rt)
			if item.isEmpty() {
				item.Dispose()
				continue
			}
		}
		kept = append(kept, item)
	}
	r.items = kept
}

func (r *Relations) Contains(target Element) bool {
	t := target.Base()
	for _, item := range r.items {
		if item.target == t {
			return true
		}
	}
	return false
}

// ClearFor disposes every item that targets target.
func (r *Relations) ClearFor(target Element) {
	t := target.Base()
	kept := r.items[:0]
	for _, item := range r.items {
		if item.target == t {
			item.Dispose()
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
}

func (r *Relations) ClearAll() {
	for _, item := range r.items {
		item.Dispose()
	}
	r.items = nil
}

// CopyFrom replaces the items with copies of src's, bound to this owner.
func (r *Relations) CopyFrom(src *Relations) {
	r.ClearAll()
	for _, s := range src.items {
		item := newRelationItem(r.owner)
		item.copyFrom(s)
		r.items = append(r.items, item)
	}
}

func (r *Relations) Dispose() { r.ClearAll() }

func (r *Relations) Items() []*RelationItem {
	return append([]*RelationItem(nil), r.items...)
}

func (r *Relations) Empty() bool { return len(r.items) == 0 }

// SizeDirty reports whether a target announced a size change that has not
// been resolved yet.
func (r *Relations) SizeDirty() bool { return r.sizeDirty }

// OnOwnerSizeChanged re-anchors the owner after its own size changed by
// (dw, dh).
func (r *Relations) OnOwnerSizeChanged(dw, dh float64) {
	r.onOwnerSizeChanged(dw, dh, true)
}

func (r *Relations) onOwnerSizeChanged(dw, dh float64, applyPivot bool) {
	for _, item := range r.items {
		item.applyOnSelfSizeChanged(dw, dh, applyPivot)
	}
}

// EnsureRelationsSizeCorrect resolves every target's pending size before the
// owner lays itself out.
func (r *Relations) EnsureRelationsSizeCorrect() {
	if len(r.items) == 0 {
		return
	}
	r.sizeDirty = false
	for _, item := range r.items {
		if item.target != nil {
			item.target.EnsureSizeCorrect()
		}
	}
}

// Setup binds relations read from a descriptor. An attached owner resolves
// targets among its siblings, with an empty id meaning the parent. An owner
// still under construction has no parent; it is the container and resolves
// targets among its own children. Unresolved targets are skipped.
func (r *Relations) Setup(specs []descriptor.RelationSpec) error {
	type pending struct {
		target Element
		defs   []RelationDef
	}
	var resolved []pending
	for _, spec := range specs {
		defs, err := ParseSidePairs(spec.SidePair)
		if err != nil {
			return fmt.Errorf("ui: relations of %q: %w", r.owner.id, err)
		}
		target := r.resolve(spec.Target)
		if target == nil {
			continue
		}
		resolved = append(resolved, pending{target: target, defs: defs})
	}
	for _, p := range resolved {
		for _, def := range p.defs {
			r.Add(p.target, def.Type, def.Percent)
		}
	}
	return nil
}

func (r *Relations) resolve(id string) Element {
	if parent := r.owner.parent; parent != nil {
		if id == "" {
			return parent
		}
		return parent.ChildByID(id)
	}
	if c, ok := r.owner.self.(*Component); ok {
		return c.ChildByID(id)
	}
	return nil
}
