package ui

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/uimotion/descriptor"
)

func newTestStage() *Stage {
	return NewStage(WithRand(rand.New(rand.NewSource(1))))
}

func TestSidePairsRoundTrip(t *testing.T) {
	cases := []string{
		"left-left",
		"width",
		"left-left,right-right%",
		"width-width%,height-height",
		"center-center,middle-middle%",
		"leftext-left,rightext-right,topext-top%,bottomext-bottom",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			defs, err := ParseSidePairs(in)
			if err != nil {
				t.Fatalf("ParseSidePairs(%q): %v", in, err)
			}
			out := FormatSidePairs(defs)
			again, err := ParseSidePairs(out)
			if err != nil {
				t.Fatalf("ParseSidePairs(%q): %v", out, err)
			}
			if diff := cmp.Diff(defs, again); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSidePairs(t *testing.T) {
	defs, err := ParseSidePairs("left,,bottom-top%,width")
	if err != nil {
		t.Fatalf("ParseSidePairs: %v", err)
	}
	want := []RelationDef{
		{Type: RelationLeftLeft},
		{Type: RelationBottomTop, Percent: true},
		{Type: RelationWidth},
	}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Fatalf("defs mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"left-up", "sideways", "left-left,widths"} {
		_, err := ParseSidePairs(bad)
		if !errors.Is(err, ErrInvalidRelation) {
			t.Fatalf("ParseSidePairs(%q) err = %v, want ErrInvalidRelation", bad, err)
		}
		if !errors.Is(err, descriptor.ErrInvalidDescriptor) {
			t.Fatalf("ParseSidePairs(%q) err = %v, want ErrInvalidDescriptor", bad, err)
		}
	}
}

func TestPercentRelationFollowsParentResize(t *testing.T) {
	stage := newTestStage()
	parent := NewComponent(stage, "p")
	parent.SetSize(100, 100)
	child := NewObject("c")
	parent.AddChild(child)
	child.SetXY(50, 0)

	child.AddRelation(parent, RelationLeftLeft, true)
	parent.SetSize(150, 100)

	if child.X() != 75 {
		t.Fatalf("child x = %v, want 75", child.X())
	}
}

func TestAbsoluteRelationFollowsParentResize(t *testing.T) {
	cases := []struct {
		name  string
		rt    RelationType
		wantX float64
		wantW float64
	}{
		{"left-left", RelationLeftLeft, 50, 20},
		{"right-right", RelationRightRight, 100, 20},
		{"center-center", RelationCenterCenter, 75, 20},
		{"width", RelationWidth, 50, 70},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parent := NewComponent(newTestStage(), "p")
			parent.SetSize(100, 100)
			child := NewObject("c")
			parent.AddChild(child)
			child.SetXY(50, 0)
			child.SetSize(20, 20)

			child.AddRelation(parent, c.rt, false)
			parent.SetSize(150, 100)

			if child.X() != c.wantX || child.Width() != c.wantW {
				t.Fatalf("child x,w = %v,%v, want %v,%v", child.X(), child.Width(), c.wantX, c.wantW)
			}
		})
	}
}

func TestOnOwnerSizeChangedIsLinear(t *testing.T) {
	sets := [][]RelationType{
		{RelationCenterCenter},
		{RelationRightRight, RelationBottomBottom},
		{RelationRightLeft, RelationMiddleMiddle},
		{RelationLeftLeft, RelationTopTop},
		{RelationRightCenter, RelationBottomMiddle, RelationWidth},
	}
	deltas := []struct{ dw1, dh1, dw2, dh2 float64 }{
		{16, 8, 4, 32},
		{-12, 20, 28, -4},
	}

	build := func(set []RelationType) *Object {
		parent := NewComponent(newTestStage(), "p")
		target := NewObject("t")
		owner := NewObject("o")
		parent.AddChild(target)
		parent.AddChild(owner)
		owner.SetXY(40, 60)
		owner.SetPivot(0.25, 0.75, false)
		for _, rt := range set {
			owner.AddRelation(target, rt, false)
		}
		return owner
	}

	for _, set := range sets {
		for _, d := range deltas {
			once := build(set)
			once.Relations().OnOwnerSizeChanged(d.dw1+d.dw2, d.dh1+d.dh2)

			twice := build(set)
			twice.Relations().OnOwnerSizeChanged(d.dw1, d.dh1)
			twice.Relations().OnOwnerSizeChanged(d.dw2, d.dh2)

			if once.X() != twice.X() || once.Y() != twice.Y() {
				t.Fatalf("%v %+v: combined (%v,%v) != sequential (%v,%v)",
					set, d, once.X(), once.Y(), twice.X(), twice.Y())
			}
		}
	}
}

func TestRelationFollowsTargetMove(t *testing.T) {
	parent := NewComponent(newTestStage(), "p")
	target := NewObject("t")
	owner := NewObject("o")
	parent.AddChild(target)
	parent.AddChild(owner)
	target.SetXY(10, 10)
	owner.SetXY(30, 30)
	owner.AddRelation(target, RelationLeftLeft, false)
	owner.AddRelation(target, RelationTopTop, false)

	target.SetXY(20, 15)

	if owner.X() != 40 || owner.Y() != 35 {
		t.Fatalf("owner at (%v,%v), want (40,35)", owner.X(), owner.Y())
	}
	if n := len(owner.Relations().Items()); n != 1 {
		t.Fatalf("relation items = %d, want 1 merged item", n)
	}
}

func TestExtRelationStretchesOwner(t *testing.T) {
	parent := NewComponent(newTestStage(), "p")
	target := NewObject("t")
	owner := NewObject("o")
	parent.AddChild(target)
	parent.AddChild(owner)
	owner.SetSize(50, 10)
	target.SetXY(60, 0)
	owner.AddRelation(target, RelationRightExtLeft, false)

	target.SetXY(70, 0)

	if owner.X() != 0 || owner.Width() != 60 {
		t.Fatalf("owner x,w = %v,%v, want 0,60", owner.X(), owner.Width())
	}
}

func TestRelationRemovalDetachesListeners(t *testing.T) {
	parent := NewComponent(newTestStage(), "p")
	target := NewObject("t")
	owner := NewObject("o")
	parent.AddChild(target)
	parent.AddChild(owner)
	owner.AddRelation(target, RelationLeftLeft, false)
	owner.AddRelation(target, RelationTopTop, false)

	rel := owner.Relations()
	rel.Remove(target, RelationLeftLeft)
	if !rel.Contains(target) {
		t.Fatalf("item dropped while top-top remains")
	}
	target.SetXY(5, 5)
	if owner.X() != 0 || owner.Y() != 5 {
		t.Fatalf("owner at (%v,%v), want (0,5)", owner.X(), owner.Y())
	}

	rel.Remove(target, RelationTopTop)
	if rel.Contains(target) {
		t.Fatalf("empty item kept")
	}
	target.SetXY(10, 10)
	if owner.Y() != 5 {
		t.Fatalf("owner followed a removed relation: y = %v", owner.Y())
	}

	rel.Remove(target, RelationWidth)
	rel.ClearFor(target)

	owner.AddRelation(target, RelationLeftLeft, false)
	item := rel.Items()[0]
	rel.ClearAll()
	item.Dispose()
	target.SetXY(30, 30)
	if owner.X() != 0 {
		t.Fatalf("owner followed after ClearAll: x = %v", owner.X())
	}
}

type fixedMeasurer struct{}

func (fixedMeasurer) MeasureText(text string) (float64, float64) {
	return float64(len(text)) * 10, 20
}

func TestEnsureRelationsSizeCorrect(t *testing.T) {
	parent := NewComponent(newTestStage(), "p")
	label := NewTextField("label", fixedMeasurer{})
	icon := NewObject("icon")
	parent.AddChild(label)
	parent.AddChild(icon)
	label.SetAutoSize(true)
	label.EnsureSizeCorrect()
	icon.AddRelation(label, RelationLeftRight, false)

	label.SetText("abc")
	if !icon.Relations().SizeDirty() || label.Width() != 0 {
		t.Fatalf("size applied before resolution: dirty=%v width=%v", icon.Relations().SizeDirty(), label.Width())
	}

	icon.EnsureSizeCorrect()
	if icon.Relations().SizeDirty() {
		t.Fatalf("size still dirty after EnsureSizeCorrect")
	}
	if label.Width() != 30 || icon.X() != 30 {
		t.Fatalf("label width %v icon x %v, want 30 and 30", label.Width(), icon.X())
	}

	icon.EnsureSizeCorrect()
	if icon.X() != 30 {
		t.Fatalf("second EnsureSizeCorrect moved icon to %v", icon.X())
	}
}

func TestRelationsSetupPhases(t *testing.T) {
	stage := newTestStage()

	t.Run("attached", func(t *testing.T) {
		parent := NewComponent(stage, "p")
		a := NewObject("a")
		b := NewObject("b")
		parent.AddChild(a)
		parent.AddChild(b)
		err := b.Relations().Setup([]descriptor.RelationSpec{
			{Target: "", SidePair: "width"},
			{Target: "a", SidePair: "left-right"},
			{Target: "missing", SidePair: "top"},
		})
		if err != nil {
			t.Fatalf("Setup: %v", err)
		}
		if !b.Relations().Contains(parent) || !b.Relations().Contains(a) {
			t.Fatalf("attached setup did not bind parent and sibling")
		}
		if n := len(b.Relations().Items()); n != 2 {
			t.Fatalf("items = %d, want 2 (unresolved target skipped)", n)
		}
	})

	t.Run("construction", func(t *testing.T) {
		c := NewComponent(stage, "c")
		inner := NewObject("inner")
		c.AddChild(inner)
		if err := c.Relations().Setup([]descriptor.RelationSpec{{Target: "inner", SidePair: "width"}}); err != nil {
			t.Fatalf("Setup: %v", err)
		}
		if !c.Relations().Contains(inner) {
			t.Fatalf("construction setup did not bind own child")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		c := NewComponent(stage, "c")
		a := NewObject("a")
		c.AddChild(a)
		err := a.Relations().Setup([]descriptor.RelationSpec{
			{Target: "", SidePair: "left"},
			{Target: "", SidePair: "left-nowhere"},
		})
		if !errors.Is(err, ErrInvalidRelation) {
			t.Fatalf("err = %v, want ErrInvalidRelation", err)
		}
		if !a.Relations().Empty() {
			t.Fatalf("malformed setup left partial relations")
		}
	})
}

func TestRelationMoveUpdatesTransitions(t *testing.T) {
	stage := newTestStage()
	parent := NewComponent(stage, "p")
	target := NewObject("t")
	owner := NewObject("o")
	parent.AddChild(target)
	parent.AddChild(owner)
	owner.AddRelation(target, RelationLeftLeft, false)
	owner.AddRelation(target, RelationTopTop, false)

	tr := NewTransition(parent, "move")
	item := NewItem(ActionXY)
	item.TargetID = "o"
	item.Tween = true
	item.StartValue = TransitionValue{F1: 0, F2: 0, Def1: true, Def2: true}
	item.EndValue = TransitionValue{F1: 100, F2: 0, Def1: true, Def2: false}
	tr.AddItem(item)

	target.SetXY(7, 3)

	if item.StartValue.F1 != 7 || item.StartValue.F2 != 3 {
		t.Fatalf("start = (%v,%v), want (7,3)", item.StartValue.F1, item.StartValue.F2)
	}
	if item.EndValue.F1 != 107 || item.EndValue.F2 != 0 {
		t.Fatalf("end = (%v,%v), want (107,0) with y untouched", item.EndValue.F1, item.EndValue.F2)
	}
}
