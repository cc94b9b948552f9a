package ui

import (
	"image/color"
	"testing"
)

func TestControllerSelection(t *testing.T) {
	ctrl := NewController("state", Page{ID: "a", Name: "up"}, Page{ID: "b", Name: "down"})

	changes := 0
	remove := ctrl.OnChanged(func() { changes++ })

	if err := ctrl.SetSelectedIndex(1); err != nil {
		t.Fatalf("SetSelectedIndex: %v", err)
	}
	if err := ctrl.SetSelectedIndex(1); err != nil {
		t.Fatalf("SetSelectedIndex same page: %v", err)
	}
	if err := ctrl.SetSelectedIndex(2); err == nil {
		t.Fatalf("SetSelectedIndex(2) succeeded on two pages")
	}
	if ctrl.SelectedPage() != "down" || ctrl.SelectedPageID() != "b" || changes != 1 {
		t.Fatalf("page=%q id=%q changes=%d", ctrl.SelectedPage(), ctrl.SelectedPageID(), changes)
	}

	ctrl.SetSelectedPage("sideways")
	if ctrl.SelectedIndex() != 0 {
		t.Fatalf("unknown page selected index %d, want 0", ctrl.SelectedIndex())
	}

	remove()
	ctrl.SetSelectedPage("down")
	if changes != 2 {
		t.Fatalf("listener called after removal: %d", changes)
	}
}

func TestGearsFollowController(t *testing.T) {
	c := NewComponent(newTestStage(), "c")
	ctrl := NewController("mode", Page{ID: "0", Name: "small"}, Page{ID: "1", Name: "big"})
	c.AddController(ctrl)
	img := NewImage("img")
	c.AddChild(img)
	img.SetXY(1, 2)
	img.SetSize(10, 10)

	gxy := NewGearXY(img, ctrl)
	gxy.SetPage("1", 40, 50)
	gsize := NewGearSize(img, ctrl)
	gsize.SetPage("1", 80, 90)
	gcolor, err := NewGearColor(img, ctrl)
	if err != nil {
		t.Fatalf("NewGearColor: %v", err)
	}
	red := color.NRGBA{R: 255, A: 255}
	gcolor.SetPage("1", red)

	if err := ctrl.SetSelectedIndex(1); err != nil {
		t.Fatalf("SetSelectedIndex: %v", err)
	}
	if img.X() != 40 || img.Y() != 50 || img.Width() != 80 || img.Height() != 90 || img.Color() != red {
		t.Fatalf("page 1 not applied: (%v,%v) %vx%v %v", img.X(), img.Y(), img.Width(), img.Height(), img.Color())
	}

	// user edits are recorded for the selected page
	img.SetXY(44, 55)
	if x, y, _ := gxy.Page("1"); x != 44 || y != 55 {
		t.Fatalf("page 1 recorded (%v,%v), want (44,55)", x, y)
	}

	if err := ctrl.SetSelectedIndex(0); err != nil {
		t.Fatalf("SetSelectedIndex: %v", err)
	}
	if img.X() != 1 || img.Y() != 2 || img.Width() != 10 {
		t.Fatalf("defaults not restored: (%v,%v) w=%v", img.X(), img.Y(), img.Width())
	}

	if _, err := NewGearColor(NewObject("plain"), ctrl); err == nil {
		t.Fatalf("color gear bound to an element without color")
	}
}

func TestGearShiftedByRelations(t *testing.T) {
	c := NewComponent(newTestStage(), "c")
	ctrl := NewController("mode", Page{ID: "0"}, Page{ID: "1"})
	c.AddController(ctrl)
	target := NewObject("t")
	owner := NewObject("o")
	c.AddChild(target)
	c.AddChild(owner)

	g := NewGearXY(owner, ctrl)
	g.SetPage("1", 100, 0)
	owner.AddRelation(target, RelationLeftLeft, false)

	target.SetXY(10, 0)

	if x, _, _ := g.Page("1"); x != 110 {
		t.Fatalf("page 1 x = %v, want 110", x)
	}
	if x, _, _ := g.Page("0"); x != 10 {
		t.Fatalf("page 0 x = %v, want 10", x)
	}
}

func TestMovieClipAdvance(t *testing.T) {
	mc := NewMovieClip("mc", 4, 0.25)
	mc.Advance(0.5)
	if mc.Frame() != 2 {
		t.Fatalf("frame = %d, want 2", mc.Frame())
	}
	mc.Advance(0.5)
	if mc.Frame() != 0 {
		t.Fatalf("frame = %d, want wrap to 0", mc.Frame())
	}
	mc.SetPlaying(false)
	mc.Advance(1)
	mc.SetFrame(9)
	if mc.Frame() != 3 {
		t.Fatalf("frame = %d, want clamp to 3", mc.Frame())
	}
}

func TestAnimationAction(t *testing.T) {
	stage := newTestStage()
	owner := NewComponent(stage, "owner")
	mc := NewMovieClip("mc", 10, 0.1)
	owner.AddChild(mc)
	mc.SetFrame(4)

	tr := NewTransition(owner, "anim")
	item := NewItem(ActionAnimation)
	item.TargetID = "mc"
	item.Value = TransitionValue{Def1: false, B: false}
	tr.AddItem(item)

	if err := tr.Play(1, 0, nil); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if mc.Frame() != 4 || mc.Playing() {
		t.Fatalf("frame=%d playing=%v, want 4 and false", mc.Frame(), mc.Playing())
	}
}

func TestStageUpdateResolvesSizes(t *testing.T) {
	stage := NewStage(WithTextMeasurer(fixedMeasurer{}))
	c := NewComponent(stage, "c")
	stage.Root().AddChild(c)
	tf := NewTextField("tf", stage.TextMeasurer())
	c.AddChild(tf)
	tf.SetText("hello")
	tf.SetAutoSize(true)

	if !tf.SizePending() {
		t.Fatalf("auto size applied immediately")
	}
	stage.Update(1.0 / 60)
	if tf.SizePending() || tf.Width() != 50 || tf.Height() != 20 {
		t.Fatalf("pending=%v size=%vx%v", tf.SizePending(), tf.Width(), tf.Height())
	}
}
