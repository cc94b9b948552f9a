package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/milk9111/uimotion/descriptor"
)

const panelYAML = `
name: panel
width: 300
height: 200
controllers:
  - name: mode
    pages:
      - {id: "0", name: closed}
      - {id: "1", name: open}
children:
  - id: bg
    type: image
    width: 300
    height: 200
    color: "#202020"
    relations:
      - {target: "", sidePair: "width,height"}
  - id: title
    type: text
    text: Menu
    autoSize: true
    x: 30
    y: 10
    relations:
      - {target: "", sidePair: "left-left%"}
  - id: ok
    type: component
    src: button
    x: 200
    y: 150
    relations:
      - {target: "", sidePair: "right-right,bottom-bottom"}
    gears:
      - type: xy
        controller: mode
        pages:
          - {page: "1", value: "250,150"}
transitions:
  - name: intro
    autoPlay: true
    items:
      - {time: 0, target: bg, type: Alpha, tween: true, duration: 12, startValue: "0", endValue: "1"}
  - name: press
    items:
      - {target: ok, type: Transition, value: "click,1"}
`

const buttonYAML = `
name: button
width: 80
height: 30
children:
  - id: face
    type: image
    width: 80
    height: 30
transitions:
  - name: click
    items:
      - {target: face, type: Scale, tween: true, duration: 6, startValue: "1,1", endValue: "0.9,0.9", yoyo: true, repeat: 1}
`

func testLoader(docs map[string]string) SpecLoader {
	return func(name string) (*descriptor.ComponentSpec, error) {
		doc, ok := docs[name]
		if !ok {
			return nil, fmt.Errorf("no descriptor %q", name)
		}
		return descriptor.ParseComponentSpec([]byte(doc))
	}
}

func TestNewComponentFromSpec(t *testing.T) {
	stage := NewStage(WithTextMeasurer(fixedMeasurer{}))
	load := testLoader(map[string]string{"panel": panelYAML, "button": buttonYAML})
	spec, err := load("panel")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	panel, err := NewComponentFromSpec(stage, spec, load)
	if err != nil {
		t.Fatalf("NewComponentFromSpec: %v", err)
	}
	stage.Root().AddChild(panel)

	if panel.NumChildren() != 3 || panel.Width() != 300 {
		t.Fatalf("children=%d width=%v", panel.NumChildren(), panel.Width())
	}
	ok, isComponent := panel.ChildByID("ok").(*Component)
	if !isComponent || ok.Transition("click") == nil {
		t.Fatalf("nested button not built")
	}
	if !panel.Transition("intro").Playing() {
		t.Fatalf("auto-play transition not started")
	}

	stage.Update(0.5)
	if a := panel.ChildByID("bg").Base().Alpha(); a != 1 {
		t.Fatalf("bg alpha = %v after intro, want 1", a)
	}
	if w := panel.ChildByID("title").Base().Width(); w != 40 {
		t.Fatalf("title width = %v, want measured 40", w)
	}

	panel.SetSize(450, 300)
	bg := panel.ChildByID("bg").Base()
	if bg.Width() != 450 || bg.Height() != 300 {
		t.Fatalf("bg size %vx%v, want 450x300", bg.Width(), bg.Height())
	}
	if ok.X() != 350 || ok.Y() != 250 {
		t.Fatalf("ok at (%v,%v), want (350,250)", ok.X(), ok.Y())
	}
	if x := panel.ChildByID("title").Base().X(); x != 45 {
		t.Fatalf("title x = %v, want 45", x)
	}

	done := false
	if err := panel.Transition("press").Play(1, 0, func() { done = true }); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !ok.Transition("click").Playing() {
		t.Fatalf("nested click not playing")
	}
	stage.Update(0.25)
	stage.Update(0.25)
	if !done {
		t.Fatalf("press did not complete with its nested transition")
	}
	if sx := ok.ChildByID("face").Base().ScaleX(); sx != 1 {
		t.Fatalf("face scale after yoyo = %v, want 1", sx)
	}

	if err := panel.Controller("mode").SetSelectedIndex(1); err != nil {
		t.Fatalf("SetSelectedIndex: %v", err)
	}
	// the open page was shifted along with the relation move
	if ok.X() != 400 || ok.Y() != 250 {
		t.Fatalf("ok at (%v,%v) on open page, want (400,250)", ok.X(), ok.Y())
	}
}

func TestNewComponentFromSpecErrors(t *testing.T) {
	cases := map[string]string{
		"bad relation": `
name: x
children:
  - {id: a, relations: [{target: "", sidePair: "left-up"}]}
`,
		"bad child type": `
name: x
children:
  - {id: a, type: sprite}
`,
		"bad transition": `
name: x
transitions:
  - {name: t, items: [{type: XY, value: "1"}]}
`,
		"unknown gear controller": `
name: x
children:
  - {id: a, gears: [{type: xy, controller: nope}]}
`,
		"missing nested": `
name: x
children:
  - {id: a, type: component, src: ghost}
`,
		"self nesting": `
name: loop
children:
  - {id: a, type: component, src: loop}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			load := testLoader(map[string]string{"loop": doc})
			spec, err := descriptor.ParseComponentSpec([]byte(doc))
			if err != nil {
				t.Fatalf("ParseComponentSpec: %v", err)
			}
			if _, err := NewComponentFromSpec(newTestStage(), spec, load); err == nil {
				t.Fatalf("NewComponentFromSpec succeeded")
			}
		})
	}

	spec, _ := descriptor.ParseComponentSpec([]byte(cases["bad relation"]))
	_, err := NewComponentFromSpec(newTestStage(), spec, nil)
	if !errors.Is(err, descriptor.ErrInvalidDescriptor) {
		t.Fatalf("err = %v, want ErrInvalidDescriptor", err)
	}
}
