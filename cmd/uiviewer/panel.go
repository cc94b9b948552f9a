package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/uimotion/ui"
)

const panelWidth = 200

// newControlPanel lists the view's transitions with play and stop buttons
// and its controllers with a button that steps to the next page.
func newControlPanel(v *Viewer) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 220})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x55, A: 255}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}),
	}
	face := v.face
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	fill := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	button := func(label string, onClick func(b *widget.Button)) *widget.Button {
		var b *widget.Button
		b = widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(fill, widget.WidgetOpts.MinSize(0, 22)),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick(b)
			}),
		)
		return b
	}
	heading := func(label string) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(label, &face, white), widget.TextOpts.WidgetOpts(fill))
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, baseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, StretchVertical: true}),
		),
	)

	panel.AddChild(heading("Transitions"))
	for _, t := range v.view.Transitions() {
		panel.AddChild(button("play "+t.Name(), func(*widget.Button) {
			if err := t.Play(1, 0, func() { log.Printf("uiviewer: %s complete", t.Name()) }); err != nil {
				log.Printf("uiviewer: %v", err)
			}
		}))
		panel.AddChild(button("stop "+t.Name(), func(*widget.Button) {
			t.Stop(true, true)
		}))
	}

	if ctrls := v.view.Controllers(); len(ctrls) > 0 {
		panel.AddChild(heading("Controllers"))
		for _, c := range ctrls {
			panel.AddChild(button(controllerLabel(c), func(b *widget.Button) {
				if n := len(c.Pages()); n > 0 {
					if err := c.SetSelectedIndex((c.SelectedIndex() + 1) % n); err != nil {
						log.Printf("uiviewer: %v", err)
					}
				}
				if text := b.Text(); text != nil {
					text.Label = controllerLabel(c)
				}
			}))
		}
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func controllerLabel(c *ui.Controller) string {
	return fmt.Sprintf("%s: %s", c.Name(), c.SelectedPage())
}
