package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/uimotion/assets"
	"github.com/milk9111/uimotion/descriptor"
	"github.com/milk9111/uimotion/script"
	"github.com/milk9111/uimotion/sound"
	"github.com/milk9111/uimotion/ui"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 960
	baseHeight = 540
)

// Viewer shows one component descriptor and lets its transitions be played
// from a side panel.
type Viewer struct {
	name string

	stage  *ui.Stage
	spec   *descriptor.ComponentSpec
	view   *ui.Component
	script *script.Runtime
	panel  *ebitenui.UI

	face    ebtext.Face
	pixel   *ebiten.Image
	watcher *descriptor.Watcher
}

func NewViewer(name, assetsDir string) (*Viewer, error) {
	face := ebtext.NewGoXFace(basicfont.Face7x13)
	ctx := audio.NewContext(sound.DefaultSampleRate)

	v := &Viewer{
		name:  name,
		face:  face,
		pixel: ebiten.NewImage(1, 1),
	}
	v.pixel.Fill(colornames.White)
	v.stage = ui.NewStage(
		ui.WithAssets(sound.NewLibrary(assets.FS(assetsDir), ctx.SampleRate())),
		ui.WithSound(sound.NewPlayer(ctx)),
		ui.WithTextMeasurer(fontMeasurer{face: face}),
	)

	if err := v.load(); err != nil {
		return nil, err
	}
	return v, nil
}

// load builds the descriptor into a fresh component. The current view stays
// up when the new one fails to build.
func (v *Viewer) load() error {
	spec, err := descriptor.LoadComponentSpec(v.name)
	if err != nil {
		return err
	}
	c, err := ui.NewComponentFromSpec(v.stage, spec, descriptor.LoadComponentSpec)
	if err != nil {
		return err
	}
	rt, err := script.Bind(c, spec)
	if err != nil {
		c.Dispose()
		return err
	}

	if v.view != nil {
		v.view.Dispose()
		v.stage.Root().RemoveChild(v.view)
	}
	v.spec = spec
	v.view = c
	v.script = rt
	c.SetXY((baseWidth-panelWidth-c.Width())/2, (baseHeight-c.Height())/2)
	v.stage.Root().AddChild(c)
	v.panel = newControlPanel(v)
	return nil
}

func (v *Viewer) reload() {
	if err := v.load(); err != nil {
		log.Printf("uiviewer: reload %s: %v", v.name, err)
		return
	}
	if t, ok := descriptor.ModTime(v.name); ok {
		log.Printf("uiviewer: reloaded %s (modified %s)", v.name, t.Format("15:04:05"))
		return
	}
	log.Printf("uiviewer: reloaded %s", v.name)
}

// rebindScript recompiles the view's script and binds it to the running
// view. The previous script stays bound when the new one fails.
func (v *Viewer) rebindScript() {
	old := v.script
	if old != nil {
		old.Unbind()
	}
	rt, err := script.Bind(v.view, v.spec)
	if err != nil {
		log.Printf("uiviewer: rebind %s: %v", v.spec.Script, err)
		if old != nil {
			old.Attach()
		}
		return
	}
	v.script = rt
	log.Printf("uiviewer: rebound %s", v.spec.Script)
}

// Watch reloads the view whenever a descriptor changes on disk and rebinds
// its script when only the script changed.
func (v *Viewer) Watch() error {
	w, err := descriptor.NewWatcher(descriptor.Dir, filepath.Join(descriptor.Dir, "scripts"))
	if err != nil {
		return err
	}
	v.watcher = w
	return nil
}

func (v *Viewer) Close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
	if v.view != nil {
		v.view.Dispose()
	}
}

func (v *Viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	reload, rebind := false, false
	for {
		select {
		case c, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("uiviewer: %s %s changed", c.Kind, c.Name)
			switch c.Kind {
			case descriptor.ChangeDescriptor:
				// nested components may come from any descriptor
				reload = true
			case descriptor.ChangeScript:
				if v.spec != nil && filepath.Base(v.spec.Script) == c.Name {
					rebind = true
				}
			}
			continue
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("uiviewer: watch: %v", err)
			continue
		default:
		}
		break
	}
	switch {
	case reload:
		v.reload()
	case rebind:
		v.rebindScript()
	}
}

func (v *Viewer) Update() error {
	v.pollWatcher()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reload()
	}
	v.panel.Update()
	v.stage.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	v.drawElement(screen, v.stage.Root(), 0, 0, 1)
	v.panel.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s    FPS: %.2f    R: reload", v.name, ebiten.ActualFPS()))
}

func (v *Viewer) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
