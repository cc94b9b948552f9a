// Command uilint builds component descriptors without a window and reports
// the ones that fail to load, build or bind their script.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/uimotion/descriptor"
	"github.com/milk9111/uimotion/script"
	"github.com/milk9111/uimotion/ui"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const frame = 1.0 / 60

// faceMeasurer sizes text with the fixed 7x13 face the viewer draws with.
type faceMeasurer struct{}

func (faceMeasurer) MeasureText(s string) (w, h float64) {
	adv := font.MeasureString(basicfont.Face7x13, s)
	return float64(adv.Ceil()), float64(basicfont.Face7x13.Metrics().Height.Ceil())
}

func main() {
	normalize := flag.Bool("normalize", false, "print every relation in normalized side-pair form")
	play := flag.Float64("play", 0, "play every transition and advance this many seconds")
	flag.Parse()

	names := flag.Args()
	if len(names) == 0 {
		all, err := descriptor.Names()
		if err != nil {
			log.Fatal(err)
		}
		names = all
	}

	failed := 0
	for _, name := range names {
		if err := lint(name, *normalize, *play); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Printf("%s: ok\n", name)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func lint(name string, normalize bool, play float64) error {
	spec, err := descriptor.LoadComponentSpec(name)
	if err != nil {
		return err
	}
	for _, w := range unresolvedTargets(spec) {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", name, w)
	}

	stage := ui.NewStage(ui.WithTextMeasurer(faceMeasurer{}))
	c, err := ui.NewComponentFromSpec(stage, spec, descriptor.LoadComponentSpec)
	if err != nil {
		return err
	}
	defer c.Dispose()
	stage.Root().AddChild(c)
	if _, err := script.Bind(c, spec); err != nil {
		return err
	}

	if normalize {
		printRelations(c, spec.Name)
	}

	if play > 0 {
		for _, t := range c.Transitions() {
			if t.Playing() {
				continue
			}
			if err := t.Play(1, 0, nil); err != nil {
				return err
			}
		}
		for elapsed := 0.0; elapsed < play; elapsed += frame {
			stage.Update(frame)
		}
	}
	return nil
}

// unresolvedTargets lists child relations whose target is not a sibling.
// Such relations are skipped when the component is built.
func unresolvedTargets(spec *descriptor.ComponentSpec) []string {
	ids := make(map[string]bool, len(spec.Children))
	for _, cs := range spec.Children {
		ids[cs.ID] = true
	}
	var out []string
	for _, cs := range spec.Children {
		for _, rs := range cs.Relations {
			if rs.Target != "" && !ids[rs.Target] {
				out = append(out, fmt.Sprintf("child %q relates to unknown target %q", cs.ID, rs.Target))
			}
		}
	}
	return out
}

func printRelations(c *ui.Component, path string) {
	for _, child := range c.Children() {
		o := child.Base()
		for _, item := range o.Relations().Items() {
			t := item.Target()
			if t == nil {
				continue
			}
			target := t.Base().ID()
			if t.Base() == c.Base() {
				target = "(parent)"
			}
			fmt.Printf("  %s/%s -> %s: %s\n", path, o.ID(), target, ui.FormatSidePairs(item.Defs()))
		}
		if nested, ok := child.(*ui.Component); ok {
			printRelations(nested, strings.Join([]string{path, o.ID()}, "/"))
		}
	}
}
