package descriptor

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
		bad  bool
	}{
		{in: "#ff8000", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: "#80ff0000", want: color.NRGBA{R: 255, A: 128}},
		{in: " 00ff00 ", want: color.NRGBA{G: 255, A: 255}},
		{in: "#fff", bad: true},
		{in: "#gg0000", bad: true},
		{in: "", bad: true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.bad {
				if !errors.Is(err, ErrInvalidDescriptor) {
					t.Fatalf("expected ErrInvalidDescriptor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
			if back, _ := ParseColor(FormatColor(got)); back != got {
				t.Fatalf("FormatColor round trip: %s -> %+v", FormatColor(got), back)
			}
		})
	}
}

func TestYAMLColorRejectsNonScalar(t *testing.T) {
	var v struct {
		C YAMLColor `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("c: [1, 2]"), &v); err == nil {
		t.Fatalf("expected an error for a sequence color")
	}
	if err := yaml.Unmarshal([]byte(`c: "#102030"`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if FormatColor(v.C) != "#102030" {
		t.Fatalf("got %s", FormatColor(v.C))
	}
}

func TestEmbeddedDescriptors(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if diff := cmp.Diff([]string{"button.yaml", "menu.yaml"}, names); diff != "" {
		t.Fatalf("embedded names (-want +got):\n%s", diff)
	}

	menu, err := LoadComponentSpec("menu")
	if err != nil {
		t.Fatalf("LoadComponentSpec: %v", err)
	}
	if menu.Name != "menu" || menu.Script != "menu.tengo" {
		t.Fatalf("unexpected menu header: %+v", menu)
	}
	if len(menu.Transitions) == 0 || len(menu.Hooks) == 0 {
		t.Fatalf("menu has no transitions or hooks")
	}

	src, err := LoadScript(menu.Script)
	if err != nil || len(src) == 0 {
		t.Fatalf("LoadScript(%q): %v", menu.Script, err)
	}
}

func TestTransitionItemEndValuePresence(t *testing.T) {
	spec, err := ParseComponentSpec([]byte(`
name: t
transitions:
  - name: a
    items:
      - {type: XY, tween: true, startValue: "1,2"}
      - {type: XY, tween: true, startValue: "1,2", endValue: ""}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	items := spec.Transitions[0].Items
	if items[0].EndValue != nil {
		t.Fatalf("absent endValue decoded as %q", *items[0].EndValue)
	}
	if items[1].EndValue == nil || *items[1].EndValue != "" {
		t.Fatalf("empty endValue was not preserved")
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	if err := os.WriteFile(filepath.Join(dir, "menu.yaml"), []byte("name: patched\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spec, err := LoadComponentSpec("menu")
	if err != nil {
		t.Fatalf("LoadComponentSpec: %v", err)
	}
	if spec.Name != "patched" {
		t.Fatalf("name = %q, want disk override", spec.Name)
	}
	if _, ok := ModTime("menu"); !ok {
		t.Fatalf("ModTime should find the disk file")
	}
	if _, ok := ModTime("button"); ok {
		t.Fatalf("ModTime should not report embedded-only files")
	}
}

func TestWatcherReportsTypedChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	next := func() Change {
		t.Helper()
		select {
		case c := <-w.Events:
			return c
		case <-time.After(2 * time.Second):
			t.Fatalf("no change reported")
		}
		return Change{}
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "menu.yaml"), []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if c := next(); c.Kind != ChangeDescriptor || c.Name != "menu" {
		t.Fatalf("change = %+v, want descriptor menu", c)
	}

	if err := os.WriteFile(filepath.Join(dir, "menu.tengo"), []byte("x := 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for {
		c := next()
		if c.Kind == ChangeDescriptor {
			// a second write event for menu.yaml may still be in flight
			continue
		}
		if c.Kind != ChangeScript || c.Name != "menu.tengo" {
			t.Fatalf("change = %+v, want script menu.tengo", c)
		}
		break
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want Change
		ok   bool
	}{
		{"descriptor/button.yaml", Change{Kind: ChangeDescriptor, Name: "button", Path: "descriptor/button.yaml"}, true},
		{"descriptor/panel.YML", Change{Kind: ChangeDescriptor, Name: "panel", Path: "descriptor/panel.YML"}, true},
		{"descriptor/scripts/menu.tengo", Change{Kind: ChangeScript, Name: "menu.tengo", Path: "descriptor/scripts/menu.tengo"}, true},
		{"descriptor/readme.md", Change{}, false},
	}
	for _, c := range cases {
		got, ok := classify(c.path)
		if ok != c.ok {
			t.Fatalf("classify(%q) ok = %v, want %v", c.path, ok, c.ok)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("classify(%q) (-want +got):\n%s", c.path, diff)
		}
	}
}
