// Package script runs transition hooks written in tengo.
package script

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/uimotion/descriptor"
	"github.com/milk9111/uimotion/ui"
)

var hookName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Runtime is a compiled component script. Hook functions receive the engine
// map and a state map that survives between calls.
type Runtime struct {
	name     string
	owner    *ui.Component
	compiled *tengo.Compiled
	engine   *tengo.ImmutableMap
	state    *tengo.Map
	funcs    map[string]bool
	hooks    []descriptor.HookSpec

	queue   []string
	running bool
}

// Bind loads spec's script and attaches its hooks to the transitions of owner.
// A spec without a script returns a nil runtime.
func Bind(owner *ui.Component, spec *descriptor.ComponentSpec) (*Runtime, error) {
	if strings.TrimSpace(spec.Script) == "" {
		if len(spec.Hooks) > 0 {
			return nil, fmt.Errorf("%w: component %q has hooks but no script", descriptor.ErrInvalidDescriptor, spec.Name)
		}
		return nil, nil
	}
	src, err := descriptor.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", spec.Script, err)
	}
	rt, err := New(owner, spec.Script, src, spec.Hooks)
	if err != nil {
		return nil, err
	}

	// auto-play transitions started before any hook was attached
	for _, t := range owner.Transitions() {
		if !t.AutoPlay || !t.Playing() {
			continue
		}
		t.Stop(false, false)
		if err := t.Play(t.AutoPlayTimes, t.AutoPlayDelay, nil); err != nil {
			return nil, fmt.Errorf("script %s: %w", spec.Script, err)
		}
	}
	return rt, nil
}

// New compiles src and binds hooks. Every hook must name a labelled item of
// one of owner's transitions; end hooks match label2.
func New(owner *ui.Component, name string, src []byte, hooks []descriptor.HookSpec) (*Runtime, error) {
	rt := &Runtime{
		name:  name,
		owner: owner,
		state: &tengo.Map{Value: map[string]tengo.Object{}},
		funcs: map[string]bool{},
		hooks: hooks,
	}

	for _, h := range hooks {
		if !hookName.MatchString(h.Func) {
			return nil, fmt.Errorf("%w: script %s: hook function %q", descriptor.ErrInvalidDescriptor, name, h.Func)
		}
		if err := checkHookTarget(owner, h); err != nil {
			return nil, fmt.Errorf("script %s: %w", name, err)
		}
		rt.funcs[h.Func] = true
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + rt.dispatchSource()))
	_ = script.Add("__hook", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: script %s: %v", descriptor.ErrInvalidDescriptor, name, err)
	}
	rt.compiled = compiled
	rt.engine = rt.buildEngine()
	rt.Attach()
	return rt, nil
}

// Attach installs the runtime's hooks on the owner's transitions again,
// replacing whatever hooks those labels carry.
func (rt *Runtime) Attach() {
	for _, h := range rt.hooks {
		fn := h.Func
		rt.owner.Transition(h.Transition).SetHook(h.Label, func() {
			if err := rt.Call(fn); err != nil {
				log.Printf("script %s: %v", rt.name, err)
			}
		})
	}
}

func checkHookTarget(owner *ui.Component, h descriptor.HookSpec) error {
	t := owner.Transition(h.Transition)
	if t == nil {
		return fmt.Errorf("%w: hook %s: no transition %q", descriptor.ErrInvalidDescriptor, h.Func, h.Transition)
	}
	for _, item := range t.Items() {
		if h.Label == "" {
			break
		}
		if (!h.End && item.Label == h.Label) || (h.End && item.Label2 == h.Label) {
			return nil
		}
	}
	field := "label"
	if h.End {
		field = "label2"
	}
	return fmt.Errorf("%w: hook %s: transition %q has no item with %s %q", descriptor.ErrInvalidDescriptor, h.Func, h.Transition, field, h.Label)
}

func (rt *Runtime) dispatchSource() string {
	names := make([]string, 0, len(rt.funcs))
	for fn := range rt.funcs {
		names = append(names, fn)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, fn := range names {
		if i > 0 {
			b.WriteString(" else ")
		}
		fmt.Fprintf(&b, "if __hook == %q {\n\t%s(__engine, __state)\n}", fn, fn)
	}
	b.WriteString("\n")
	return b.String()
}

// Call runs the hook function fn. Calls made while a hook is running are
// queued and run after it returns.
func (rt *Runtime) Call(fn string) error {
	if !rt.funcs[fn] {
		return fmt.Errorf("script %s: %q is not a bound hook", rt.name, fn)
	}
	rt.queue = append(rt.queue, fn)
	if rt.running {
		return nil
	}

	rt.running = true
	defer func() { rt.running = false }()

	var errs []error
	for len(rt.queue) > 0 {
		next := rt.queue[0]
		rt.queue = rt.queue[1:]
		if err := rt.run(next); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", next, err))
		}
	}
	return errors.Join(errs...)
}

func (rt *Runtime) run(fn string) error {
	if err := rt.compiled.Set("__hook", fn); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", rt.engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// State returns a value the script stored in its state map.
func (rt *Runtime) State(key string) any {
	v, ok := rt.state.Value[key]
	if !ok {
		return nil
	}
	return objectToAny(v)
}

// Unbind removes the hooks of every transition of the owner.
func (rt *Runtime) Unbind() {
	for _, t := range rt.owner.Transitions() {
		t.ClearHooks()
	}
}
