package script

import (
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/uimotion/ui"
)

func (rt *Runtime) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		t := rt.owner.Transition(objectAsString(args[0]))
		if t == nil {
			return tengo.FalseValue, nil
		}
		times := 1
		if len(args) > 1 {
			if n, ok := tengo.ToInt(args[1]); ok {
				times = n
			}
		}
		if err := t.Play(times, 0, nil); err != nil {
			log.Printf("script %s: %v", rt.name, err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		t := rt.owner.Transition(objectAsString(args[0]))
		if t == nil {
			return tengo.FalseValue, nil
		}
		t.Stop(true, true)
		return tengo.TrueValue, nil
	}}

	values["select"] = &tengo.UserFunction{Name: "select", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		ctrl := rt.owner.Controller(objectAsString(args[0]))
		if ctrl == nil {
			return tengo.FalseValue, nil
		}
		if i, ok := args[1].(*tengo.Int); ok {
			if err := ctrl.SetSelectedIndex(int(i.Value)); err != nil {
				log.Printf("script %s: %v", rt.name, err)
				return tengo.FalseValue, nil
			}
			return tengo.TrueValue, nil
		}
		ctrl.SetSelectedPage(objectAsString(args[1]))
		return tengo.TrueValue, nil
	}}

	values["visible"] = &tengo.UserFunction{Name: "visible", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		target := rt.element(objectAsString(args[0]))
		if target == nil {
			return tengo.FalseValue, nil
		}
		target.Base().SetVisible(!args[1].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("script %s: %s", rt.name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// element resolves id among the owner's children; an empty id is the owner.
func (rt *Runtime) element(id string) ui.Element {
	if id == "" {
		return rt.owner
	}
	return rt.owner.ChildByID(id)
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined, nil:
		return nil
	default:
		return v.String()
	}
}
