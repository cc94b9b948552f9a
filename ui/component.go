package ui

// Component is a container element. It owns its children, controllers and
// transitions.
type Component struct {
	Object
	stage       *Stage
	children    []Element
	controllers []*Controller
	transitions []*Transition
}

func NewComponent(stage *Stage, id string) *Component {
	c := &Component{stage: stage}
	c.init(c, id)
	return c
}

// Stage returns the stage the component was created on, falling back to the
// nearest ancestor's.
func (c *Component) Stage() *Stage {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.stage != nil {
			return cur.stage
		}
	}
	return nil
}

// AddChild appends e, detaching it from any previous parent.
func (c *Component) AddChild(e Element) Element {
	o := e.Base()
	if o.parent == c {
		return e
	}
	if o.parent != nil {
		o.parent.RemoveChild(e)
	}
	o.parent = c
	c.children = append(c.children, e)
	return e
}

// RemoveChild detaches e. Its relations are kept.
func (c *Component) RemoveChild(e Element) {
	o := e.Base()
	for i, child := range c.children {
		if child.Base() == o {
			c.children = append(c.children[:i:i], c.children[i+1:]...)
			o.parent = nil
			return
		}
	}
}

func (c *Component) Children() []Element {
	return append([]Element(nil), c.children...)
}

func (c *Component) NumChildren() int { return len(c.children) }

func (c *Component) ChildByID(id string) Element {
	if c == nil || id == "" {
		return nil
	}
	for _, child := range c.children {
		if child.Base().id == id {
			return child
		}
	}
	return nil
}

func (c *Component) ChildByName(name string) Element {
	if c == nil {
		return nil
	}
	for _, child := range c.children {
		if child.Base().name == name {
			return child
		}
	}
	return nil
}

// Find resolves id against this component and then its descendants.
func (c *Component) Find(id string) Element {
	if c.id == id {
		return c
	}
	if e := c.ChildByID(id); e != nil {
		return e
	}
	for _, child := range c.children {
		if sub, ok := child.(*Component); ok {
			if e := sub.Find(id); e != nil {
				return e
			}
		}
	}
	return nil
}

func (c *Component) AddController(ctrl *Controller) {
	ctrl.parent = c
	c.controllers = append(c.controllers, ctrl)
}

func (c *Component) Controller(name string) *Controller {
	if c == nil {
		return nil
	}
	for _, ctrl := range c.controllers {
		if ctrl.name == name {
			return ctrl
		}
	}
	return nil
}

func (c *Component) Controllers() []*Controller {
	return append([]*Controller(nil), c.controllers...)
}

func (c *Component) AddTransition(t *Transition) {
	t.owner = c
	c.transitions = append(c.transitions, t)
}

func (c *Component) Transition(name string) *Transition {
	if c == nil {
		return nil
	}
	for _, t := range c.transitions {
		if t.name == name {
			return t
		}
	}
	return nil
}

func (c *Component) Transitions() []*Transition {
	return append([]*Transition(nil), c.transitions...)
}

func (c *Component) applyController(ctrl *Controller) {
	for _, child := range c.children {
		child.Base().applyGears(ctrl)
	}
}

// Dispose stops every transition and drops all relations in the subtree.
func (c *Component) Dispose() {
	for _, t := range c.transitions {
		t.Stop(false, false)
	}
	for _, child := range c.children {
		if sub, ok := child.(*Component); ok {
			sub.Dispose()
			continue
		}
		child.Base().relations.Dispose()
	}
	c.relations.Dispose()
}

func (c *Component) walk(fn func(Element)) {
	fn(c)
	for _, child := range c.children {
		if sub, ok := child.(*Component); ok {
			sub.walk(fn)
			continue
		}
		fn(child)
	}
}
