package ui

import "fmt"

// Page is one state of a controller.
type Page struct {
	ID   string
	Name string
}

// Controller is a named page switch. Changing the selection applies every
// gear bound to it in the owning component.
type Controller struct {
	name     string
	pages    []Page
	selected int
	parent   *Component
	changed  listenerList
}

func NewController(name string, pages ...Page) *Controller {
	c := &Controller{name: name, pages: append([]Page(nil), pages...)}
	if len(c.pages) == 0 {
		c.selected = -1
	}
	return c
}

func (c *Controller) Name() string { return c.name }

func (c *Controller) Pages() []Page { return append([]Page(nil), c.pages...) }

func (c *Controller) Parent() *Component { return c.parent }

func (c *Controller) SelectedIndex() int { return c.selected }

func (c *Controller) SelectedPage() string {
	if c == nil || c.selected < 0 {
		return ""
	}
	return c.pages[c.selected].Name
}

func (c *Controller) SelectedPageID() string {
	if c == nil || c.selected < 0 {
		return ""
	}
	return c.pages[c.selected].ID
}

// PageIndex returns the index of the page called name, or -1.
func (c *Controller) PageIndex(name string) int {
	for i, p := range c.pages {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (c *Controller) SetSelectedIndex(index int) error {
	if index < 0 || index >= len(c.pages) {
		return fmt.Errorf("ui: controller %q: page index %d out of range [0,%d)", c.name, index, len(c.pages))
	}
	if index == c.selected {
		return nil
	}
	c.selected = index
	if c.parent != nil {
		c.parent.applyController(c)
	}
	c.changed.call()
	return nil
}

// SetSelectedPage selects a page by name. Unknown names select the first
// page.
func (c *Controller) SetSelectedPage(name string) {
	if len(c.pages) == 0 {
		return
	}
	i := c.PageIndex(name)
	if i < 0 {
		i = 0
	}
	_ = c.SetSelectedIndex(i)
}

// OnChanged registers fn for selection changes and returns its remover.
func (c *Controller) OnChanged(fn func()) func() { return c.changed.add(fn) }
