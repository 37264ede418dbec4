package scene

import (
	"stickerpad/element"
)

type baseEntry struct {
	key   string
	prims []Primitive
}

// Cache owns the visuals of a document and the immutable base geometry each
// one is scaled from. Base geometry is rebuilt only when a base-affecting
// property changes, never because the element was resized.
type Cache struct {
	factory Factory
	base    map[string]baseEntry
	visuals map[string]Visual
}

// NewCache returns a cache creating visuals with f. A nil factory uses Frame
// visuals.
func NewCache(f Factory) *Cache {
	if f == nil {
		f = FactoryFunc(NewFrame)
	}
	return &Cache{
		factory: f,
		base:    make(map[string]baseEntry),
		visuals: make(map[string]Visual),
	}
}

// Base returns the cached base geometry for el, building it if the element is
// new or a base-affecting property changed.
func (c *Cache) Base(el element.Element) []Primitive {
	id := el.Base().ID
	key := baseKey(el)
	if e, ok := c.base[id]; ok && e.key == key {
		return e.prims
	}
	prims := BaseGeometry(el)
	c.base[id] = baseEntry{key: key, prims: prims}
	return prims
}

// Refresh recreates the visual for el from its base geometry and scale.
func (c *Cache) Refresh(el element.Element) Visual {
	v := c.factory.CreateVisual(el, OriginX, OriginY)
	if v == nil {
		delete(c.visuals, el.Base().ID)
		return nil
	}
	if s, ok := v.(Shaper); ok {
		s.SetShape(c.Base(el), el.Base().ScaleX, el.Base().ScaleY)
	}
	c.visuals[el.Base().ID] = v
	return v
}

// Sync makes the cache match els exactly: every element gets a fresh visual
// and visuals of removed elements are dropped.
func (c *Cache) Sync(els []element.Element) {
	keep := make(map[string]bool, len(els))
	for _, el := range els {
		keep[el.Base().ID] = true
		c.Refresh(el)
	}
	for id := range c.visuals {
		if !keep[id] {
			c.Remove(id)
		}
	}
	for id := range c.base {
		if !keep[id] {
			delete(c.base, id)
		}
	}
}

func (c *Cache) Remove(id string) {
	delete(c.visuals, id)
	delete(c.base, id)
}

func (c *Cache) Visual(id string) Visual {
	return c.visuals[id]
}

func (c *Cache) Len() int {
	return len(c.visuals)
}

func (c *Cache) SetInteractive(on bool) {
	for _, v := range c.visuals {
		v.SetInteractive(on)
	}
}

// Reset drops every visual and base entry.
func (c *Cache) Reset() {
	c.base = make(map[string]baseEntry)
	c.visuals = make(map[string]Visual)
}
