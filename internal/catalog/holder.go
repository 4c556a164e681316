package catalog

import "sync/atomic"

// Holder publishes the catalog currently being served. Readers always see a
// complete Catalog; Store swaps in a new one without touching the old.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder returns a holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Load returns the catalog in service.
func (h *Holder) Load() *Catalog { return h.current.Load() }

// Store replaces the catalog in service.
func (h *Holder) Store(c *Catalog) { h.current.Store(c) }
