package header

import "fmt"

// Headers maps a header name to a single Header. Adding a name that is
// already present replaces the value but keeps its original position.
type Headers struct {
	byName map[string]Header
	order  []string
}

func NewHeaders() *Headers {
	return &Headers{
		byName: make(map[string]Header, 8),
	}
}

func (h *Headers) Add(hdr Header) {
	name := hdr.Name()
	if _, exists := h.byName[name]; !exists {
		h.order = append(h.order, name)
	}
	h.byName[name] = hdr
}

func (h *Headers) Get(name string) (Header, error) {
	hdr, ok := h.byName[name]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", name, ErrHeaderNotFound)
	}
	return hdr, nil
}

func (h *Headers) Has(name string) bool {
	_, ok := h.byName[name]
	return ok
}

func (h *Headers) Remove(name string) {
	if _, ok := h.byName[name]; !ok {
		return
	}
	delete(h.byName, name)
	for i, n := range h.order {
		if n == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *Headers) Len() int { return len(h.order) }

func (h *Headers) All() []Header {
	all := make([]Header, 0, len(h.order))
	for _, name := range h.order {
		all = append(all, h.byName[name])
	}
	return all
}
