package strata

// Loader resolves a template name to its parsed template. It stands in for
// whatever storage the caller uses; the resolver only ever asks it to
// resolve the extends references it encounters. A loader must fail fast
// with an error matching [ErrTemplateNotFound] for unknown names rather
// than block or return a nil template.
type Loader interface {
	Load(name string) (*Template, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (*Template, error)

// Load implements Loader.
func (f LoaderFunc) Load(name string) (*Template, error) { return f(name) }

// MapLoader serves templates from an in-memory map keyed by name. Reads of
// a populated map are safe from concurrent resolutions; populating the map
// while resolving is the caller's problem.
type MapLoader map[string]*Template

// Load implements Loader.
func (m MapLoader) Load(name string) (*Template, error) {
	t, ok := m[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return t, nil
}
