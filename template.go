package strata

import "fmt"

// Mode selects how a block declaration combines with the content inherited
// for the same name.
type Mode int

const (
	// ModeReplace discards the inherited content. It is the zero value,
	// matching a plain block declaration.
	ModeReplace Mode = iota
	// ModeAppend places the declared content after the inherited content.
	ModeAppend
	// ModePrepend places the declared content before the inherited content.
	ModePrepend
)

func (m Mode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	case ModeAppend:
		return "append"
	case ModePrepend:
		return "prepend"
	}
	return "unknown"
}

// ParseMode converts a mode keyword to a Mode. The empty string means
// replace, matching a block declaration with no modifier.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "replace":
		return ModeReplace, nil
	case "append":
		return ModeAppend, nil
	case "prepend":
		return ModePrepend, nil
	}
	return ModeReplace, fmt.Errorf("unknown block mode '%s'", s)
}

// Block is a named block declaration: content that overrides, extends or
// seeds the block of the same name in the template chain.
type Block struct {
	Name  string
	Mode  Mode
	Nodes []Node
}

// Template is one parsed template unit as produced by a front-end parser.
type Template struct {
	// Name identifies the template to the loader and in diagnostics.
	Name string

	// Extends holds the extends directives as parsed. A well-formed
	// template carries at most one; the resolver rejects more.
	Extends []string

	// Blocks are the template's block declarations in source order.
	Blocks []Block

	// Nodes is the template's own content tree. Placeholder nodes in it
	// declare block slots with default content.
	Nodes []Node
}

// Validate checks the template's structural invariants: at most one
// extends directive and unique block names within the template. The
// resolver calls it for every template in a chain.
func (t *Template) Validate() error {
	if len(t.Extends) > 1 {
		return &MultipleExtendsError{Template: t.Name, Refs: append([]string(nil), t.Extends...)}
	}

	seen := make(map[string]struct{}, len(t.Blocks))
	for _, b := range t.Blocks {
		if _, ok := seen[b.Name]; ok {
			return &DuplicateBlockError{Template: t.Name, Block: b.Name}
		}
		seen[b.Name] = struct{}{}
	}
	return checkPlaceholders(t.Name, t.Nodes, seen)
}

// checkPlaceholders rejects a placeholder whose name collides with a
// previously seen declaration in the same template. Placeholders inside
// block override content declare slots for descendant templates and are
// not part of this template's namespace.
func checkPlaceholders(tname string, nodes []Node, seen map[string]struct{}) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Placeholder:
			if _, ok := seen[n.Name]; ok {
				return &DuplicateBlockError{Template: tname, Block: n.Name}
			}
			seen[n.Name] = struct{}{}
			if err := checkPlaceholders(tname, n.Default, seen); err != nil {
				return err
			}
		case *Element:
			if err := checkPlaceholders(tname, n.Children, seen); err != nil {
				return err
			}
		case *Control:
			if err := checkPlaceholders(tname, n.Body, seen); err != nil {
				return err
			}
			if err := checkPlaceholders(tname, n.Else, seen); err != nil {
				return err
			}
		}
	}
	return nil
}
