package strata

import "fmt"

// Resolve flattens the extends chain of t into a single template. It walks
// the chain from t to its ultimate ancestor through the loader, merges
// block declarations root-to-child, substitutes every placeholder with its
// final content and returns the result together with advisories for block
// content that was dropped because nothing places it.
//
// The returned template shares no nodes with the inputs: resolution never
// mutates a template handed to it or fetched from the loader.
func Resolve(t *Template, loader Loader) (*Template, []OrphanBlock, error) {
	chain, err := buildChain(t, loader)
	if err != nil {
		return nil, nil, err
	}
	root := chain[0]

	// working block table, seeded with the root's placeholder defaults
	table := blockTable{}
	seedDefaults(table, root.Nodes)

	// apply block declarations in ancestry order so that a descendant's
	// replace wins and append/prepend accumulate oldest-first
	for _, tpl := range chain {
		for _, b := range tpl.Blocks {
			entry, ok := table[b.Name]
			if !ok {
				// a name no ancestor declares: stands alone, prior
				// content does not exist to combine with
				table[b.Name] = &blockEntry{nodes: b.Nodes}
				continue
			}
			switch b.Mode {
			case ModeAppend:
				entry.nodes = concatNodes(entry.nodes, b.Nodes)
			case ModePrepend:
				entry.nodes = concatNodes(b.Nodes, entry.nodes)
			default:
				entry.nodes = b.Nodes
			}
		}
	}

	sub := &substituter{
		table:  table,
		active: map[string]bool{},
		placed: map[string]bool{},
	}
	nodes := sub.apply(root.Nodes)

	var orphans []OrphanBlock
	for _, tpl := range chain {
		for _, b := range tpl.Blocks {
			if !sub.placed[b.Name] {
				orphans = append(orphans, OrphanBlock{Block: b.Name, Template: tpl.Name})
			}
		}
	}

	return &Template{Name: t.Name, Nodes: nodes}, orphans, nil
}

// buildChain follows extends references from t up to the root template,
// validating each template on the way. The returned chain is ordered
// [root, ..., parent, child].
func buildChain(t *Template, loader Loader) ([]*Template, error) {
	var chain []*Template
	visited := map[string]bool{}
	var names []string

	for cur := t; ; {
		if err := cur.Validate(); err != nil {
			return nil, err
		}
		if visited[cur.Name] {
			return nil, &CycleError{Chain: append(names, cur.Name)}
		}
		visited[cur.Name] = true
		names = append(names, cur.Name)
		chain = append(chain, cur)

		if len(cur.Extends) == 0 {
			break
		}
		ref := cur.Extends[0]
		next, err := loader.Load(ref)
		if err != nil {
			return nil, fmt.Errorf("error loading '%s': %w", ref, err)
		}
		if next == nil {
			return nil, &NotFoundError{Name: ref}
		}
		cur = next
	}

	// reverse into root-to-child order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

type blockEntry struct {
	nodes []Node
}

type blockTable map[string]*blockEntry

// seedDefaults records the default content of every placeholder reachable
// in nodes, including placeholders nested inside other defaults.
func seedDefaults(table blockTable, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Placeholder:
			if _, ok := table[n.Name]; !ok {
				table[n.Name] = &blockEntry{nodes: n.Default}
			}
			seedDefaults(table, n.Default)
		case *Element:
			seedDefaults(table, n.Children)
		case *Control:
			seedDefaults(table, n.Body)
			seedDefaults(table, n.Else)
		}
	}
}

// concatNodes returns a fresh slice holding a then b; neither input slice
// is modified.
func concatNodes(a, b []Node) []Node {
	out := make([]Node, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// substituter deep-copies a node tree while replacing placeholders with
// their resolved content. It tracks which block names it actually placed
// so that unplaced declarations can be reported as orphans.
type substituter struct {
	table  blockTable
	active map[string]bool
	placed map[string]bool
}

func (s *substituter) apply(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *Placeholder:
			out = append(out, s.expand(n)...)
		case *Element:
			e := n.clone().(*Element)
			e.Children = s.apply(n.Children)
			out = append(out, e)
		case *Control:
			c := &Control{
				Keyword: n.Keyword,
				Expr:    n.Expr,
				Body:    s.apply(n.Body),
				Else:    s.apply(n.Else),
			}
			out = append(out, c)
		default:
			out = append(out, n.clone())
		}
	}
	return out
}

// expand resolves one placeholder occurrence. Resolved content may itself
// contain placeholders (blocks within blocks), so expansion recurses; a
// block whose content references its own name falls back to the slot's
// default, keeping expansion finite on malformed trees.
func (s *substituter) expand(p *Placeholder) []Node {
	s.placed[p.Name] = true

	if s.active[p.Name] {
		return s.apply(p.Default)
	}

	content := p.Default
	if entry, ok := s.table[p.Name]; ok {
		content = entry.nodes
	}

	s.active[p.Name] = true
	out := s.apply(content)
	delete(s.active, p.Name)
	return out
}
