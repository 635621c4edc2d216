package strata

// Kind identifies the structural category of a content node.
type Kind int

const (
	KindText Kind = iota
	KindElement
	KindPlaceholder
	KindControl
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindPlaceholder:
		return "placeholder"
	case KindControl:
		return "control"
	}
	return "unknown"
}

// Node is a single node of a parsed template tree. The resolver treats
// every kind except [Placeholder] as opaque: it recurses into children but
// never interprets tags, expressions or text.
type Node interface {
	Kind() Kind
	clone() Node
}

// Text is a run of literal output.
type Text struct {
	Value string
}

// Element is a structural node, typically a markup tag.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []Node
}

// Placeholder marks a named block slot in a template tree. Default holds
// the content used when no descendant template overrides the block.
type Placeholder struct {
	Name    string
	Default []Node
}

// Control is an opaque control-flow node such as a conditional or a loop.
// The resolver recurses into both branches but never evaluates Expr.
type Control struct {
	Keyword string
	Expr    string
	Body    []Node
	Else    []Node
}

// Kind implements Node.
func (*Text) Kind() Kind { return KindText }

// Kind implements Node.
func (*Element) Kind() Kind { return KindElement }

// Kind implements Node.
func (*Placeholder) Kind() Kind { return KindPlaceholder }

// Kind implements Node.
func (*Control) Kind() Kind { return KindControl }

func (n *Text) clone() Node {
	c := *n
	return &c
}

func (n *Element) clone() Node {
	c := &Element{
		Tag:      n.Tag,
		Children: cloneNodes(n.Children),
	}
	if n.Attrs != nil {
		c.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}
	return c
}

func (n *Placeholder) clone() Node {
	return &Placeholder{
		Name:    n.Name,
		Default: cloneNodes(n.Default),
	}
}

func (n *Control) clone() Node {
	return &Control{
		Keyword: n.Keyword,
		Expr:    n.Expr,
		Body:    cloneNodes(n.Body),
		Else:    cloneNodes(n.Else),
	}
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.clone()
	}
	return out
}
