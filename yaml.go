package strata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeTemplate parses a template from its YAML document form. The
// document mirrors the [Template] structure; node kind is picked by the
// mapping key:
//
//	name: index
//	extends: layout
//	blocks:
//	  - name: content
//	    mode: append
//	    nodes:
//	      - text: "hello"
//	nodes:
//	  - element: div
//	    attrs: {class: row}
//	    children:
//	      - block: content
//	        default:
//	          - text: "placeholder"
//	  - control: if
//	    expr: user
//	    body:
//	      - text: "welcome back"
//
// The format is a serialization of parsed trees, not a template language:
// text, attributes and control expressions stay opaque strings.
func DecodeTemplate(data []byte) (*Template, error) {
	var doc templateDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error decoding template: %w", err)
	}

	t := &Template{
		Name:    doc.Name,
		Extends: doc.Extends,
		Nodes:   unwrapNodes(doc.Nodes),
	}
	for _, b := range doc.Blocks {
		mode, err := ParseMode(b.Mode)
		if err != nil {
			return nil, fmt.Errorf("error decoding template '%s', block '%s': %w", doc.Name, b.Name, err)
		}
		t.Blocks = append(t.Blocks, Block{
			Name:  b.Name,
			Mode:  mode,
			Nodes: unwrapNodes(b.Nodes),
		})
	}
	return t, nil
}

// EncodeTemplate serializes a template to the YAML document form accepted
// by [DecodeTemplate].
func EncodeTemplate(t *Template) ([]byte, error) {
	doc := templateDoc{
		Name:    t.Name,
		Extends: t.Extends,
		Nodes:   wrapNodes(t.Nodes),
	}
	for _, b := range t.Blocks {
		bd := blockDoc{
			Name:  b.Name,
			Nodes: wrapNodes(b.Nodes),
		}
		if b.Mode != ModeReplace {
			bd.Mode = b.Mode.String()
		}
		doc.Blocks = append(doc.Blocks, bd)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding template '%s': %w", t.Name, err)
	}
	return out, nil
}

type templateDoc struct {
	Name    string     `yaml:"name"`
	Extends extendsDoc `yaml:"extends,omitempty"`
	Blocks  []blockDoc `yaml:"blocks,omitempty"`
	Nodes   []nodeDoc  `yaml:"nodes,omitempty"`
}

type blockDoc struct {
	Name  string    `yaml:"name"`
	Mode  string    `yaml:"mode,omitempty"`
	Nodes []nodeDoc `yaml:"nodes,omitempty"`
}

// extendsDoc accepts both a single name and a list of names, so documents
// written by hand can use the scalar form.
type extendsDoc []string

func (e *extendsDoc) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*e = extendsDoc{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*e = extendsDoc(ss)
		return nil
	}
	return fmt.Errorf("line %d: extends must be a name or a list of names", value.Line)
}

func (e extendsDoc) MarshalYAML() (any, error) {
	if len(e) == 1 {
		return e[0], nil
	}
	return []string(e), nil
}

// nodeDoc is the YAML form of a single content node.
type nodeDoc struct {
	Node Node
}

func (n *nodeDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: node must be a mapping", value.Line)
	}

	keys := map[string]bool{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keys[value.Content[i].Value] = true
	}

	switch {
	case keys["text"]:
		var aux textDoc
		if err := value.Decode(&aux); err != nil {
			return err
		}
		n.Node = &Text{Value: aux.Text}
	case keys["element"]:
		var aux elementDoc
		if err := value.Decode(&aux); err != nil {
			return err
		}
		n.Node = &Element{
			Tag:      aux.Element,
			Attrs:    aux.Attrs,
			Children: unwrapNodes(aux.Children),
		}
	case keys["block"]:
		var aux placeholderDoc
		if err := value.Decode(&aux); err != nil {
			return err
		}
		n.Node = &Placeholder{
			Name:    aux.Block,
			Default: unwrapNodes(aux.Default),
		}
	case keys["control"]:
		var aux controlDoc
		if err := value.Decode(&aux); err != nil {
			return err
		}
		n.Node = &Control{
			Keyword: aux.Control,
			Expr:    aux.Expr,
			Body:    unwrapNodes(aux.Body),
			Else:    unwrapNodes(aux.Else),
		}
	default:
		return fmt.Errorf("line %d: unknown node kind (want text, element, block or control)", value.Line)
	}
	return nil
}

func (n nodeDoc) MarshalYAML() (any, error) {
	switch t := n.Node.(type) {
	case *Text:
		return textDoc{Text: t.Value}, nil
	case *Element:
		return elementDoc{Element: t.Tag, Attrs: t.Attrs, Children: wrapNodes(t.Children)}, nil
	case *Placeholder:
		return placeholderDoc{Block: t.Name, Default: wrapNodes(t.Default)}, nil
	case *Control:
		return controlDoc{Control: t.Keyword, Expr: t.Expr, Body: wrapNodes(t.Body), Else: wrapNodes(t.Else)}, nil
	}
	return nil, fmt.Errorf("cannot encode node of type %T", n.Node)
}

type textDoc struct {
	Text string `yaml:"text"`
}

type elementDoc struct {
	Element  string            `yaml:"element"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Children []nodeDoc         `yaml:"children,omitempty"`
}

type placeholderDoc struct {
	Block   string    `yaml:"block"`
	Default []nodeDoc `yaml:"default,omitempty"`
}

type controlDoc struct {
	Control string    `yaml:"control"`
	Expr    string    `yaml:"expr,omitempty"`
	Body    []nodeDoc `yaml:"body,omitempty"`
	Else    []nodeDoc `yaml:"else,omitempty"`
}

func unwrapNodes(docs []nodeDoc) []Node {
	if docs == nil {
		return nil
	}
	out := make([]Node, len(docs))
	for i, d := range docs {
		out[i] = d.Node
	}
	return out
}

func wrapNodes(nodes []Node) []nodeDoc {
	if nodes == nil {
		return nil
	}
	out := make([]nodeDoc, len(nodes))
	for i, n := range nodes {
		out[i] = nodeDoc{Node: n}
	}
	return out
}
