package model

import "strings"

// NodeKind enumerates rich-text node variants. Question and option content
// arrives from the backend as a document tree, not an opaque blob, so the
// engine can flatten it for plain-text surfaces without a full renderer.
type NodeKind string

const (
	NodeParagraph NodeKind = "paragraph"
	NodeText      NodeKind = "text"
	NodeTable     NodeKind = "table"
	NodeTableRow  NodeKind = "tableRow"
	NodeTableCell NodeKind = "tableCell"
	NodeMath      NodeKind = "math"
	NodeImage     NodeKind = "image"
	NodeList      NodeKind = "list"
	NodeListItem  NodeKind = "listItem"
)

// Node is one tagged variant of the document tree. Only the attributes for
// its kind are populated; unknown kinds round-trip through JSON untouched
// and flatten to nothing.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Text     string   `json:"text,omitempty"`    // text
	Formula  string   `json:"formula,omitempty"` // math
	Src      string   `json:"src,omitempty"`     // image
	Alt      string   `json:"alt,omitempty"`     // image
	Children []Node   `json:"children,omitempty"`
}

// Document is a structured rich-text document.
type Document struct {
	Nodes []Node `json:"nodes"`
}

// TextDocument builds a single-paragraph document from a plain string.
func TextDocument(s string) Document {
	return Document{Nodes: []Node{
		{Kind: NodeParagraph, Children: []Node{{Kind: NodeText, Text: s}}},
	}}
}

// PlainText flattens the document to a single string. Block-level nodes are
// separated by newlines, inline nodes joined as-is. Images contribute their
// alt text, math nodes their formula.
func (d Document) PlainText() string {
	var b strings.Builder
	for i, n := range d.Nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		flatten(&b, n)
	}
	return b.String()
}

func flatten(b *strings.Builder, n Node) {
	switch n.Kind {
	case NodeText:
		b.WriteString(n.Text)
	case NodeMath:
		b.WriteString(n.Formula)
	case NodeImage:
		b.WriteString(n.Alt)
	case NodeTableRow, NodeListItem:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(" | ")
			}
			flatten(b, c)
		}
	case NodeParagraph, NodeTable, NodeTableCell, NodeList:
		for i, c := range n.Children {
			if i > 0 && (n.Kind == NodeTable || n.Kind == NodeList) {
				b.WriteByte('\n')
			}
			flatten(b, c)
		}
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	return Document{Nodes: cloneNodes(d.Nodes)}
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].Children = cloneNodes(n.Children)
	}
	return out
}
