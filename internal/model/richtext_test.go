package model

import (
	"encoding/json"
	"testing"
)

func TestPlainTextFlattening(t *testing.T) {
	doc := Document{Nodes: []Node{
		{Kind: NodeParagraph, Children: []Node{
			{Kind: NodeText, Text: "La derivada de "},
			{Kind: NodeMath, Formula: "x^2"},
			{Kind: NodeText, Text: " es:"},
		}},
		{Kind: NodeImage, Src: "graph.png", Alt: "gráfica"},
	}}

	want := "La derivada de x^2 es:\ngráfica"
	if got := doc.PlainText(); got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextTable(t *testing.T) {
	doc := Document{Nodes: []Node{
		{Kind: NodeTable, Children: []Node{
			{Kind: NodeTableRow, Children: []Node{
				{Kind: NodeTableCell, Children: []Node{{Kind: NodeText, Text: "a"}}},
				{Kind: NodeTableCell, Children: []Node{{Kind: NodeText, Text: "b"}}},
			}},
			{Kind: NodeTableRow, Children: []Node{
				{Kind: NodeTableCell, Children: []Node{{Kind: NodeText, Text: "c"}}},
			}},
		}},
	}}

	want := "a | b\nc"
	if got := doc.PlainText(); got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestUnknownNodeKindRoundTrips(t *testing.T) {
	raw := `{"nodes":[{"kind":"footnote","text":"nota"}]}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Nodes[0].Kind != "footnote" {
		t.Errorf("kind = %q", doc.Nodes[0].Kind)
	}
	// Unknown kinds render empty rather than failing.
	if got := doc.PlainText(); got != "" {
		t.Errorf("PlainText of unknown kind = %q, want empty", got)
	}
}

func TestDocumentCloneIsDetached(t *testing.T) {
	doc := TextDocument("original")
	clone := doc.Clone()
	clone.Nodes[0].Children[0].Text = "mutado"

	if doc.Nodes[0].Children[0].Text != "original" {
		t.Error("mutating the clone reached the source document")
	}
}

func TestQuestionHelpers(t *testing.T) {
	q := Question{
		ID: 1,
		Options: []Option{
			{ID: 10},
			{ID: 11, IsCorrect: true},
		},
	}

	id, ok := q.CorrectOptionID()
	if !ok || id != 11 {
		t.Errorf("CorrectOptionID = %d, %v", id, ok)
	}
	if !q.HasOption(10) || q.HasOption(99) {
		t.Error("HasOption misreported membership")
	}

	broken := Question{Options: []Option{{ID: 1}, {ID: 2}}}
	if _, ok := broken.CorrectOptionID(); ok {
		t.Error("CorrectOptionID ok on a question with no key")
	}
}

func TestSessionAnsweredCountIgnoresStrays(t *testing.T) {
	sess := &ExamSession{
		Questions: []Question{{ID: 1}, {ID: 2}},
		Answers:   map[int]int{1: 10, 99: 5},
	}
	if got := sess.AnsweredCount(); got != 1 {
		t.Errorf("AnsweredCount = %d, want 1", got)
	}
}
