package printout

import (
	"strings"
	"testing"
)

func TestExport_ItemsInOrder(t *testing.T) {
	doc, err := Export([]string{"Tequila", "Triple sec", "Salt"})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	html := string(doc)

	if !strings.Contains(html, "<title>Shopping List</title>") {
		t.Error("document should have the Shopping List title")
	}
	if got := strings.Count(html, "<li>"); got != 3 {
		t.Errorf("<li> count = %d, want 3", got)
	}
	iT := strings.Index(html, "<li>Tequila</li>")
	iS := strings.Index(html, "<li>Triple sec</li>")
	iSalt := strings.Index(html, "<li>Salt</li>")
	if iT < 0 || iS < 0 || iSalt < 0 || !(iT < iS && iS < iSalt) {
		t.Errorf("items missing or out of order:\n%s", html)
	}
}

func TestExport_Escapes(t *testing.T) {
	doc, err := Export([]string{`<script>alert("x")</script>`, "Gin & Tonic"})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	html := string(doc)

	if strings.Contains(html, "<script>") {
		t.Error("item markup should be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped item should be present")
	}
	if !strings.Contains(html, "Gin &amp; Tonic") {
		t.Error("ampersand should be escaped")
	}
}

func TestExport_Empty(t *testing.T) {
	doc, err := Export(nil)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if strings.Contains(string(doc), "<li>") {
		t.Error("empty list should render no items")
	}
	if !strings.Contains(string(doc), "<h2>Shopping List</h2>") {
		t.Error("empty list should still render the heading")
	}
}
