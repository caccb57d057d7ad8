package filter

import (
	"strings"
	"testing"
)

func TestApplyField(t *testing.T) {
	got, err := Apply(`{"title": "Week 1", "id": 9}`, "title")
	if err != nil {
		t.Fatal(err)
	}
	if got != `"Week 1"` {
		t.Errorf("Expected quoted title, got %s", got)
	}
}

func TestApplyProjection(t *testing.T) {
	body := `{"items": [{"title": "a"}, {"title": "b"}]}`
	got, err := Apply(body, "items[].title")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"a"`) || !strings.Contains(got, `"b"`) {
		t.Errorf("Unexpected projection result: %s", got)
	}
}

func TestApplyNoMatch(t *testing.T) {
	got, err := Apply(`{"id": 1}`, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if got != "null" {
		t.Errorf("Expected null for an unmatched path, got %s", got)
	}
}

func TestApplyInvalidJSON(t *testing.T) {
	if _, err := Apply("not json", "title"); err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

func TestApplyInvalidExpression(t *testing.T) {
	if _, err := Apply(`{}`, "[invalid"); err == nil {
		t.Fatal("Expected error for invalid expression")
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("items[].title") {
		t.Error("Expected valid expression")
	}
	if IsValid("[invalid") {
		t.Error("Expected invalid expression")
	}
}
