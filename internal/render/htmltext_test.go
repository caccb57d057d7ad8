package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextStripsTags(t *testing.T) {
	if got := Text("<p>Info</p>"); got != "Info" {
		t.Errorf("Expected Info, got %q", got)
	}
}

func TestTextEmptyFragment(t *testing.T) {
	if got := Text(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestTextParagraphBreaks(t *testing.T) {
	got := Text("<p>First</p><p>Second</p>")
	want := "First\n\nSecond"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTextLineBreaks(t *testing.T) {
	got := Text("one<br>two<br/>three")
	want := "one\ntwo\nthree"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTextListItems(t *testing.T) {
	got := Lines(`<ul><li>read chapter 1</li><li class="x">solve exercises</li></ul>`)
	want := []string{"- read chapter 1", "- solve exercises"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List rendering mismatch (-want +got):\n%s", diff)
	}
}

func TestTextUnescapesEntities(t *testing.T) {
	if got := Text("<p>Tom &amp; Jerry &lt;3</p>"); got != "Tom & Jerry <3" {
		t.Errorf("Expected unescaped entities, got %q", got)
	}
}

func TestTextDropsScripts(t *testing.T) {
	got := Text(`<p>safe</p><script>alert("x")</script>`)
	if got != "safe" {
		t.Errorf("Expected script content removed, got %q", got)
	}
}

func TestLinesNilForEmpty(t *testing.T) {
	if got := Lines("<p>   </p>"); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestExcerptClips(t *testing.T) {
	got := Excerpt("<p>The quick brown fox jumps over the lazy dog</p>", 19)
	if got != "The quick brown ..." {
		t.Errorf("Unexpected excerpt: %q", got)
	}
	if len([]rune(got)) != 19 {
		t.Errorf("Excerpt exceeds limit: %d runes", len([]rune(got)))
	}
}

func TestExcerptShortTextUntouched(t *testing.T) {
	if got := Excerpt("<p>short</p>", 40); got != "short" {
		t.Errorf("Expected unchanged text, got %q", got)
	}
}

func TestExcerptCollapsesWhitespace(t *testing.T) {
	got := Excerpt("<p>a</p><p>b</p>", 40)
	if got != "a b" {
		t.Errorf("Expected single-line excerpt, got %q", got)
	}
}
