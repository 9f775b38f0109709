package extract

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name: "strips page chrome",
			markup: `<html><head><title>Rooms</title><style>.x{color:red}</style>
<script>var secret = "script text";</script></head>
<body>
<header>Site Header</header>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<main>
  <h1>Available rooms</h1>
  <p>Room 12: single, 450 EUR</p>
  <p>Room 14: double, 620 EUR</p>
</main>
<footer>© 2026 Landlord</footer>
<script>trackVisitor()</script>
</body></html>`,
			want: "Rooms\nAvailable rooms\nRoom 12: single, 450 EUR\nRoom 14: double, 620 EUR",
		},
		{
			name:   "collapses whitespace-only lines",
			markup: "<div>\n\n   first   \n\t\n second\r\nthird </div>",
			want:   "first\nsecond\nthird",
		},
		{
			name:   "nested removed elements",
			markup: `<body><header><div><p>deep header</p></div></header><p>kept</p></body>`,
			want:   "kept",
		},
		{
			name:   "comments are not text",
			markup: `<body><!-- hidden --><p>visible</p></body>`,
			want:   "visible",
		},
		{
			name:   "noscript content parses as markup",
			markup: `<body><noscript><p>enable js</p></noscript><p>after</p></body>`,
			want:   "enable js\nafter",
		},
		{
			name:   "empty document",
			markup: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.markup)
			if err != nil {
				t.Fatalf("Text: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Text() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestText_NeverLeaksRemovedText(t *testing.T) {
	markup := `<body>
<p>alpha</p>
<script>LEAK1</script><style>LEAK2</style><nav>LEAK3</nav>
<p>beta</p>
<footer><span>LEAK4</span></footer><header>LEAK5</header>
<p>gamma</p>
</body>`
	got, err := Text(markup)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if strings.Contains(got, "LEAK") {
		t.Errorf("removed element text leaked: %q", got)
	}
	if got != "alpha\nbeta\ngamma" {
		t.Errorf("order not preserved: %q", got)
	}
}

func TestNormalizeLines(t *testing.T) {
	got := NormalizeLines("  a  \n\n\tb\u2028c\r\n  \n")
	if diff := cmp.Diff("a\nb\nc", got); diff != "" {
		t.Errorf("NormalizeLines mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkupExtractor_Extract(t *testing.T) {
	got, err := MarkupExtractor{}.Extract("<p>one</p><script>x</script><p>two</p>")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "one\ntwo" {
		t.Errorf("Extract = %q", got)
	}
}

func TestNewReadabilityExtractor_RejectsRelativeURL(t *testing.T) {
	if _, err := NewReadabilityExtractor("/rooms"); err == nil {
		t.Fatal("expected error for relative URL")
	}
}
