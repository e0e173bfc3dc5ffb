package yamlout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elioetibr/alacs/pkg/alacs"
)

func TestEncodeEnvelope(t *testing.T) {
	file := alacs.NewFile()
	k, _ := alacs.NewKey("k")
	file.Dict.Set(k, alacs.NewText("v"))

	out := string(NewEncoder().Encode(file))
	if !strings.HasPrefix(out, "--- !map\n") {
		t.Fatalf("output missing document header: %q", out)
	}
	if !strings.HasSuffix(out, "...\n") {
		t.Fatalf("output missing document footer: %q", out)
	}
}

func TestEncodeTextIsLiteralBlock(t *testing.T) {
	file := alacs.NewFile()
	k, _ := alacs.NewKey("k")
	file.Dict.Set(k, alacs.NewText("line one"))

	out := string(NewEncoder().Encode(file))
	if !strings.Contains(out, `"k": |2-`) {
		t.Fatalf("expected a literal-block scalar for key k, got:\n%s", out)
	}
	if !strings.Contains(out, "  line one\n") {
		t.Fatalf("expected the literal line to be indented, got:\n%s", out)
	}
}

func TestEncodeTrailingEmptyLineUsesKeepChomp(t *testing.T) {
	file := alacs.NewFile()
	k, _ := alacs.NewKey("k")
	file.Dict.Set(k, alacs.NewText("line one", ""))

	out := string(NewEncoder().Encode(file))
	if !strings.Contains(out, `|2+`) {
		t.Fatalf("expected a keep-chomp literal block, got:\n%s", out)
	}
}

func TestEncodeHashbangTag(t *testing.T) {
	file := alacs.NewFile()
	file.Hashbang = alacs.NewComment("/usr/bin/env alacs")
	k, _ := alacs.NewKey("k")
	file.Dict.Set(k, alacs.NewText("v"))

	out := string(NewEncoder().Encode(file))
	if !strings.Contains(out, "#!/usr/bin/env alacs\n") {
		t.Fatalf("expected a hashbang tag line, got:\n%s", out)
	}
}

func TestEncodeBlankLineMarker(t *testing.T) {
	file := alacs.NewFile()
	a, _ := alacs.NewKey("a")
	file.Dict.Set(a, alacs.NewText("1"))
	b, _ := alacs.NewKey("b")
	b.BlankLineBefore = true
	file.Dict.Set(b, alacs.NewText("2"))

	out := string(NewEncoder().Encode(file))
	if !strings.Contains(out, "#0b\n") {
		t.Fatalf("expected a root-depth blank marker tag, got:\n%s", out)
	}
}

func TestEncodeKeyCommentTag(t *testing.T) {
	file := alacs.NewFile()
	k, _ := alacs.NewKey("k")
	k.CommentBefore = alacs.NewComment("note")
	file.Dict.Set(k, alacs.NewText("v"))

	out := string(NewEncoder().Encode(file))
	if !strings.Contains(out, "#0k:note\n") {
		t.Fatalf("expected a key-comment tag at root depth, got:\n%s", out)
	}
}

func TestEncodeEmptyListAndDict(t *testing.T) {
	file := alacs.NewFile()
	lk, _ := alacs.NewKey("l")
	file.Dict.Set(lk, &alacs.List{Items: nil})
	dk, _ := alacs.NewKey("d")
	file.Dict.Set(dk, alacs.NewDict())

	out := string(NewEncoder().Encode(file))
	if !strings.Contains(out, `"l": []`) {
		t.Fatalf("expected an empty-list flow marker, got:\n%s", out)
	}
	if !strings.Contains(out, `"d": {}`) {
		t.Fatalf("expected an empty-dict flow marker, got:\n%s", out)
	}
}

func TestEscapeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{`plain`, `plain`},
		{`has"quote`, `has\"quote`},
		{`has\backslash`, `has\\backslash`},
		{"has\ttab", `has\ttab`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeKey(tt.in), "escapeKey(%q)", tt.in)
	}
}

func TestEncodeListItemMarker(t *testing.T) {
	file := alacs.NewFile()
	k, _ := alacs.NewKey("k")
	file.Dict.Set(k, &alacs.List{Items: []alacs.Value{alacs.NewText("x")}})

	out := string(NewEncoder().Encode(file))
	if !strings.Contains(out, "- |2-\n") {
		t.Fatalf("expected a list item marker, got:\n%s", out)
	}
}
