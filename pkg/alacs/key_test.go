package alacs

import "testing"

func TestNewKeyRejectsNewline(t *testing.T) {
	if _, err := NewKey("has\nnewline"); err == nil {
		t.Fatal("expected an error for a key containing a newline")
	}
}

func TestNewKeyAccepts(t *testing.T) {
	k, err := NewKey("plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Text != "plain" {
		t.Fatalf("Text = %q, want %q", k.Text, "plain")
	}
	if k.BlankLineBefore || k.CommentBefore != nil {
		t.Fatal("a fresh Key should carry no annotations")
	}
}

func TestDictSetOverwritesInPlace(t *testing.T) {
	d := NewDict()
	k1, _ := NewKey("k")
	d.Set(k1, NewText("one"))
	k2, _ := NewKey("k")
	k2.BlankLineBefore = true
	d.Set(k2, NewText("two"))

	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	v, k, ok := d.Get("k")
	if !ok {
		t.Fatal("expected key k to be present")
	}
	if !k.BlankLineBefore {
		t.Fatal("overwrite should replace annotations")
	}
	text, ok := v.(*Text)
	if !ok || text.Lines.String() != "two" {
		t.Fatalf("value = %#v, want Text(\"two\")", v)
	}
}

func TestDictEntriesPreserveInsertionOrder(t *testing.T) {
	d := NewDict()
	for _, name := range []string{"c", "a", "b"} {
		k, _ := NewKey(name)
		d.Set(k, NewText(name))
	}
	entries := d.Entries()
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Key.Text
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entries order = %v, want %v", got, want)
		}
	}
}

func TestDictHasAndGetMissing(t *testing.T) {
	d := NewDict()
	if d.Has("nope") {
		t.Fatal("empty dict should not have any key")
	}
	if _, _, ok := d.Get("nope"); ok {
		t.Fatal("Get on missing key should report false")
	}
}
