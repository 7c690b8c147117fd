package block

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeUnstyled, "unstyled"},
		{TypeOrderedListItem, "ordered-list-item"},
		{TypeUnorderedListItem, "unordered-list-item"},
		{TypeHeader, "header"},
		{TypeCodeBlock, "code-block"},
		{TypeBlockquote, "blockquote"},
		{TypeAtomic, "atomic"},
		{Type(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	for _, typ := range []Type{
		TypeUnstyled, TypeOrderedListItem, TypeUnorderedListItem,
		TypeHeader, TypeCodeBlock, TypeBlockquote, TypeAtomic,
	} {
		got, ok := ParseType(typ.String())
		if !ok {
			t.Errorf("ParseType(%q) not ok", typ.String())
		}
		if got != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}
}

func TestParseTypeUnknown(t *testing.T) {
	got, ok := ParseType("marquee")
	if ok {
		t.Error("expected ok=false for unknown type name")
	}
	if got != TypeUnstyled {
		t.Errorf("expected TypeUnstyled fallback, got %v", got)
	}
}

func TestDataBool(t *testing.T) {
	d := Data{"isOpen": false, "text": "hello"}

	if d.Bool("isOpen", true) {
		t.Error("expected isOpen=false")
	}
	if !d.Bool("missing", true) {
		t.Error("expected default true for missing key")
	}
	if !d.Bool("text", true) {
		t.Error("expected default true for non-boolean value")
	}

	var nilData Data
	if !nilData.Bool("isOpen", true) {
		t.Error("expected default true for nil data")
	}
}

func TestIsSection(t *testing.T) {
	tests := []struct {
		name string
		b    Block
		want bool
	}{
		{"depth-0 ordered item", Block{Type: TypeOrderedListItem, Depth: 0}, true},
		{"nested ordered item", Block{Type: TypeOrderedListItem, Depth: 1}, false},
		{"depth-0 unordered item", Block{Type: TypeUnorderedListItem, Depth: 0}, false},
		{"paragraph", Block{Type: TypeUnstyled, Depth: 0}, false},
	}

	for _, tt := range tests {
		if got := tt.b.IsSection(); got != tt.want {
			t.Errorf("%s: IsSection() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsOpenDefault(t *testing.T) {
	b := Block{Type: TypeOrderedListItem}
	if !b.IsOpen() {
		t.Error("expected sections without isOpen data to default open")
	}

	b.Data = Data{"isOpen": false}
	if b.IsOpen() {
		t.Error("expected isOpen=false to close the section")
	}
}

func TestIndexOf(t *testing.T) {
	blocks := []Block{
		{Key: "a"}, {Key: "b"}, {Key: "c"},
	}

	if got := IndexOf(blocks, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(blocks, "z"); got != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", got)
	}
	if got := IndexOf(blocks, ""); got != -1 {
		t.Errorf("IndexOf(\"\") = %d, want -1", got)
	}
}
