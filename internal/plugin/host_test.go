package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blockwin/internal/block"
	"blockwin/internal/render"
)

func TestRegisterTemplate(t *testing.T) {
	h := NewHost()
	defer h.Close()

	err := h.LoadString("test", `blockwin.register_template("code-block", "code", "pre")`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	tpl := h.Templates().Resolve(block.TypeCodeBlock)
	if tpl.Tag != "code" || tpl.Wrapper != "pre" {
		t.Errorf("template = %+v, want {code pre}", tpl)
	}
}

func TestRegisterTemplateWithoutWrapper(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadString("test", `blockwin.register_template("header", "h1")`); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	tpl := h.Templates().Resolve(block.TypeHeader)
	if tpl.Tag != "h1" || tpl.Wrapper != "" {
		t.Errorf("template = %+v, want {h1}", tpl)
	}
}

func TestRegisterTemplateUnknownType(t *testing.T) {
	h := NewHost()
	defer h.Close()

	err := h.LoadString("test", `blockwin.register_template("marquee", "div")`)
	if err == nil {
		t.Fatal("expected error for unknown block type")
	}
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Errorf("err = %T, want *ScriptError", err)
	}
}

func TestTemplateGetter(t *testing.T) {
	h := NewHost()
	defer h.Close()

	script := `
tag, wrapper = blockwin.template("ordered-list-item")
if tag ~= "li" or wrapper ~= "ol" then
	error("unexpected default template: " .. tag .. "/" .. wrapper)
end
`
	if err := h.LoadString("test", script); err != nil {
		t.Errorf("getter script failed: %v", err)
	}
}

func TestRegisterClass(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadString("test", `blockwin.register_class("blockquote", "muted")`); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	style := h.StyleFunc()
	got := style(block.Filtered{Block: block.Block{Type: block.TypeBlockquote}})
	if got != "muted" {
		t.Errorf("class = %q, want muted", got)
	}
	if style(block.Filtered{Block: block.Block{Type: block.TypeUnstyled}}) != "" {
		t.Error("unregistered type should have no extra class")
	}
}

func TestStyleFuncFeedsRenderer(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadString("test", `blockwin.register_class("unstyled", "plain")`); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	r := render.NewRenderer(h.Templates())
	r.SetStyleFunc(h.StyleFunc())

	specs := r.Render([]block.Filtered{
		{Block: block.Block{Key: "a", Type: block.TypeUnstyled}},
	})
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if specs[0].Class != "unstyled depth0 plain" {
		t.Errorf("class = %q, want trailing plain", specs[0].Class)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.lua")
	script := []byte(`blockwin.register_template("atomic", "embed")`)
	if err := os.WriteFile(path, script, 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewHost()
	defer h.Close()

	if err := h.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if tpl := h.Templates().Resolve(block.TypeAtomic); tpl.Tag != "embed" {
		t.Errorf("template tag = %q, want embed", tpl.Tag)
	}
}

func TestLoadFileMissing(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadFile(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestLoadAfterClose(t *testing.T) {
	h := NewHost()
	h.Close()
	h.Close() // idempotent

	if err := h.LoadString("test", `return`); !errors.Is(err, ErrHostClosed) {
		t.Errorf("err = %v, want ErrHostClosed", err)
	}
}
