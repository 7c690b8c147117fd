// Package plugin hosts Lua customization scripts. Scripts register
// render templates and extra block classes through a small `blockwin`
// API table; the resulting template map and style hook feed the
// renderer.
package plugin

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"blockwin/internal/block"
	"blockwin/internal/render"
)

// Host owns one Lua state and the customizations scripts registered on
// it. The LState is not goroutine-safe; all entry points serialize
// through the host mutex.
type Host struct {
	mu        sync.Mutex
	L         *lua.LState
	templates render.TemplateMap
	classes   map[block.Type]string
	closed    bool
}

// NewHost creates a host with the default templates and the `blockwin`
// API registered.
func NewHost() *Host {
	h := &Host{
		L:         lua.NewState(),
		templates: render.DefaultTemplates(),
		classes:   make(map[block.Type]string),
	}
	h.registerAPI()
	return h
}

// registerAPI installs the global `blockwin` table.
func (h *Host) registerAPI() {
	tbl := h.L.NewTable()
	h.L.SetField(tbl, "register_template", h.L.NewFunction(h.luaRegisterTemplate))
	h.L.SetField(tbl, "register_class", h.L.NewFunction(h.luaRegisterClass))
	h.L.SetField(tbl, "template", h.L.NewFunction(h.luaTemplate))
	h.L.SetGlobal("blockwin", tbl)
}

// LoadFile runs a plugin script from disk.
func (h *Host) LoadFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	if err := h.L.DoFile(path); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	return nil
}

// LoadString runs an inline plugin script. name labels the chunk in
// error messages.
func (h *Host) LoadString(name, src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	if err := h.L.DoString(src); err != nil {
		return &ScriptError{Path: name, Err: err}
	}
	return nil
}

// Templates returns a copy of the active template map, defaults plus
// script overrides.
func (h *Host) Templates() render.TemplateMap {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.templates.Clone()
}

// StyleFunc returns the class hook backed by script registrations. The
// hook is safe to call after the host is closed.
func (h *Host) StyleFunc() render.StyleFunc {
	return func(f block.Filtered) string {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.classes[f.Type]
	}
}

// Close releases the Lua state. Further loads fail with ErrHostClosed.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

// Lua API. These run on the load goroutine while the host mutex is
// held by LoadFile/LoadString, so they mutate state directly.

// luaRegisterTemplate implements blockwin.register_template(type, tag[, wrapper]).
func (h *Host) luaRegisterTemplate(L *lua.LState) int {
	name := L.CheckString(1)
	tag := L.CheckString(2)
	wrapper := L.OptString(3, "")

	t, ok := block.ParseType(name)
	if !ok {
		L.RaiseError("unknown block type: %s", name)
		return 0
	}
	h.templates[t] = render.Template{Tag: tag, Wrapper: wrapper}
	return 0
}

// luaRegisterClass implements blockwin.register_class(type, class).
func (h *Host) luaRegisterClass(L *lua.LState) int {
	name := L.CheckString(1)
	class := L.CheckString(2)

	t, ok := block.ParseType(name)
	if !ok {
		L.RaiseError("unknown block type: %s", name)
		return 0
	}
	h.classes[t] = class
	return 0
}

// luaTemplate implements blockwin.template(type) -> tag, wrapper.
func (h *Host) luaTemplate(L *lua.LState) int {
	name := L.CheckString(1)

	t, ok := block.ParseType(name)
	if !ok {
		L.RaiseError("unknown block type: %s", name)
		return 0
	}
	tpl := h.templates.Resolve(t)
	L.Push(lua.LString(tpl.Tag))
	L.Push(lua.LString(tpl.Wrapper))
	return 2
}
