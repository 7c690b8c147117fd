// Package app wires the windowing engine to a tcell terminal: it lays
// the rendered window out as text lines, scans block visibility against
// the viewport, and applies the engine's effect commands to the screen.
package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"blockwin/internal/block"
	"blockwin/internal/config"
	"blockwin/internal/document"
	"blockwin/internal/engine"
	"blockwin/internal/event"
	"blockwin/internal/nodetree"
	"blockwin/internal/observe"
	"blockwin/internal/plugin"
	"blockwin/internal/render"
	"blockwin/internal/scroll"
)

// Options configures application startup.
type Options struct {
	// ConfigPath is the TOML configuration file; "" uses defaults plus
	// environment overrides.
	ConfigPath string

	// DocumentPath overrides the configured document file.
	DocumentPath string
}

// Application owns the terminal session: engine, renderer, plugin host,
// document, and the view state derived from them.
type Application struct {
	cfg    config.Config
	bus    *event.Bus
	engine *engine.Engine
	host   *plugin.Host
	rend   *render.Renderer

	screen tcell.Screen
	width  int
	height int

	docPath    string
	doc        *document.Document
	docWatcher *document.Watcher

	manager   *observe.Manager
	corrector *scroll.Corrector
	clamp     *scroll.Clamp

	// view state, owned by the event loop goroutine
	offset   float64
	lines    []viewLine
	tree     *nodetree.Tree
	watchers map[*viewportWatcher]struct{}
	deferred []func()

	selStart string
	selEnd   string

	prevTopKey    string
	prevBottomKey string
}

// New builds the application: configuration, plugins, document, and
// the engine stack. The screen is attached separately via SetScreen.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	a := &Application{
		cfg:      cfg,
		bus:      event.NewBus(),
		host:     plugin.NewHost(),
		watchers: make(map[*viewportWatcher]struct{}),
	}

	for _, script := range cfg.Plugins {
		if err := a.host.LoadFile(script); err != nil {
			a.host.Close()
			return nil, err
		}
	}

	a.rend = render.NewRenderer(a.host.Templates())
	a.rend.SetStyleFunc(a.host.StyleFunc())
	a.engine = engine.New(cfg, a.bus)

	a.manager = observe.NewManager(a.newWatcher, cfg.EdgeOffset, a.onTrigger)
	a.corrector = scroll.NewCorrector(a, scroll.TickFunc(a.deferTick))
	a.clamp = scroll.NewClamp(a)

	a.docPath = cfg.Document
	if opts.DocumentPath != "" {
		a.docPath = opts.DocumentPath
	}
	if a.docPath != "" {
		doc, err := document.Load(a.docPath)
		if err != nil {
			a.host.Close()
			return nil, err
		}
		a.doc = doc
	} else {
		a.doc = sampleDocument()
	}

	return a, nil
}

// SetScreen attaches the terminal screen. Must be called before Run.
func (a *Application) SetScreen(screen tcell.Screen) {
	a.screen = screen
}

// Run initializes the screen and processes events until quit. Returns
// ErrQuit on a normal exit.
func (a *Application) Run() error {
	if a.screen == nil {
		return fmt.Errorf("no screen attached")
	}
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()

	a.width, a.height = a.screen.Size()

	if a.docPath != "" && a.cfg.WatchDocument {
		w, err := document.NewWatcher(a.docPath, 0, a.postReload)
		if err == nil {
			a.docWatcher = w
			defer a.docWatcher.Close()
		}
	}

	_, cmds := a.engine.OnContentChanged(a.doc.Blocks, engine.Selection{})
	a.applyCommands(cmds)

	for {
		a.draw()
		a.drainTicks()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.width, a.height = ev.Size()
			a.screen.Sync()
		case *tcell.EventKey:
			if err := a.handleKey(ev); err != nil {
				return err
			}
		case *tcell.EventInterrupt:
			if doc, ok := ev.Data().(*document.Document); ok {
				a.doc = doc
				_, cmds := a.engine.OnContentChanged(doc.Blocks, engine.Selection{})
				a.applyCommands(cmds)
			}
		}
	}
}

// Shutdown releases resources outside the Run loop.
func (a *Application) Shutdown() {
	if a.docWatcher != nil {
		a.docWatcher.Close()
		a.docWatcher = nil
	}
	a.host.Close()
	a.bus.Close()
}

// handleKey maps keyboard input to engine and view operations.
func (a *Application) handleKey(ev *tcell.EventKey) error {
	page := float64(a.bodyHeight())
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyUp:
		a.scrollBy(-1)
	case tcell.KeyDown:
		a.scrollBy(1)
	case tcell.KeyPgUp:
		a.scrollBy(-page)
	case tcell.KeyPgDn:
		a.scrollBy(page)
	case tcell.KeyHome:
		a.focusEdge(true)
	case tcell.KeyEnd:
		a.focusEdge(false)
	case tcell.KeyEnter:
		a.toggleVisibleSection()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ErrQuit
		case 'k':
			a.scrollBy(-1)
		case 'j':
			a.scrollBy(1)
		case 'g':
			a.focusEdge(true)
		case 'G':
			a.focusEdge(false)
		case ' ':
			a.toggleVisibleSection()
		case 'v':
			a.extendSelection()
		case 'V':
			a.clearSelection()
		case 's':
			a.saveDocument()
		}
	}
	return nil
}

// extendSelection anchors the selection at the topmost visible block,
// or extends it there when already anchored. Selection endpoints stay
// rendered even when the window scrolls away from them.
func (a *Application) extendSelection() {
	key := a.topVisibleKey()
	if key == "" {
		return
	}
	if a.selStart == "" {
		a.selStart = key
	}
	a.selEnd = key

	_, cmds := a.engine.OnSelectionChanged(engine.Selection{
		StartKey: a.selStart,
		EndKey:   a.selEnd,
		HasFocus: true,
	})
	a.applyCommands(cmds)
}

// clearSelection drops the selection endpoints.
func (a *Application) clearSelection() {
	if a.selStart == "" && a.selEnd == "" {
		return
	}
	a.selStart, a.selEnd = "", ""
	_, cmds := a.engine.OnSelectionChanged(engine.Selection{})
	a.applyCommands(cmds)
}

// topVisibleKey returns the block key of the first visible line.
func (a *Application) topVisibleKey() string {
	idx := int(a.offset)
	if idx < 0 || idx >= len(a.lines) {
		return ""
	}
	return a.lines[idx].key
}

// focusEdge scrolls programmatically to the first or last block.
func (a *Application) focusEdge(first bool) {
	if len(a.doc.Blocks) == 0 {
		return
	}
	idx := 0
	if !first {
		idx = len(a.doc.Blocks) - 1
	}
	_, cmds := a.engine.OnFocusRequest(a.doc.Blocks[idx].Key)
	a.applyCommands(cmds)
}

// toggleVisibleSection flips the open state of the topmost visible
// section header and feeds the updated document back to the engine.
func (a *Application) toggleVisibleSection() {
	start := int(a.offset)
	for i := start; i < len(a.lines) && i < start+a.bodyHeight(); i++ {
		if !a.lines[i].section {
			continue
		}
		idx := block.IndexOf(a.doc.Blocks, a.lines[i].key)
		if idx < 0 {
			return
		}
		b := &a.doc.Blocks[idx]
		if b.Data == nil {
			b.Data = block.Data{}
		}
		b.Data["isOpen"] = !b.IsOpen()

		_, cmds := a.engine.OnContentChanged(a.doc.Blocks, engine.Selection{})
		a.applyCommands(cmds)
		return
	}
}

// saveDocument writes the document back to its file, if any.
func (a *Application) saveDocument() {
	if a.docPath == "" {
		return
	}
	if err := document.Save(a.docPath, a.doc); err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
	}
}

// postReload delivers a reloaded document into the event loop.
func (a *Application) postReload(doc *document.Document, err error) {
	if err != nil || a.screen == nil {
		return
	}
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(doc))
}

// sampleDocument is the built-in demo document used when no file is
// configured.
func sampleDocument() *document.Document {
	blocks := []block.Block{
		{Key: "title", Type: block.TypeHeader, Data: block.Data{"text": "blockwin demo"}},
	}
	for s := 1; s <= 4; s++ {
		blocks = append(blocks, block.Block{
			Key:  fmt.Sprintf("section%d", s),
			Type: block.TypeOrderedListItem,
			Data: block.Data{"text": fmt.Sprintf("Section %d", s), "isOpen": true},
		})
		for i := 1; i <= 40; i++ {
			blocks = append(blocks, block.Block{
				Key:   fmt.Sprintf("s%d-p%d", s, i),
				Type:  block.TypeUnstyled,
				Depth: 1,
				Data:  block.Data{"text": fmt.Sprintf("Paragraph %d of section %d", i, s)},
			})
		}
	}
	return &document.Document{Version: 1, Blocks: blocks}
}
