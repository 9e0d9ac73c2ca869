package app

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/config"
	"github.com/pstuifzand/tui-listproxy/internal/export"
	"github.com/pstuifzand/tui-listproxy/internal/history"
	"github.com/pstuifzand/tui-listproxy/internal/listview"
	"github.com/pstuifzand/tui-listproxy/internal/model"
	"github.com/pstuifzand/tui-listproxy/internal/proxy"
	"github.com/pstuifzand/tui-listproxy/internal/recycler"
	"github.com/pstuifzand/tui-listproxy/internal/search"
	"github.com/pstuifzand/tui-listproxy/internal/socket"
	"github.com/pstuifzand/tui-listproxy/internal/storage"
	"github.com/pstuifzand/tui-listproxy/internal/theme"
	"github.com/pstuifzand/tui-listproxy/internal/ui"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

const (
	promptFilter = "filter"
	promptAdd    = "add"
)

// App is the main application controller
type App struct {
	screen  *ui.Screen
	cfg     *config.Config
	store   *storage.JSONStore
	states  *storage.StateStore
	entries *model.EntryList
	adapter *EntryAdapter
	looper  widget.Looper

	backend     string
	list        proxy.ScrollingViewProxy
	title       *widget.Label
	footer      *widget.Label
	empty       *widget.Label
	extraHeader *widget.Label
	extraFooter *widget.Label

	status        *ui.StatusLine
	prompt        *ui.Prompt
	promptKind    string
	filterHistory *ui.History
	addHistory    *ui.History
	keys          map[rune]KeyBinding
	server        *socket.Server
	scrollRange   string

	dirty     bool
	quit      bool
	debugMode bool
	now       func() time.Time
}

// NewApp creates a new App instance showing the entries stored in filePath
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	screen, err := ui.NewScreenWithTheme(theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	screen.EnableMouse()

	if filePath == "" {
		filePath = "entries.json"
	}
	histories, err := history.NewManager("")
	if err != nil {
		log.Printf("Prompt history is not persisted: %v", err)
	}
	looper := widget.NewScreenLooper(screen.Tcell())
	a, err := newApp(screen, looper, cfg, storage.NewJSONStore(filePath), storage.NewStateStore(""), histories)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return a, nil
}

func newApp(screen *ui.Screen, looper widget.Looper, cfg *config.Config, store *storage.JSONStore, states *storage.StateStore, histories *history.Manager) (*App, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	a := &App{
		screen:  screen,
		cfg:     cfg,
		store:   store,
		states:  states,
		entries: entries,
		looper:  looper,
		backend: cfg.Backend,
		status:  ui.NewStatusLine(cfg.StatusTimeFormat),
		prompt:  ui.NewPrompt(),
		now:     time.Now,
	}
	a.filterHistory = loadHistory(histories, "filter.toml")
	a.addHistory = loadHistory(histories, "add.toml")
	a.keys = make(map[rune]KeyBinding)
	for _, kb := range a.InitializeKeybindings() {
		a.keys[kb.Key] = kb
	}

	a.adapter = NewEntryAdapter(entries, screen.ListStyle())
	a.adapter.RegisterDataSetObserver(&footerObserver{app: a})

	list, err := a.buildList()
	if err != nil {
		return nil, err
	}
	a.list = list
	a.status.Mode = a.modeName()
	a.restoreState()
	return a, nil
}

func loadHistory(m *history.Manager, filename string) *ui.History {
	if m == nil {
		return ui.NewHistory(50)
	}
	h, err := ui.NewHistoryWithManager(50, m, filename)
	if err != nil {
		log.Printf("Failed to load %s: %v", filename, err)
	}
	return h
}

func (a *App) modeName() string {
	if a.backend == config.BackendListView {
		return "LISTVIEW"
	}
	return "RECYCLERVIEW"
}

// buildList creates the configured backend and wraps it in a proxy. Past
// this point the app only talks to the proxy.
func (a *App) buildList() (proxy.ScrollingViewProxy, error) {
	lc := a.cfg.List
	feedback := widget.BellFeedback{Screen: a.screen.Tcell()}

	var list proxy.ScrollingViewProxy
	switch a.backend {
	case config.BackendListView:
		lv := listview.New(a.looper)
		lv.Style = a.screen.ListStyle()
		lv.SetFeedback(feedback)
		lv.SetLongPressTimeout(lc.LongPressTimeout())
		lv.SetWheelStep(lc.WheelStep)
		lv.SetSmoothScrollStep(lc.SmoothScrollStep)
		list = proxy.NewListViewProxy(lv)
	case config.BackendRecycler:
		rv := recycler.NewView(a.looper)
		rv.Style = a.screen.ListStyle()
		rv.SetFeedback(feedback)
		rv.SetWheelStep(lc.WheelStep)
		rv.SetSmoothScrollStep(lc.SmoothScrollStep)
		p, err := proxy.NewRecyclerViewProxy(rv)
		if err != nil {
			return nil, err
		}
		p.LinearRecyclerView().SetLongPressTimeout(lc.LongPressTimeout())
		list = p
	default:
		return nil, fmt.Errorf("unknown backend %q", a.backend)
	}

	a.title = widget.NewLabel(a.modeName(), a.screen.HeaderStyle())
	a.footer = widget.NewLabel("", a.screen.FooterStyle())
	a.empty = widget.NewLabel("No entries", a.screen.EmptyStyle())

	list.AddHeaderViewWithData(a.title, a.modeName(), false)
	list.AddFooterViewWithData(a.footer, nil, false)
	list.SetEmptyView(a.empty)
	list.SetVerticalScrollBarEnabled(lc.ScrollBar)
	a.report(list.SetSelector(a.screen.SelectorStyle()))
	if lc.DividerHeight > 0 {
		a.report(list.SetDividerHeight(lc.DividerHeight))
	}

	list.SetOnScrollListener(proxy.ScrollListenerFuncs{
		Scroll: func(p proxy.ScrollingViewProxy, first, visible, total int) {
			a.scrollRange = fmt.Sprintf("%d-%d/%d", first, first+visible-1, total)
		},
	})
	list.SetOnItemClickListener(a.onItemClick)
	list.SetOnItemLongClickListener(a.onItemLongClick)
	list.SetAdapter(a.adapter)
	a.updateFooter()
	return list, nil
}

// report shows err in the status line. Unsupported operations are expected
// on the recycler and are only noted.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, errors.ErrUnsupported) {
		a.status.Messages.AddMessage(err.Error())
		return
	}
	a.status.Messages.AddError(err.Error())
}

type footerObserver struct {
	app *App
}

func (o *footerObserver) OnChanged()     { o.app.updateFooter() }
func (o *footerObserver) OnInvalidated() { o.app.updateFooter() }

func (a *App) updateFooter() {
	n := a.adapter.Count()
	text := fmt.Sprintf("%d entries", n)
	if f := a.adapter.Filter(); f != "" {
		text = fmt.Sprintf("%d of %d entries match /%s", n, a.entries.Len(), f)
		a.empty.SetText(fmt.Sprintf("No entries match /%s", f))
	} else {
		a.empty.SetText("No entries")
	}
	a.footer.SetText(text)
}

func (a *App) onItemClick(parent widget.Container, view widget.View, position int, id int64) {
	item, _ := a.list.ItemAtPosition(position)
	if a.debugMode {
		log.Printf("Clicked position %d (id %d):\n%s", position, id, spew.Sdump(item))
	}
	if e, ok := item.(*model.Entry); ok && a.debugMode && a.adapter.Filter() != "" {
		a.SetStatus(fmt.Sprintf("#%d %s", e.ID, search.Explain(e, a.adapter.FilterExpr())))
		return
	}
	a.SetStatus(fmt.Sprintf("Clicked position %d (id %d): %v", position, id, item))
}

func (a *App) onItemLongClick(parent widget.Container, view widget.View, position int, id int64) bool {
	e, ok := a.adapter.Remove(position - a.list.HeaderViewsCount())
	if !ok {
		return false
	}
	a.dirty = true
	a.SetStatus(fmt.Sprintf("Deleted %q", e.Text))
	return true
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	// Create a channel for events
	eventChan := make(chan tcell.Event)

	// Start event polling goroutine
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	var socketChan <-chan socket.Message
	if a.server != nil {
		socketChan = a.server.Messages()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				a.quit = true
				continue
			}
			a.handleRawEvent(ev)
		case msg := <-socketChan:
			a.handleSocketMessage(msg)
		case <-ticker.C:
			a.render()
		}
	}

	return a.shutdown()
}

// StartSocketServer accepts commands from other processes while Run is
// active
func (a *App) StartSocketServer(pid int) error {
	server, err := socket.NewServer(pid)
	if err != nil {
		return err
	}
	server.Start()
	a.server = server
	return nil
}

// shutdown saves the entries and the list state
func (a *App) shutdown() error {
	var errs []error
	if a.dirty {
		errs = append(errs, a.Save())
	}
	errs = append(errs, a.saveState())
	return errors.Join(errs...)
}

// Close closes the application
func (a *App) Close() error {
	if a.server != nil {
		a.server.Stop()
		a.server = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

func (a *App) listRect() widget.Rect {
	width, height := a.screen.Size()
	h := height - 1
	if a.prompt.IsActive() {
		h--
	}
	return widget.Rect{X: 0, Y: 0, W: width, H: max(0, h)}
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	_, height := a.screen.Size()

	a.list.Draw(a.screen.Tcell(), a.listRect())
	if a.list.Visibility() == widget.Invisible {
		a.screen.DrawString(0, 0, "(list hidden, press v)", a.screen.EmptyStyle())
	}

	a.prompt.Render(a.screen, height-2)

	a.status.Mode = a.modeName()
	if a.scrollRange != "" {
		a.status.Mode += " " + a.scrollRange
	}
	a.status.Draw(a.screen, height-1, a.now())

	a.screen.Show()
}

// handleRawEvent processes a tcell event
func (a *App) handleRawEvent(ev tcell.Event) {
	if widget.RunInterrupt(ev) {
		return
	}
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKeypress(ev)
	case *tcell.EventMouse:
		a.list.HandleEvent(ev)
	}
}

// handleKeypress dispatches a key press to the prompt or the key bindings
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %s", ev.Name()))
	}

	if a.prompt.IsActive() {
		a.handlePromptKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyDown:
		a.scrollLines(1)
	case tcell.KeyUp:
		a.scrollLines(-1)
	case tcell.KeyPgDn:
		a.list.SmoothScrollBy(a.page(), 200*time.Millisecond)
	case tcell.KeyPgUp:
		a.list.SmoothScrollBy(-a.page(), 200*time.Millisecond)
	case tcell.KeyHome:
		a.list.SetSelectionAfterHeaderView()
	case tcell.KeyEnd:
		a.list.SetSelection(a.list.Count() - 1)
	case tcell.KeyCtrlC:
		a.Quit()
	case tcell.KeyEscape:
		if a.adapter.Filter() != "" {
			a.adapter.SetFilter("")
			a.SetStatus("Filter cleared")
		}
	case tcell.KeyRune:
		if kb, ok := a.keys[ev.Rune()]; ok {
			kb.Handler(a)
		}
	}
}

func (a *App) handlePromptKey(ev *tcell.EventKey) {
	res := a.prompt.HandleKey(ev)
	input := a.prompt.Input()
	switch a.promptKind {
	case promptFilter:
		switch res {
		case ui.PromptCanceled:
			a.adapter.SetFilter("")
		default:
			a.adapter.SetFilter(strings.TrimSpace(input))
		}
		if res != ui.PromptAccepted {
			return
		}
		if err := a.adapter.FilterError(); err != nil {
			a.SetError(fmt.Sprintf("Filter: %v (using fuzzy match)", err))
		} else if a.debugMode {
			log.Printf("Filter %q:\n%s", a.adapter.Filter(), search.ExpressionString(a.adapter.FilterExpr()))
		}
	case promptAdd:
		if res == ui.PromptAccepted {
			a.AddEntry(input)
		}
	}
}

func (a *App) page() int {
	return max(1, a.listRect().H-1)
}

// scrollLines scrolls by n rows, falling back to an instant smooth scroll
// on backends without ScrollBy
func (a *App) scrollLines(n int) {
	err := a.list.ScrollBy(0, n)
	if errors.Is(err, errors.ErrUnsupported) {
		a.list.SmoothScrollBy(n, 0)
	}
}

// firstVisibleEntry returns the content position of the first visible
// entry, or false when no entry is visible
func (a *App) firstVisibleEntry() (int, bool) {
	headers := a.list.HeaderViewsCount()
	first := a.list.FirstVisiblePosition()
	if first == proxy.InvalidPosition {
		return 0, false
	}
	position := max(first, headers) - headers
	if position >= a.adapter.Count() || position+headers > a.list.LastVisiblePosition() {
		return 0, false
	}
	return position, true
}

// AddEntry appends an entry and scrolls it into view
func (a *App) AddEntry(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	a.adapter.Add(text)
	a.dirty = true
	a.list.SmoothScrollToPosition(a.list.Count() - a.list.FooterViewsCount() - 1)
	a.SetStatus(fmt.Sprintf("Added %q", text))
	return true
}

// DeleteFirstVisible removes the first visible entry
func (a *App) DeleteFirstVisible() {
	position, ok := a.firstVisibleEntry()
	if !ok {
		a.SetError("No visible entry to delete")
		return
	}
	e, _ := a.adapter.Remove(position)
	a.dirty = true
	a.SetStatus(fmt.Sprintf("Deleted %q", e.Text))
}

// ToggleExtraHeader adds a second header, or removes it when present
func (a *App) ToggleExtraHeader() {
	if a.extraHeader != nil {
		a.list.RemoveHeaderView(a.extraHeader)
		a.extraHeader = nil
		a.SetStatus("Removed extra header")
		return
	}
	a.extraHeader = widget.NewLabel("extra header", a.screen.HeaderStyle())
	a.list.AddHeaderViewWithData(a.extraHeader, "extra header", true)
	a.SetStatus("Added extra header")
}

// ToggleExtraFooter adds a second footer, or removes it when present
func (a *App) ToggleExtraFooter() {
	if a.extraFooter != nil {
		a.list.RemoveFooterView(a.extraFooter)
		a.extraFooter = nil
		a.SetStatus("Removed extra footer")
		return
	}
	a.extraFooter = widget.NewLabel("extra footer", a.screen.FooterStyle())
	a.list.AddFooterViewWithData(a.extraFooter, "extra footer", true)
	a.SetStatus("Added extra footer")
}

// CycleChoiceMode steps through the choice modes the backend supports
func (a *App) CycleChoiceMode() {
	mode, err := a.list.ChoiceMode()
	if err != nil {
		a.report(err)
		return
	}
	next := (mode + 1) % (proxy.ChoiceModeMultipleModal + 1)
	if err := a.list.SetChoiceMode(next); err != nil {
		a.report(err)
		return
	}
	a.SetStatus("Choice mode: " + next.String())
}

// ToggleVisibility hides or shows the list
func (a *App) ToggleVisibility() {
	if a.list.Visibility() == widget.Invisible {
		a.list.SetVisibility(widget.Visible)
	} else {
		a.list.SetVisibility(widget.Invisible)
	}
	a.SetStatus("List " + strings.ToLower(a.list.Visibility().String()))
}

// ExportMarkdown writes the entries next to the entry file
func (a *App) ExportMarkdown() {
	path := strings.TrimSuffix(a.store.FilePath, filepath.Ext(a.store.FilePath)) + ".md"
	if err := export.ExportToMarkdown(a.entries.Title, a.list, path); err != nil {
		a.SetError("Export failed: " + err.Error())
		return
	}
	a.SetStatus("Exported to " + path)
}

func (a *App) restoreState() {
	if a.states == nil {
		return
	}
	data, ok, err := a.states.Load(a.backend)
	if err != nil {
		log.Printf("Failed to load list state: %v", err)
		return
	}
	if !ok {
		return
	}
	if err := a.list.RestoreState(data); err != nil {
		log.Printf("Failed to restore list state: %v", err)
	}
}

func (a *App) saveState() error {
	if a.states == nil {
		return nil
	}
	data, err := a.list.SaveState()
	if err != nil {
		return fmt.Errorf("failed to save list state: %w", err)
	}
	return a.states.Save(a.backend, data)
}

// Save saves the entries to the file
func (a *App) Save() error {
	if err := a.store.Save(a.entries); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.status.Messages.AddMessage(msg)
}

// SetError sets an error message in the status line
func (a *App) SetError(msg string) {
	a.status.Messages.AddError(msg)
}

// Quit quits the application
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode shows key events in the status line
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
