package tui

import (
	"context"
	"strings"
	"time"

	"treeline-cli/internal/editsignal"
	"treeline-cli/internal/keymap"
	"treeline-cli/internal/registry"
	"treeline-cli/internal/state"
	"treeline-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const mainTreeID = "main"

type inputMode int

const (
	inputNone inputMode = iota
	inputRename
	inputCreate
)

// mailbox carries signals produced synchronously during dispatch (store
// subscription, edit-signal bus) back to the Update loop.
type mailbox struct {
	dirty      bool
	editTarget string
}

type appModel struct {
	store store.Store
	st    *state.Store

	dispatcher *keymap.Dispatcher
	registry   *registry.Registry
	bus        *editsignal.Bus
	mail       *mailbox

	width  int
	height int

	input    textinput.Model
	mode     inputMode
	renameID string

	showHelp bool
	status   string
}

func newAppModel(s store.Store, db *store.DB) appModel {
	st := state.New(db.Nodes)

	// Restore last selection/expansion, best effort.
	if ts, err := s.LoadTUIState(); err == nil {
		if len(ts.ExpandedIDs) > 0 {
			st.SetExpanded(ts.ExpandedIDs)
		}
		if ts.SelectedID != "" {
			st.Select(ts.SelectedID)
		}
	}
	if st.State().SelectedID == "" {
		if flat := st.State().Flat; len(flat) > 0 {
			st.Select(flat[0].ID)
		}
	}

	mail := &mailbox{}
	st.Subscribe(func() { mail.dirty = true })

	bus := editsignal.New()
	bus.Subscribe(func(nodeID string) { mail.editTarget = nodeID })

	reg := registry.New()
	reg.Register(mainTreeID, registry.Handle{State: st.State, Actions: st})

	in := textinput.New()
	in.CharLimit = 512
	in.Prompt = ""

	return appModel{
		store:      s,
		st:         st,
		dispatcher: keymap.NewDispatcher(keymap.Default()),
		registry:   reg,
		bus:        bus,
		mail:       mail,
		input:      in,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	key := msg.String()
	if key == "ctrl+c" || (key == "q" && m.mode == inputNone) {
		m.persist()
		return m, tea.Quit
	}
	if key == "?" && m.mode == inputNone {
		m.showHelp = true
		return m, nil
	}

	// Confirming an inline create must carry the typed title into the
	// placeholder before the dispatcher finalizes it.
	if m.mode == inputCreate && key == "enter" {
		if sess := m.st.State().InlineCreate; sess != nil {
			m.st.Rename(sess.TempID, strings.TrimSpace(m.input.Value()))
		}
	}

	editable := m.mode != inputNone
	if ev, ok := translateKey(msg); ok {
		rt := m.runtime()
		if res, handled := m.dispatcher.Dispatch(ev, editable, rt); handled {
			m.afterDispatch(res)
			return m, nil
		}
	}

	if editable {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m *appModel) runtime() *keymap.Runtime {
	rt := keymap.NewRuntime(m.st.State(), m.st)
	rt.EditTitle = m.bus.Publish
	rt.NewTempID = func() string {
		id, err := store.NewNodeID(nil)
		if err != nil {
			return "node-fallback"
		}
		return id
	}
	return rt
}

// afterDispatch reacts to a handled shortcut: logging, persistence, and
// opening or closing the text field.
func (m *appModel) afterDispatch(res keymap.Result) {
	m.status = ""

	switch res.Action {
	case keymap.ActionInlineCreate:
		switch res.Args[0] {
		case "start":
			m.mode = inputCreate
			m.input.SetValue("")
			m.input.Focus()
		case "confirm", "cancel":
			m.closeInput()
			if res.Args[0] == "confirm" {
				m.logEvent("add", m.st.State().SelectedID)
			}
		}
	case keymap.ActionMove, keymap.ActionIndent, keymap.ActionOutdent, keymap.ActionDelete:
		m.logEvent(res.Action, m.st.State().SelectedID)
	}

	// An edit-title shortcut published the target on the bus.
	if id := m.mail.editTarget; id != "" {
		m.mail.editTarget = ""
		st := m.st.State()
		if tn := st.FindTreeNode(id); tn != nil {
			m.mode = inputRename
			m.renameID = id
			m.input.SetValue(tn.Title)
			m.input.CursorEnd()
			m.input.Focus()
		}
	}

	m.persistIfDirty()
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.mode == inputRename {
			m.st.Rename(m.renameID, strings.TrimSpace(m.input.Value()))
			m.logEvent("rename", m.renameID)
			m.bus.Publish("")
			m.closeInput()
			m.persistIfDirty()
		}
		return m, nil
	case "esc":
		if m.mode == inputRename {
			m.bus.Publish("")
		}
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) closeInput() {
	m.mode = inputNone
	m.renameID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *appModel) logEvent(opType, nodeID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = m.store.AppendEvent(ctx, store.Event{Type: opType, NodeID: nodeID})
}

func (m *appModel) persistIfDirty() {
	if !m.mail.dirty {
		return
	}
	m.mail.dirty = false
	m.persist()
}

// persist writes db.json (without unconfirmed placeholders) and the UI
// restore state.
func (m *appModel) persist() {
	st := m.st.State()

	db := &store.DB{Version: 1}
	for _, n := range st.Nodes {
		if n.Placeholder {
			continue
		}
		db.Nodes = append(db.Nodes, n)
	}
	if err := m.store.Save(db); err != nil {
		m.status = "save failed: " + err.Error()
	}

	var expanded []string
	for id, on := range st.Expanded {
		if on {
			expanded = append(expanded, id)
		}
	}
	_ = m.store.SaveTUIState(&store.TUIState{
		SelectedID:  st.SelectedID,
		ExpandedIDs: expanded,
	})
}
