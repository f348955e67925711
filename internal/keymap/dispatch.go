package keymap

import (
	"treeline-cli/internal/model"
	"treeline-cli/internal/outline"
)

// Actions is the mutation surface the dispatcher drives. *state.Store
// satisfies it.
type Actions interface {
	Select(id string)
	ToggleExpanded(id string)
	Indent(id string) bool
	Outdent(id string) bool
	MoveUp(id string) bool
	MoveDown(id string) bool
	Delete(id string) bool
	BeginInlineCreate(tempID, sourceID, afterID string, parentID *string) bool
	AddInlineCreatePlaceholder(afterID string, node model.Node) bool
	CancelInlineCreate(tempID string) bool
	ConfirmInlineCreate(tempID, finalID string) bool
}

// Runtime is the snapshot a handler operates over: the state at dispatch
// time, the live action surface, and derived lookups.
type Runtime struct {
	State    model.TreeState
	Actions  Actions
	Visible  []*model.TreeNode
	NodeByID map[string]*model.TreeNode
	Expanded map[string]bool

	// EditTitle notifies the external rename surface; the dispatcher never
	// mutates titles itself.
	EditTitle func(nodeID string)

	// NewTempID mints ids for inline-create placeholders.
	NewTempID func() string
}

// NewRuntime derives the lookup tables from a state snapshot.
func NewRuntime(st model.TreeState, actions Actions) *Runtime {
	byID := make(map[string]*model.TreeNode, len(st.Flat))
	for _, tn := range st.Flat {
		byID[tn.ID] = tn
	}
	return &Runtime{
		State:    st,
		Actions:  actions,
		Visible:  outline.Visible(st.Roots, st.Expanded),
		NodeByID: byID,
		Expanded: st.Expanded,
	}
}

// Handler executes one action; it reports whether it handled the event.
type Handler func(rt *Runtime, args []string) bool

// Guard gates a shortcut entry on transient session state.
type Guard func(rt *Runtime) bool

// Result describes which table entry handled an event.
type Result struct {
	Action string
	Args   []string
}

// Dispatcher resolves key events against a shortcut table.
type Dispatcher struct {
	table    *Table
	handlers map[string]Handler
	guards   map[string]Guard
}

// NewDispatcher wires the stock handlers and guards around a table.
func NewDispatcher(table *Table) *Dispatcher {
	d := &Dispatcher{
		table:    table,
		handlers: map[string]Handler{},
		guards: map[string]Guard{
			GuardInlineCreate: func(rt *Runtime) bool { return rt.State.InlineCreate != nil },
		},
	}
	registerDefaultHandlers(d)
	return d
}

// RegisterHandler adds or replaces an action handler.
func (d *Dispatcher) RegisterHandler(action string, h Handler) {
	d.handlers[action] = h
}

// RegisterGuard adds or replaces a named guard predicate.
func (d *Dispatcher) RegisterGuard(name string, g Guard) {
	d.guards[name] = g
}

// Dispatch resolves ev against the table, first match wins. editable marks
// events originating from an editable field: only the inline-create
// confirm/cancel entries may fire there ("start" is excluded even though it
// is the same action). The bool reports "handled" — callers suppress the
// host's default behavior exactly when it is true.
func (d *Dispatcher) Dispatch(ev Event, editable bool, rt *Runtime) (Result, bool) {
	for _, sc := range d.table.entries {
		if !sc.chord.Matches(ev) {
			continue
		}
		if editable && !editableAllowed(sc) {
			continue
		}
		if sc.Guard != "" {
			g := d.guards[sc.Guard]
			if g == nil || !g(rt) {
				continue
			}
		}
		h := d.handlers[sc.Action]
		if h == nil {
			continue
		}
		if h(rt, sc.Args) {
			return Result{Action: sc.Action, Args: sc.Args}, true
		}
	}
	return Result{}, false
}

func editableAllowed(sc Shortcut) bool {
	if sc.Action != ActionInlineCreate || len(sc.Args) == 0 {
		return false
	}
	return sc.Args[0] == "confirm" || sc.Args[0] == "cancel"
}
