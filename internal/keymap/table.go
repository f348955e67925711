package keymap

import "fmt"

// Action names understood by the dispatcher.
const (
	ActionSelect           = "select"            // args: next|prev
	ActionExpand           = "expand"            //
	ActionCollapse         = "collapse"          //
	ActionCollapseToParent = "collapse-to-parent"
	ActionMove             = "move" // args: up|down
	ActionIndent           = "indent"
	ActionOutdent          = "outdent"
	ActionDelete           = "delete"
	ActionEditTitle        = "edit-title"
	ActionInlineCreate     = "inline-create" // args: start|confirm|cancel

	// Guard names.
	GuardInlineCreate = "inline-create"
)

// Shortcut binds one chord to an action. Entries are evaluated in declaration
// order; the first one whose chord matches and whose guard (if any) passes
// gets to handle the event.
type Shortcut struct {
	Keys   string
	Action string
	Args   []string
	Guard  string

	chord Chord
}

// Table is an ordered shortcut list with pre-parsed chords.
type Table struct {
	entries []Shortcut
}

// NewTable parses every entry's chord up front so malformed host overrides
// fail loudly at construction, not at dispatch time.
func NewTable(shortcuts []Shortcut) (*Table, error) {
	t := &Table{entries: make([]Shortcut, 0, len(shortcuts))}
	for _, sc := range shortcuts {
		ch, err := ParseChord(sc.Keys)
		if err != nil {
			return nil, fmt.Errorf("shortcut %q: %w", sc.Keys, err)
		}
		sc.chord = ch
		t.entries = append(t.entries, sc)
	}
	return t, nil
}

// Entries returns the table in declaration order (for help rendering).
func (t *Table) Entries() []Shortcut {
	return t.entries
}

// Default returns the stock shortcut table. Hosts may replace it wholesale.
//
// Order matters twice: the guarded inline-create entries must come before
// the unguarded "start" binding on the same key, and plain arrow entries
// must not shadow their modifier variants (exact-modifier matching keeps
// Alt+Down distinct from Down regardless of order, but the session-guarded
// Enter has to win over "start" while a session is open).
func Default() *Table {
	t, err := NewTable([]Shortcut{
		{Keys: "Escape", Action: ActionInlineCreate, Args: []string{"cancel"}, Guard: GuardInlineCreate},
		{Keys: "Enter", Action: ActionInlineCreate, Args: []string{"confirm"}, Guard: GuardInlineCreate},
		{Keys: "Enter", Action: ActionInlineCreate, Args: []string{"start"}},
		{Keys: "ArrowDown", Action: ActionSelect, Args: []string{"next"}},
		{Keys: "ArrowUp", Action: ActionSelect, Args: []string{"prev"}},
		{Keys: "ArrowRight", Action: ActionExpand},
		{Keys: "ArrowLeft", Action: ActionCollapseToParent},
		{Keys: "Alt+ArrowDown", Action: ActionMove, Args: []string{"down"}},
		{Keys: "Alt+ArrowUp", Action: ActionMove, Args: []string{"up"}},
		{Keys: "Tab", Action: ActionIndent},
		{Keys: "Shift+Tab", Action: ActionOutdent},
		{Keys: "F2", Action: ActionEditTitle},
		{Keys: "Delete", Action: ActionDelete},
		{Keys: "Ctrl+Backspace", Action: ActionDelete},
	})
	if err != nil {
		// The default table is static; a parse failure is a programming error.
		panic(err)
	}
	return t
}
