package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) map[string]any {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	if err != nil {
		t.Fatalf("treeline %v: %v\n%s", args, err, out)
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("treeline %v output is not json: %v\n%s", args, err, out)
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	d, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("data is %T, want object", env["data"])
	}
	return d
}

func addNode(t *testing.T, dir, title string, extra ...string) string {
	t.Helper()
	env := mustRun(t, dir, append([]string{"add", title}, extra...)...)
	id, _ := dataMap(t, env)["id"].(string)
	if id == "" {
		t.Fatalf("add %q returned no id", title)
	}
	return id
}

func listIDs(t *testing.T, dir string) []string {
	t.Helper()
	env := mustRun(t, dir, "list")
	rows, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("list data is %T", env["data"])
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.(map[string]any)["id"].(string))
	}
	return out
}

func TestInitCreatesStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	env := mustRun(t, dir, "init")
	d := dataMap(t, env)
	if d["dir"] != dir || d["nodes"] != float64(0) {
		t.Fatalf("init data = %v", d)
	}
}

func TestAddListOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	a := addNode(t, dir, "alpha")
	b := addNode(t, dir, "beta")
	c := addNode(t, dir, "gamma", "--after", a)

	ids := listIDs(t, dir)
	if len(ids) != 3 || ids[0] != a || ids[1] != c || ids[2] != b {
		t.Fatalf("list order = %v, want [%s %s %s]", ids, a, c, b)
	}
}

func TestAddChildDepth(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	p := addNode(t, dir, "parent")
	addNode(t, dir, "child", "--parent", p)

	env := mustRun(t, dir, "list")
	rows := env["data"].([]any)
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	child := rows[1].(map[string]any)
	if child["parentId"] != p || child["depth"] != float64(1) {
		t.Fatalf("child row = %v", child)
	}
}

func TestRename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	id := addNode(t, dir, "before")
	env := mustRun(t, dir, "rename", id, "after")
	if got := dataMap(t, env)["title"]; got != "after" {
		t.Fatalf("title = %v", got)
	}
}

func TestMoveIndentOutdent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	a := addNode(t, dir, "alpha")
	b := addNode(t, dir, "beta")

	mustRun(t, dir, "move", b, "up")
	ids := listIDs(t, dir)
	if ids[0] != b || ids[1] != a {
		t.Fatalf("after move up: %v", ids)
	}

	// a follows b, so indenting a nests it under b.
	mustRun(t, dir, "indent", a)
	env := mustRun(t, dir, "list")
	rows := env["data"].([]any)
	if got := rows[1].(map[string]any); got["id"] != a || got["parentId"] != b {
		t.Fatalf("after indent: %v", got)
	}

	mustRun(t, dir, "outdent", a)
	env = mustRun(t, dir, "list")
	rows = env["data"].([]any)
	if got := rows[1].(map[string]any); got["id"] != a || got["parentId"] != nil {
		t.Fatalf("after outdent: %v", got)
	}
}

func TestMoveNoOpFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	a := addNode(t, dir, "only")
	if _, err := runCLI(t, dir, "move", a, "up"); err == nil {
		t.Fatalf("moving the only sibling up should fail")
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	p := addNode(t, dir, "parent")
	addNode(t, dir, "child", "--parent", p)
	keep := addNode(t, dir, "keep")

	mustRun(t, dir, "delete", p)
	ids := listIDs(t, dir)
	if len(ids) != 1 || ids[0] != keep {
		t.Fatalf("after delete: %v", ids)
	}
}

func TestDeleteUnknownFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	mustRun(t, dir, "init")
	if _, err := runCLI(t, dir, "delete", "node-missing1"); err == nil {
		t.Fatalf("deleting an unknown node should fail")
	}
}

func TestEventsListRecordsMutations(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	id := addNode(t, dir, "alpha")
	mustRun(t, dir, "rename", id, "beta")

	env := mustRun(t, dir, "events", "list")
	evs, ok := env["data"].([]any)
	if !ok || len(evs) != 2 {
		t.Fatalf("events = %v", env["data"])
	}
	// Newest first.
	if evs[0].(map[string]any)["type"] != "rename" || evs[1].(map[string]any)["type"] != "add" {
		t.Fatalf("event order = %v", evs)
	}
}

func TestDocsRaw(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	out, err := runCLI(t, dir, "docs", "keyboard", "--raw")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("Keyboard shortcuts")) {
		t.Fatalf("docs output = %s", out)
	}
}

func TestEDNOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".treeline")
	out, err := runCLI(t, dir, "--format", "edn", "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte(":nodes 0")) {
		t.Fatalf("edn output = %s", out)
	}
}
