package screen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/model"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

func accountForm(t *testing.T, actions form.Actions) *form.Handle {
	t.Helper()
	h, err := form.Render(model.FormSchema{
		Title: "Update Account",
		Fields: []model.Field{
			{Key: "id", Label: "ID", Kind: model.Entry{}, ReadOnly: true},
			{Key: "name", Label: "Name", Kind: model.Entry{}},
			{Key: "pin", Label: "PIN", Kind: model.Password{}},
			{Key: "user_id", Label: "User", Kind: model.IDDropdown{Options: model.OptionMapOf("Alice", "u1", "Bob", "u2")}},
			{Key: "kind", Label: "Kind", Kind: model.Dropdown{Options: []string{"True", "False"}}},
		},
	}, actions)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	h.SetData(map[string]any{"id": "a1", "name": "Savings", "user_id": "u2", "kind": "False"})
	return h
}

func TestBoundForm_LoadsHandleState(t *testing.T) {
	h := accountForm(t, form.Actions{Update: func() error { return nil }, Cancel: func() error { return nil }})
	b := newBoundForm(h, nopLogger())

	if got := b.inputs["id"].GetText(); got != "a1" {
		t.Fatalf("id = %q", got)
	}
	if got := b.inputs["name"].GetText(); got != "Savings" {
		t.Fatalf("name = %q", got)
	}
	if _, text := b.drops["user_id"].GetCurrentOption(); text != "Bob" {
		t.Fatalf("user = %q", text)
	}
	if _, text := b.drops["kind"].GetCurrentOption(); text != "False" {
		t.Fatalf("kind = %q", text)
	}

	var labels []string
	for i := 0; i < b.form.GetButtonCount(); i++ {
		labels = append(labels, b.form.GetButton(i).GetLabel())
	}
	if diff := cmp.Diff([]string{"Update", "Cancel"}, labels); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
	// Dropdown construction must not overwrite loaded values.
	if got := h.Value("user_id"); got != "Bob" {
		t.Fatalf("handle user = %q", got)
	}
}

func TestBoundForm_EditsFlowIntoHandle(t *testing.T) {
	h := accountForm(t, form.Actions{})
	b := newBoundForm(h, nopLogger())

	b.inputs["name"].SetText("Checking")
	b.drops["user_id"].SetCurrentOption(0)
	b.inputs["id"].SetText("other")

	got := h.GetData()
	if got["name"] != "Checking" || got["user_id"] != "u1" {
		t.Fatalf("handle data = %#v", got)
	}
	if got["id"] != "a1" {
		t.Fatalf("read-only id changed to %q", got["id"])
	}
}

func TestBoundForm_HandleChangesFlowIntoWidgets(t *testing.T) {
	h := accountForm(t, form.Actions{})
	b := newBoundForm(h, nopLogger())

	if err := h.SetValue("name", "Travel"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := b.inputs["name"].GetText(); got != "Travel" {
		t.Fatalf("name widget = %q", got)
	}

	h.SetData(map[string]any{"user_id": "missing"})
	if index, _ := b.drops["user_id"].GetCurrentOption(); index != -1 {
		t.Fatalf("stale reference selected option %d", index)
	}
	if got := b.inputs["name"].GetText(); got != "" {
		t.Fatalf("name widget = %q", got)
	}
}

func TestBoundTable_RowsAndRowActions(t *testing.T) {
	v := listview.New([]listview.Column{{Key: "id", Heading: "ID"}, {Key: "name", Heading: "Name"}})
	v.SetItems([]listview.Row{{"1", "Alice"}, {"2", "Bob"}})

	b := newBoundTable(v)
	if got := b.table.GetCell(0, 1).Text; got != "Name" {
		t.Fatalf("heading = %q", got)
	}
	if got := b.table.GetCell(2, 1).Text; got != "Bob" {
		t.Fatalf("cell = %q", got)
	}

	var ran []string
	actions := b.wrap([]ui.Button{{Label: "Restore", Run: func() {
		row, ok := v.Selected()
		if ok {
			ran = append(ran, row.ID())
		}
	}}})
	b.table.Select(2, 0)
	actions[0].Run()
	if diff := cmp.Diff([]string{"2"}, ran); diff != "" {
		t.Fatalf("row action mismatch (-want +got):\n%s", diff)
	}

	v.SetItems([]listview.Row{{"3", "Carol"}})
	if got := b.table.GetRowCount(); got != 2 {
		t.Fatalf("row count after refresh = %d", got)
	}
	b.detach()
	v.Clear()
	if got := b.table.GetRowCount(); got != 2 {
		t.Fatalf("detached table changed to %d rows", got)
	}
}

type stubShell struct {
	visible  string
	views    map[string]ui.View
	listener func(string)
}

func (s *stubShell) Visible() string { return s.visible }

func (s *stubShell) View(name string) (ui.View, bool) {
	v, ok := s.views[name]
	return v, ok
}

func (s *stubShell) OnNavigate(fn func(string)) { s.listener = fn }

func (s *stubShell) navigate(name string) {
	s.visible = name
	s.listener(name)
}

func TestFrontend_DrawsViewsAndStacksDialogs(t *testing.T) {
	shell := &stubShell{views: map[string]ui.View{
		"home": {Title: "MWU Administration Panel", Toolbar: []ui.Button{
			{Label: "Users", Run: func() {}},
		}},
	}}
	f := New(WithLogger(nopLogger()))
	f.shell = shell
	shell.OnNavigate(f.draw)
	shell.navigate("home")

	if got := f.header.GetText(true); !strings.Contains(got, "MWU Administration Panel") {
		t.Fatalf("header = %q", got)
	}
	if got := f.content.GetItemCount(); got != 1 {
		t.Fatalf("content items = %d", got)
	}
	toolbar, ok := f.content.GetItem(0).(*tview.Form)
	if !ok {
		t.Fatalf("toolbar is %T", f.content.GetItem(0))
	}
	if got := toolbar.GetButton(0).GetLabel(); got != "Users" {
		t.Fatalf("toolbar button = %q", got)
	}

	confirmed := false
	f.Confirm("Confirm Delete", "Delete?", func() {
		confirmed = true
		f.Info("Success", "Deleted")
	})
	if got := f.OpenDialogs(); got != 1 {
		t.Fatalf("open dialogs = %d", got)
	}
	f.stack[0].respond(buttonYes)
	if !confirmed {
		t.Fatal("confirm callback not run")
	}
	if got := f.OpenDialogs(); got != 1 {
		t.Fatalf("follow-up dialog missing, open = %d", got)
	}
	f.stack[0].respond(buttonOK)
	if got := f.OpenDialogs(); got != 0 {
		t.Fatalf("open dialogs after close = %d", got)
	}

	f.Confirm("Confirm Delete", "Delete?", func() { confirmed = false })
	f.stack[0].respond(buttonNo)
	if !confirmed {
		t.Fatal("declined confirm ran its callback")
	}
}

func TestFrontend_InvalidateReusesBindings(t *testing.T) {
	h := accountForm(t, form.Actions{Cancel: func() error { return nil }})
	shell := &stubShell{visible: "accounts.update", views: map[string]ui.View{
		"accounts.update": {Title: "Update Account - Savings", Form: h},
	}}
	f := New()
	f.shell = shell

	f.Invalidate()
	first := f.forms[h]
	if err := h.SetValue("name", "Renamed"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	f.Invalidate()
	if f.forms[h] != first {
		t.Fatal("form rebuilt on redraw")
	}
	if got := first.inputs["name"].GetText(); got != "Renamed" {
		t.Fatalf("name widget = %q", got)
	}
}

func nopLogger() *zap.Logger { return zap.NewNop() }

func TestBoundForm_ShowsUnlistedStoredValue(t *testing.T) {
	h := accountForm(t, form.Actions{})
	b := newBoundForm(h, nopLogger())

	h.SetData(map[string]any{"kind": "Maybe"})
	if _, text := b.drops["kind"].GetCurrentOption(); text != "Maybe" {
		t.Fatalf("kind widget = %q", text)
	}
	if got := b.drops["kind"].GetOptionCount(); got != 3 {
		t.Fatalf("kind options = %d", got)
	}

	h.SetData(map[string]any{"kind": "True"})
	if got := b.drops["kind"].GetOptionCount(); got != 2 {
		t.Fatalf("kind options after reload = %d", got)
	}
	if got := h.GetData()["kind"]; got != "True" {
		t.Fatalf("handle kind = %q", got)
	}
}

func TestBoundForm_ReadOnlyDropdownRevertsEdits(t *testing.T) {
	h, err := form.Render(model.FormSchema{
		Title: "Update Link",
		Fields: []model.Field{
			{Key: "user_id", Label: "User", ReadOnly: true, Kind: model.IDDropdown{Options: model.OptionMapOf("Alice", "u1", "Bob", "u2")}},
		},
	}, form.Actions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	h.SetData(map[string]any{"user_id": "u1"})
	b := newBoundForm(h, nopLogger())

	b.drops["user_id"].SetCurrentOption(1)
	if _, text := b.drops["user_id"].GetCurrentOption(); text != "Alice" {
		t.Fatalf("read-only widget kept %q", text)
	}
	if got := h.GetData()["user_id"]; got != "u1" {
		t.Fatalf("handle user = %q", got)
	}
}

func TestFrontend_ListBindingSurvivesRevisits(t *testing.T) {
	list := usersView()
	shell := &stubShell{views: map[string]ui.View{
		"home":       {Title: "Home"},
		"users.list": {Title: "Users", List: list},
	}}
	f := New(WithLogger(nopLogger()))
	f.shell = shell
	shell.OnNavigate(f.draw)

	shell.navigate("users.list")
	first := f.tables[list]

	for i := 0; i < 3; i++ {
		shell.navigate("home")
		shell.navigate("users.list")
	}
	if f.tables[list] != first {
		t.Fatal("list rebound on revisit")
	}

	shell.navigate("home")
	list.SetItems([]listview.Row{{"3", "Carol"}})
	if got := first.table.GetRowCount(); got != 3 {
		t.Fatalf("hidden table refreshed to %d rows", got)
	}
	shell.navigate("users.list")
	if got := first.table.GetCell(1, 1).Text; got != "Carol" {
		t.Fatalf("revisited table shows %q", got)
	}
}

func usersView() *listview.View {
	v := listview.New([]listview.Column{{Key: "id", Heading: "ID"}, {Key: "name", Heading: "Name"}})
	v.SetItems([]listview.Row{{"1", "Alice"}, {"2", "Bob"}})
	return v
}
