package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-mwu-admin/internal/catalog"
	"github.com/goliatone/go-mwu-admin/pkg/apiclient"
	"github.com/goliatone/go-mwu-admin/pkg/form"
	"github.com/goliatone/go-mwu-admin/pkg/listview"
	"github.com/goliatone/go-mwu-admin/pkg/refs"
	"github.com/goliatone/go-mwu-admin/pkg/router"
	"github.com/goliatone/go-mwu-admin/pkg/testsupport/fakeapi"
	"github.com/goliatone/go-mwu-admin/pkg/ui"
)

const (
	accountID = "0b5f6f58-7b4c-4b0c-9a52-3f8f0c1d2e3a"
	userID    = "6f9619ff-8b86-d011-b42d-00c04fc964ff"
	staleID   = "9d7a2a5e-1111-4c4c-8888-000000000000"
)

type harness struct {
	t       *testing.T
	ctx     context.Context
	fake    *fakeapi.Server
	router  *router.Router
	dialogs *ui.Recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fake := fakeapi.New(fakeapi.WithClock(func() time.Time { return fixed }))
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	logger := zaptest.NewLogger(t)
	client, err := apiclient.New(srv.URL, apiclient.WithLogger(logger))
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	r := router.New(router.WithLogger(logger))
	dialogs := &ui.Recorder{Answer: true}
	deps := Deps{
		Client:    client,
		Resolver:  refs.NewResolver(client, refs.WithLogger(logger)),
		Navigator: r,
		Dialogs:   dialogs,
		Display:   dialogs,
		Logger:    logger,
	}
	if err := Register(r, cat, deps); err != nil {
		t.Fatalf("register: %v", err)
	}

	ctx := context.Background()
	if err := r.Start(ctx, HomePage, nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	return &harness{t: t, ctx: ctx, fake: fake, router: r, dialogs: dialogs}
}

func (h *harness) show(name string, params router.Params) {
	h.t.Helper()
	if err := h.router.ShowPage(h.ctx, name, params); err != nil {
		h.t.Fatalf("show %s: %v", name, err)
	}
}

func (h *harness) page(name string) router.Page {
	h.t.Helper()
	page, ok := h.router.Page(name)
	if !ok {
		h.t.Fatalf("page %s not registered", name)
	}
	return page
}

func (h *harness) set(handle *form.Handle, values map[string]string) {
	h.t.Helper()
	for key, value := range values {
		if err := handle.SetValue(key, value); err != nil {
			h.t.Fatalf("set %s: %v", key, err)
		}
	}
}

func (h *harness) countCalls(call string) int {
	n := 0
	for _, got := range h.fake.Calls() {
		if got == call {
			n++
		}
	}
	return n
}

func TestCatalogPages(t *testing.T) {
	h := newHarness(t)
	names := h.router.Names()
	for _, want := range []string{"home", "accounts.list", "accounts.create", "accounts.update", "accounts.trash", "category_types.update", "users_accounts.create"} {
		found := false
		for _, name := range names {
			found = found || name == want
		}
		if !found {
			t.Fatalf("page %s missing from %v", want, names)
		}
	}
	if _, ok := h.router.Page("category_types.trash"); ok {
		t.Fatalf("category types have no trash bin")
	}
}

func TestHomeNavigatesToLists(t *testing.T) {
	h := newHarness(t)
	home := h.page(HomePage).(*Home)
	view := home.View()
	if len(view.Toolbar) != 7 || view.Toolbar[1].Label != "Accounts" {
		t.Fatalf("unexpected home buttons: %+v", view.Toolbar)
	}
	view.Toolbar[1].Run()
	if h.router.Visible() != "accounts.list" {
		t.Fatalf("expected accounts.list, got %s", h.router.Visible())
	}
}

func TestCreateValidationFailureMakesNoRequest(t *testing.T) {
	h := newHarness(t)
	h.show("accounts.create", nil)
	h.fake.ResetRequests()

	create := h.page("accounts.create").(*Create)
	h.set(create.Form(), map[string]string{"type": "Corrente"})

	err := create.Form().Trigger(form.ActionSave)
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if last, _ := h.dialogs.Last(); last.Kind != "error" || last.Title != "Validation Error" {
		t.Fatalf("expected validation dialog, got %+v", last)
	}
	if calls := h.fake.Calls(); len(calls) != 0 {
		t.Fatalf("expected no requests, got %v", calls)
	}
	if h.router.Visible() != "accounts.create" {
		t.Fatalf("failed validation must stay on the page")
	}
}

func TestCreateSuccessPostsOnceAndShowsList(t *testing.T) {
	h := newHarness(t)
	h.show("accounts.create", nil)
	h.fake.ResetRequests()

	create := h.page("accounts.create").(*Create)
	if got := create.Form().Value("type"); got != "Investimentos" {
		t.Fatalf("dropdown should default to its first option, got %q", got)
	}
	h.set(create.Form(), map[string]string{"name": "Savings", "type": "Poupança", "account_number": "42"})

	if err := create.Form().Trigger(form.ActionSave); err != nil {
		t.Fatalf("save: %v", err)
	}
	if n := h.countCalls("POST /accounts/create"); n != 1 {
		t.Fatalf("expected exactly one create call, got %d", n)
	}
	if h.router.Visible() != "accounts.list" {
		t.Fatalf("expected accounts.list, got %s", h.router.Visible())
	}

	body := h.fake.Requests()[0].Body
	want := map[string]any{"name": "Savings", "type": "Poupança", "account_number": "42", "balance": float64(0)}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	list := h.page("accounts.list").(*List)
	if list.Rows().Len() != 1 {
		t.Fatalf("expected the new account in the list, got %d rows", list.Rows().Len())
	}
}

func TestCreateSurfacesServerMessage(t *testing.T) {
	h := newHarness(t)
	h.show("accounts.create", nil)
	h.fake.FailNext(http.MethodPost, "/accounts/create", http.StatusConflict, "Account number already exists")

	create := h.page("accounts.create").(*Create)
	h.set(create.Form(), map[string]string{"name": "Savings", "account_number": "42"})

	if err := create.Form().Trigger(form.ActionSave); err == nil {
		t.Fatalf("expected error")
	}
	last, _ := h.dialogs.Last()
	if last.Title != "API Error" || !strings.Contains(last.Message, "Account number already exists") {
		t.Fatalf("unexpected dialog %+v", last)
	}
	if h.router.Visible() != "accounts.create" {
		t.Fatalf("failed create must stay on the page")
	}
}

func TestUpdateWithoutIDWarnsAndReturnsToList(t *testing.T) {
	h := newHarness(t)
	h.fake.ResetRequests()
	h.show("accounts.update", nil)

	if h.router.Visible() != "accounts.list" {
		t.Fatalf("expected accounts.list, got %s", h.router.Visible())
	}
	if diff := cmp.Diff([]string{"warning"}, h.dialogs.Kinds()); diff != "" {
		t.Fatalf("dialogs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"GET /accounts/all"}, h.fake.Calls()); diff != "" {
		t.Fatalf("update page must not call the API (-want +got):\n%s", diff)
	}
	if h.page("accounts.update").(*Update).Form() != nil {
		t.Fatalf("form should be dropped")
	}
}

func TestUpdateWithMalformedIDShowsError(t *testing.T) {
	h := newHarness(t)
	h.show("accounts.update", router.Params{ParamID: "not-a-uuid"})

	if h.router.Visible() != "accounts.list" {
		t.Fatalf("expected accounts.list, got %s", h.router.Visible())
	}
	last, _ := h.dialogs.Last()
	if last.Kind != "error" || !strings.Contains(last.Message, "not-a-uuid") {
		t.Fatalf("unexpected dialog %+v", last)
	}
}

func TestUpdateFetchFailureReturnsToList(t *testing.T) {
	h := newHarness(t)
	h.show("accounts.update", router.Params{ParamID: accountID})

	if h.router.Visible() != "accounts.list" {
		t.Fatalf("expected accounts.list, got %s", h.router.Visible())
	}
	if h.page("accounts.update").(*Update).Form() != nil {
		t.Fatalf("form should be dropped after a failed fetch")
	}
	if last, _ := h.dialogs.Last(); last.Title != "API Error" {
		t.Fatalf("unexpected dialog %+v", last)
	}
}

func TestUpdateLoadsAndSavesRecord(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed("accounts", map[string]any{
		"id": accountID, "name": "Savings", "type": "Corrente", "account_number": "42", "balance": 10.5,
	})

	h.show("accounts.update", router.Params{ParamID: accountID})
	update := h.page("accounts.update").(*Update)
	if update.Form() == nil {
		t.Fatalf("expected a form, dialogs: %+v", h.dialogs.Records)
	}
	if got := update.Title(); got != "Update Account - Savings" {
		t.Fatalf("unexpected title %q", got)
	}
	data := update.Form().GetData()
	if data["id"] != accountID || data["balance"] != "10.5" || data["created_at"] != "2024-05-01 12:00:00" {
		t.Fatalf("unexpected form data %+v", data)
	}

	h.fake.ResetRequests()
	h.set(update.Form(), map[string]string{"name": "Rainy Day"})
	if err := update.Form().Trigger(form.ActionUpdate); err != nil {
		t.Fatalf("update: %v", err)
	}

	requests := h.fake.Requests()
	if requests[0].Method != http.MethodPatch || requests[0].Path != "/accounts/"+accountID+"/update" {
		t.Fatalf("unexpected request %+v", requests[0])
	}
	want := map[string]any{"name": "Rainy Day", "type": "Corrente", "account_number": "42", "balance": 10.5}
	if diff := cmp.Diff(want, requests[0].Body); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if h.router.Visible() != "accounts.list" {
		t.Fatalf("expected accounts.list, got %s", h.router.Visible())
	}
}

func TestUpdateRefreshIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed("accounts", map[string]any{"id": accountID, "name": "Savings", "type": "Corrente", "account_number": "42"})

	h.show("accounts.update", router.Params{ParamID: accountID})
	first := h.page("accounts.update").(*Update).Form().GetData()
	h.show("accounts.update", router.Params{ParamID: accountID})
	second := h.page("accounts.update").(*Update).Form().GetData()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("refresh not idempotent (-first +second):\n%s", diff)
	}
}

func TestStaleReferenceShowsEmptySelection(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed("users", map[string]any{"id": userID, "first_name": "Alice"})
	txID := h.fake.Seed("transactions", map[string]any{
		"user_id": staleID, "category_id": staleID, "name": "Rent", "amount": 100, "date": "2024-05-01", "is_recurring": true,
	})

	h.show("transactions.list", nil)
	rows := h.page("transactions.list").(*List).Rows().Rows()
	if len(rows) != 1 || rows[0][1] != "Unknown User" || rows[0][2] != "Unknown Category" {
		t.Fatalf("unexpected rows %v", rows)
	}

	h.show("transactions.update", router.Params{ParamID: txID})
	handle := h.page("transactions.update").(*Update).Form()
	if handle == nil {
		t.Fatalf("expected a form, dialogs: %+v", h.dialogs.Records)
	}
	if handle.Value("user_id") != "" || handle.GetData()["user_id"] != "" {
		t.Fatalf("stale user should leave the dropdown empty")
	}
	if diff := cmp.Diff([]string{"Alice"}, handle.Options("user_id")); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if got := handle.Value("is_recurring"); got != "True" {
		t.Fatalf("expected True, got %q", got)
	}
}

func TestReferenceLoadFailureWarnsAndContinues(t *testing.T) {
	h := newHarness(t)
	h.fake.FailNext(http.MethodGet, "/users/all", http.StatusInternalServerError, "database offline")

	h.show("financial_goals.create", nil)
	if h.router.Visible() != "financial_goals.create" {
		t.Fatalf("page should stay visible")
	}
	last, _ := h.dialogs.Last()
	if last.Kind != "warning" || !strings.Contains(last.Message, "database offline") {
		t.Fatalf("unexpected dialog %+v", last)
	}
	handle := h.page("financial_goals.create").(*Create).Form()
	if handle == nil || len(handle.Options("user_id")) != 0 {
		t.Fatalf("expected a form with empty user options")
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed("accounts", map[string]any{"id": accountID, "name": "Savings", "type": "Corrente", "account_number": "42"})
	h.show("accounts.update", router.Params{ParamID: accountID})
	update := h.page("accounts.update").(*Update)

	h.dialogs.Answer = false
	h.fake.ResetRequests()
	if err := update.Form().Trigger(form.ActionDelete); err != nil {
		t.Fatalf("declined delete: %v", err)
	}
	if len(h.fake.Calls()) != 0 || h.router.Visible() != "accounts.update" {
		t.Fatalf("declined delete must not call the API")
	}

	h.dialogs.Answer = true
	if err := update.Form().Trigger(form.ActionDelete); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if h.countCalls("DELETE /accounts/"+accountID+"/delete") != 1 {
		t.Fatalf("expected one delete call, got %v", h.fake.Calls())
	}
	record, _ := h.fake.Record("accounts", accountID)
	if record["deleted_at"] == nil {
		t.Fatalf("record should be soft-deleted")
	}
	if h.router.Visible() != "accounts.list" {
		t.Fatalf("expected accounts.list, got %s", h.router.Visible())
	}
}

func TestTrashRestoreAndForceDelete(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed("accounts", map[string]any{"id": accountID, "name": "Old", "deleted_at": "2024-04-01T00:00:00"})
	other := h.fake.Seed("accounts", map[string]any{"name": "Older", "deleted_at": "2024-03-01T00:00:00"})

	h.show("accounts.trash", nil)
	trash := h.page("accounts.trash").(*Trash)
	if trash.Rows().Len() != 2 {
		t.Fatalf("expected two deleted accounts, got %d", trash.Rows().Len())
	}

	if err := trash.Restore(); err != nil {
		t.Fatalf("restore without selection: %v", err)
	}
	if last, _ := h.dialogs.Last(); last.Kind != "warning" {
		t.Fatalf("expected a selection warning, got %+v", last)
	}

	trash.Rows().Select(0)
	if err := trash.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if h.countCalls("POST /accounts/"+accountID+"/restore") != 1 {
		t.Fatalf("expected restore call, got %v", h.fake.Calls())
	}
	if diff := cmp.Diff([]listview.Row{{other, "Older", "", "", "", "2024-05-01 12:00:00", "2024-05-01 12:00:00", "2024-03-01 00:00:00"}}, trash.Rows().Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	trash.Rows().Select(0)
	if err := trash.ForceDelete(); err != nil {
		t.Fatalf("force delete: %v", err)
	}
	if _, ok := h.fake.Record("accounts", other); ok {
		t.Fatalf("record should be gone")
	}
	if trash.Rows().Len() != 0 {
		t.Fatalf("trash should be empty")
	}
	if h.dialogs.Invalidated == 0 {
		t.Fatalf("trash actions should redraw the page")
	}
}

func TestListSelectionOpensUpdatePage(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed("accounts", map[string]any{"id": accountID, "name": "Savings", "type": "Corrente", "account_number": "42"})
	h.show("accounts.list", nil)

	list := h.page("accounts.list").(*List)
	list.Rows().Select(0)
	if h.router.Visible() != "accounts.update" {
		t.Fatalf("expected accounts.update, got %s", h.router.Visible())
	}
	if got := h.page("accounts.update").(*Update).ID(); got != accountID {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestShellExposesViews(t *testing.T) {
	h := newHarness(t)
	shell := Shell{Router: h.router}
	view, ok := shell.View(HomePage)
	if !ok || view.Title != "MWU Administration Panel" {
		t.Fatalf("unexpected home view %+v", view)
	}
	if _, ok := shell.View("nowhere"); ok {
		t.Fatalf("unknown pages have no view")
	}
}
