package router

import "testing"

// notesTable is the application table used across the package tests.
func notesTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		Route{Path: "/", Name: "note", View: "note"},
		Route{Path: "/signup", Name: "signup", View: "signup"},
		Route{Path: "/signin", Name: "signin", View: "signin"},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestTableLookups(t *testing.T) {
	table := notesTable(t)

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	route, ok := table.ByPath("/signup")
	if !ok || route.Name != "signup" {
		t.Errorf("ByPath(/signup) = %+v, %v", route, ok)
	}
	route, ok = table.ByName("signin")
	if !ok || route.Path != "/signin" {
		t.Errorf("ByName(signin) = %+v, %v", route, ok)
	}

	for _, miss := range []string{"/SIGNUP", "/signup/", "signup", ""} {
		if _, ok := table.ByPath(miss); ok {
			t.Errorf("ByPath(%q) matched", miss)
		}
	}
	if _, ok := table.ByName("Note"); ok {
		t.Error("ByName is not case-sensitive")
	}
}

func TestTableRoutesIsACopy(t *testing.T) {
	table := notesTable(t)

	routes := table.Routes()
	routes[0].Path = "/mutated"

	if route, _ := table.ByName("note"); route.Path != "/" {
		t.Errorf("table was mutated through Routes(): %+v", route)
	}
	if got := table.Routes()[0].Path; got != "/" {
		t.Errorf("Routes()[0].Path = %q, want %q", got, "/")
	}
}

func TestTableOrder(t *testing.T) {
	table := notesTable(t)
	want := []string{"note", "signup", "signin"}
	for i, route := range table.Routes() {
		if route.Name != want[i] {
			t.Errorf("Routes()[%d].Name = %q, want %q", i, route.Name, want[i])
		}
	}
}
