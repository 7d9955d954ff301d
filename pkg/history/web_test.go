package history

import (
	"testing"

	"github.com/notekeeper/notesweb/pkg/protocol"
)

func TestWebSendsCommands(t *testing.T) {
	var sent []protocol.Command
	h := NewWeb("/app", "/app/", func(cmd protocol.Command) {
		sent = append(sent, cmd)
	})

	if h.Location() != "/" {
		t.Fatalf("Location() = %q, want %q", h.Location(), "/")
	}

	h.Push("/signup", State{})
	h.Replace("/signin", State{})
	h.Go(-1)
	h.Go(0)

	want := []protocol.Command{
		protocol.NewPushCommand("/app/signup"),
		protocol.NewReplaceCommand("/app/signin"),
		protocol.NewGoCommand(-1),
	}
	if len(sent) != len(want) {
		t.Fatalf("sent %d commands, want %d: %+v", len(sent), len(want), sent)
	}
	for i := range want {
		if sent[i] != want[i] {
			t.Errorf("command[%d] = %+v, want %+v", i, sent[i], want[i])
		}
	}

	// Go only asks the tab; the location moves on popstate.
	if h.Location() != "/signin" {
		t.Errorf("Location() = %q, want %q", h.Location(), "/signin")
	}
	if st := h.State(); st.Position != 1 || !st.Replaced {
		t.Errorf("State() = %+v", st)
	}
}

func TestWebHandlePopState(t *testing.T) {
	h := NewWeb("/", "/", nil)
	h.Push("/signup", State{})
	h.Push("/signin", State{})

	var info PopInfo
	var from string
	h.Listen(func(to, f string, i PopInfo) {
		from, info = f, i
	})

	h.HandlePopState("/signup", 1)
	if h.Location() != "/signup" {
		t.Errorf("Location() = %q, want %q", h.Location(), "/signup")
	}
	if from != "/signin" {
		t.Errorf("from = %q, want %q", from, "/signin")
	}
	if info.Delta != -1 || info.Direction != DirectionBack {
		t.Errorf("PopInfo = %+v", info)
	}
}

func TestWebPushDoesNotNotify(t *testing.T) {
	h := NewWeb("/", "/", nil)
	called := false
	h.Listen(func(string, string, PopInfo) { called = true })
	h.Push("/signup", State{})
	h.Replace("/signin", State{})
	if called {
		t.Error("listener called for Push/Replace")
	}
}

func TestNewWebAtKeepsPosition(t *testing.T) {
	h := NewWebAt("/", "/signin", 4, nil)
	h.Push("/signup", State{})
	if st := h.State(); st.Position != 5 || st.Back != "/signin" {
		t.Errorf("State() = %+v", st)
	}

	var info PopInfo
	h.Listen(func(_, _ string, i PopInfo) { info = i })
	h.HandlePopState("/", 2)
	if info.Delta != -3 || info.Direction != DirectionBack {
		t.Errorf("PopInfo = %+v", info)
	}
}
