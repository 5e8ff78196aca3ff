package ws

import "testing"

func TestHubAddAndRemoveClient(t *testing.T) {
	hub := NewHub()

	hub.AddClient(1, nil, ConnInfo{ConnID: "a", UserID: 1})
	if len(hub.feeds) != 1 {
		t.Fatalf("expected feed to be created")
	}

	hub.RemoveClient(1, nil)
	if len(hub.feeds) != 0 {
		t.Fatalf("expected feed to be removed")
	}
}

func TestHubRemoveUnknownClient(t *testing.T) {
	hub := NewHub()

	hub.RemoveClient(42, nil)
	if len(hub.feeds) != 0 {
		t.Fatalf("expected hub to stay empty")
	}
}

func TestHubTracksConnInfo(t *testing.T) {
	hub := NewHub()

	info := ConnInfo{ConnID: "abc", UserID: 7, DeviceID: "dev"}
	hub.AddClient(7, nil, info)

	got, ok := hub.getConnInfo(7, nil)
	if !ok {
		t.Fatalf("expected conn info to be tracked")
	}
	if got.ConnID != "abc" || got.DeviceID != "dev" {
		t.Fatalf("unexpected conn info: %+v", got)
	}
}
