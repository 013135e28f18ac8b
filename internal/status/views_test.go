// internal/status/views_test.go
package status

import (
	"testing"

	"github.com/tamzrod/wififailover/internal/adapter"
)

func TestAnnotate_ConnectedAndTrusted(t *testing.T) {
	active := adapter.Snapshot{SSID: "Home", Channel: "149"}
	visible := []adapter.VisibleNetwork{
		{SSID: "Home", Channel: "149", SignalLevel: "-80"},
		{SSID: "Home", Channel: "6", SignalLevel: "-70"}, // same name, other radio
		{SSID: "Office", Channel: "36", SignalLevel: "-55"},
		{SSID: "Cafe", Channel: "11", SignalLevel: "-60"},
	}

	views := Annotate(visible, active, []string{"Home", "Office"})
	if len(views) != 4 {
		t.Fatalf("expected 4 views, got %d", len(views))
	}

	if !views[0].Connected {
		t.Fatalf("Home/149 should be connected")
	}
	if views[1].Connected {
		t.Fatalf("Home/6 must not be connected: channel differs")
	}
	if !views[2].Trusted || views[3].Trusted {
		t.Fatalf("trust flags wrong: %+v", views)
	}
}

func TestTrustedSubset_ExcludesActive(t *testing.T) {
	views := []NetworkView{
		{SSID: "Home", Trusted: true, Connected: true},
		{SSID: "Office", Trusted: true},
		{SSID: "Cafe"},
	}

	got := TrustedSubset(views, "Home")
	if len(got) != 1 || got[0].SSID != "Office" {
		t.Fatalf("unexpected subset: %+v", got)
	}
}

func TestTrustedSubset_EmptyIsNotNil(t *testing.T) {
	got := TrustedSubset(nil, "Home")
	if got == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}
