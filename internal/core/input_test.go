package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionFlap) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionFlap)
	f.Set(ActionPause)
	if !f.Has(ActionFlap) || !f.Has(ActionPause) {
		t.Error("Set actions should be reported by Has")
	}

	f.Clear()
	if f.Has(ActionFlap) || f.Has(ActionPause) {
		t.Error("Clear should remove all actions")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionFlap, "Flap"},
		{ActionPause, "Pause"},
		{ActionRestart, "Restart"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.a, got, tc.want)
		}
	}
}
