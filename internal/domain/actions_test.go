package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Cast", ActionCast},
		{"END_TURN", ActionEndTurn},
		{" reset ", ActionReset},
		{"INIT", ActionInit},
		{"ATTACK", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionMove, "MOVE"},
		{ActionCast, "CAST"},
		{ActionEndTurn, "END_TURN"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionType_IsCommitting(t *testing.T) {
	if ActionInit.IsCommitting() {
		t.Error("INIT must not be recorded")
	}
	for _, a := range []ActionType{ActionMove, ActionCast, ActionEndTurn, ActionReset} {
		if !a.IsCommitting() {
			t.Errorf("%v should be committing", a)
		}
	}
}
