package commands

import (
	"encoding/json"
	"testing"

	"TaskTrackerService/apperror"
)

func TestParseTaskId(t *testing.T) {
	for token, want := range map[string]int{"0": 0, "1": 1, "007": 7, "999": 999} {
		cmd, err := ParseTaskId(token)
		if err != nil {
			t.Errorf("%q: unexpected error %v", token, err)
			continue
		}
		if cmd.Id != want {
			t.Errorf("%q: expected %d, got %d", token, want, cmd.Id)
		}
	}

	for _, token := range []string{"", "abc", "-1", "+1", "1.5", " 1", "1e3"} {
		if _, err := ParseTaskId(token); !apperror.Is(err, apperror.InvalidId) {
			t.Errorf("%q: expected invalid id, got %v", token, err)
		}
	}
}

func TestParseTaskIdOverflow(t *testing.T) {
	cmd, err := ParseTaskId("99999999999999999999999")
	if err != nil {
		t.Fatalf("Expected overflowing id to parse, got %v", err)
	}
	if cmd.Id != NoTaskId {
		t.Errorf("Expected NoTaskId, got %d", cmd.Id)
	}
}

func TestOptionalDistinguishesAbsentAndNull(t *testing.T) {
	var cmd UpdateTaskCommand
	if err := json.Unmarshal([]byte(`{"title":null,"completed":"yes","priority":"low"}`), &cmd); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !cmd.Title.Present || cmd.Title.Valid || cmd.Title.TypeName() != "null" {
		t.Errorf("Expected present null title, got %+v", cmd.Title)
	}
	if cmd.Description.Present || cmd.Description.TypeName() != "undefined" {
		t.Errorf("Expected absent description, got %+v", cmd.Description)
	}
	if !cmd.Completed.Present || cmd.Completed.Valid || cmd.Completed.TypeName() != "string" {
		t.Errorf("Expected present mistyped completed, got %+v", cmd.Completed)
	}
	if !cmd.Priority.Valid || cmd.Priority.Value != "low" {
		t.Errorf("Expected valid priority, got %+v", cmd.Priority)
	}
	if cmd.Empty() {
		t.Errorf("Expected command not to be empty")
	}
}

func TestOptionalKinds(t *testing.T) {
	testCases := map[string]string{
		`{"title":true}`: "boolean",
		`{"title":{}}`:   "object",
		`{"title":[]}`:   "array",
		`{"title":-3.5}`: "number",
		`{"title":"x"}`:  "string",
	}
	for body, want := range testCases {
		var cmd CreateTaskCommand
		if err := json.Unmarshal([]byte(body), &cmd); err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if got := cmd.Title.TypeName(); got != want {
			t.Errorf("%s: expected %q, got %q", body, want, got)
		}
	}
}

func TestOptionalRepeatedKeyKeepsLast(t *testing.T) {
	var cmd CreateTaskCommand
	if err := json.Unmarshal([]byte(`{"title":"A","title":5}`), &cmd); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cmd.Title.Valid || cmd.Title.Value != "" || cmd.Title.TypeName() != "number" {
		t.Errorf("Expected last title occurrence to win, got %+v", cmd.Title)
	}

	if err := json.Unmarshal([]byte(`{"title":5,"title":"B"}`), &cmd); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !cmd.Title.Valid || cmd.Title.Value != "B" || cmd.Title.TypeName() != "string" {
		t.Errorf("Expected last title occurrence to win, got %+v", cmd.Title)
	}
}
