package validation

import (
	"encoding/json"
	"testing"

	"TaskTrackerService/apperror"
	"TaskTrackerService/commands"
	"TaskTrackerService/models"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func decodeCreate(t *testing.T, body string) commands.CreateTaskCommand {
	t.Helper()
	var cmd commands.CreateTaskCommand
	if err := json.Unmarshal([]byte(body), &cmd); err != nil {
		t.Fatalf("Error decoding %s: %v", body, err)
	}
	return cmd
}

func decodeUpdate(t *testing.T, body string) commands.UpdateTaskCommand {
	t.Helper()
	var cmd commands.UpdateTaskCommand
	if err := json.Unmarshal([]byte(body), &cmd); err != nil {
		t.Fatalf("Error decoding %s: %v", body, err)
	}
	return cmd
}

func TestCreateTaskDefaults(t *testing.T) {
	v := newValidator(t)

	task, err := v.CreateTask(decodeCreate(t, `{"title":"  A  ","description":"\tB\n"}`))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Title != "A" || task.Description != "B" {
		t.Errorf("Expected trimmed fields, got %q and %q", task.Title, task.Description)
	}
	if task.Completed {
		t.Errorf("Expected completed to default to false")
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Expected priority to default to medium, got %q", task.Priority)
	}
}

func TestCreateTaskExplicitFields(t *testing.T) {
	v := newValidator(t)

	task, err := v.CreateTask(decodeCreate(t, `{"title":"A","description":"B","completed":true,"priority":"high"}`))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if !task.Completed || task.Priority != models.PriorityHigh {
		t.Errorf("Unexpected task %+v", task)
	}
}

func TestCreateTaskErrors(t *testing.T) {
	v := newValidator(t)

	testCases := []struct {
		body    string
		field   string
		message string
	}{
		{`{}`, "title", "Expected title to be a non-empty string, but got undefined"},
		{`{"title":null,"description":"B"}`, "title", "Expected title to be a non-empty string, but got null"},
		{`{"title":42,"description":"B"}`, "title", "Expected title to be a non-empty string, but got number"},
		{`{"title":"   ","description":"B"}`, "title", "Expected title to be a non-empty string, but got string"},
		{`{"title":"A"}`, "description", "Expected description to be a non-empty string, but got undefined"},
		{`{"title":"A","description":["B"]}`, "description", "Expected description to be a non-empty string, but got array"},
		{`{"title":"A","description":"B","completed":"yes"}`, "completed", "Expected completed to be a boolean, but got string"},
		{`{"title":"A","description":"B","completed":null}`, "completed", "Expected completed to be a boolean, but got null"},
		{`{"title":"A","description":"B","priority":"urgent"}`, "priority", "Priority must be one of: low, medium, high"},
		{`{"title":"A","description":"B","priority":"HIGH"}`, "priority", "Priority must be one of: low, medium, high"},
		{`{"title":"A","description":"B","priority":1}`, "priority", "Priority must be one of: low, medium, high"},
	}

	for _, tc := range testCases {
		t.Run(tc.body, func(t *testing.T) {
			_, err := v.CreateTask(decodeCreate(t, tc.body))
			appErr, ok := err.(*apperror.Error)
			if !ok {
				t.Fatalf("Expected *apperror.Error, got %T (%v)", err, err)
			}
			if appErr.Kind != apperror.ValidationError {
				t.Errorf("Expected validation error, got %s", appErr.Kind)
			}
			if appErr.Field != tc.field {
				t.Errorf("Expected field %q, got %q", tc.field, appErr.Field)
			}
			if appErr.Message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, appErr.Message)
			}
		})
	}
}

func TestUpdateTaskOnlyPresentFields(t *testing.T) {
	v := newValidator(t)

	patch, err := v.UpdateTask(decodeUpdate(t, `{"completed":true}`))
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if patch.Title != nil || patch.Description != nil || patch.Priority != nil {
		t.Errorf("Expected only completed in patch, got %+v", patch)
	}
	if patch.Completed == nil || !*patch.Completed {
		t.Errorf("Expected completed=true in patch")
	}

	patch, err = v.UpdateTask(decodeUpdate(t, `{"title":" New ","priority":"low"}`))
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if patch.Title == nil || *patch.Title != "New" {
		t.Errorf("Expected trimmed title in patch")
	}
	if patch.Priority == nil || *patch.Priority != models.PriorityLow {
		t.Errorf("Expected low priority in patch")
	}

	patch, err = v.UpdateTask(decodeUpdate(t, `{}`))
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if patch != (models.TaskPatch{}) {
		t.Errorf("Expected empty patch, got %+v", patch)
	}
}

func TestUpdateTaskRejectsNullAndBlank(t *testing.T) {
	v := newValidator(t)

	for _, body := range []string{`{"title":null}`, `{"description":""}`, `{"completed":0}`, `{"priority":null}`} {
		if _, err := v.UpdateTask(decodeUpdate(t, body)); !apperror.Is(err, apperror.ValidationError) {
			t.Errorf("%s: expected validation error, got %v", body, err)
		}
	}
}

func TestCompletedFilter(t *testing.T) {
	v := newValidator(t)

	got, err := v.CompletedFilter(nil)
	if err != nil || got != nil {
		t.Errorf("Expected no filter, got %v, %v", got, err)
	}
	got, err = v.CompletedFilter([]string{"true"})
	if err != nil || got == nil || !*got {
		t.Errorf("Expected true filter, got %v, %v", got, err)
	}
	got, err = v.CompletedFilter([]string{"false"})
	if err != nil || got == nil || *got {
		t.Errorf("Expected false filter, got %v, %v", got, err)
	}

	for _, values := range [][]string{{"maybe"}, {""}, {"TRUE"}, {"1"}, {"true", "false"}} {
		if _, err := v.CompletedFilter(values); !apperror.Is(err, apperror.InvalidQuery) {
			t.Errorf("%q: expected invalid query, got %v", values, err)
		}
	}
}

func TestSortOrder(t *testing.T) {
	v := newValidator(t)

	testCases := []struct {
		values []string
		want   models.SortOrder
	}{
		{nil, models.SortNone},
		{[]string{"asc"}, models.SortAsc},
		{[]string{"desc"}, models.SortDesc},
	}
	for _, tc := range testCases {
		got, err := v.SortOrder(tc.values)
		if err != nil || got != tc.want {
			t.Errorf("%q: expected %q, got %q, %v", tc.values, tc.want, got, err)
		}
	}

	for _, values := range [][]string{{"up"}, {""}, {"ASC"}} {
		if _, err := v.SortOrder(values); !apperror.Is(err, apperror.InvalidQuery) {
			t.Errorf("%q: expected invalid query, got %v", values, err)
		}
	}
}

func TestPriorityLevel(t *testing.T) {
	v := newValidator(t)

	for token, want := range map[string]models.Priority{"low": models.PriorityLow, "Medium": models.PriorityMedium, "HIGH": models.PriorityHigh} {
		got, err := v.PriorityLevel(token)
		if err != nil || got != want {
			t.Errorf("%q: expected %q, got %q, %v", token, want, got, err)
		}
	}

	for _, token := range []string{"URGENT", "", " low"} {
		if _, err := v.PriorityLevel(token); !apperror.Is(err, apperror.InvalidQuery) {
			t.Errorf("%q: expected invalid query, got %v", token, err)
		}
	}
}
