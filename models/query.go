package models

// SortOrder orders a task listing by creation time.
type SortOrder string

const (
	// SortNone keeps insertion order.
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListOptions narrows and orders a task listing.
type ListOptions struct {
	// Completed, when set, keeps only tasks with a matching completed flag.
	Completed *bool
	Sort      SortOrder
}

// TaskPatch lists the fields to change on an existing task.
// Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
}

// Apply copies the set fields of p onto task.
func (p TaskPatch) Apply(task *Task) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
}
