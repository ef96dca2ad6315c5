package commands

// UpdateTaskCommand represents a request to change some fields of a task.
// Only fields present in the request body are applied.
type UpdateTaskCommand struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Completed   Optional[bool]   `json:"completed"`
	Priority    Optional[string] `json:"priority"`
}

// Empty reports whether no field was supplied.
func (c UpdateTaskCommand) Empty() bool {
	return !c.Title.Present && !c.Description.Present && !c.Completed.Present && !c.Priority.Present
}
