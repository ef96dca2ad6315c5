// Package commands contains the commands for the application to be used for request inputs.
package commands

// CreateTaskCommand represents a request to create a task.
// Title and Description are required; Completed and Priority fall back to
// their defaults when absent.
type CreateTaskCommand struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Completed   Optional[bool]   `json:"completed"`
	Priority    Optional[string] `json:"priority"`
}
