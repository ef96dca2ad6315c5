// Package validation contains custom validation functions for the application to use for input validation.
package validation

import (
	"fmt"
	"strings"

	"TaskTrackerService/apperror"
	"TaskTrackerService/commands"
	"TaskTrackerService/models"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	fieldTag    = "fieldValidator"
	priorityTag = "priorityValidator"

	priorityMessage = "Priority must be one of: low, medium, high"
)

// Validator checks request commands and query tokens before they reach the store.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the custom task validations registered.
func New() (*Validator, error) {
	validate := validator.New()
	if err := validate.RegisterValidation(fieldTag, FieldValidator); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := validate.RegisterValidation(priorityTag, PriorityValidator); err != nil {
		return nil, errors.WithStack(err)
	}
	return &Validator{validate: validate}, nil
}

// PriorityValidator accepts the exact lowercase priority levels.
func PriorityValidator(fl validator.FieldLevel) bool {
	return models.Priority(fl.Field().String()).Valid()
}

// FieldValidator is a validation function that checks if the field value is blank.
// It returns true if the field value has content other than whitespace, and false otherwise.
func FieldValidator(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// CreateTask validates cmd and returns the task to store, with trimmed text
// and defaults applied. Id and CreatedAt are left for the store to assign.
func (v *Validator) CreateTask(cmd commands.CreateTaskCommand) (models.Task, error) {
	title, err := v.text("title", cmd.Title)
	if err != nil {
		return models.Task{}, err
	}
	description, err := v.text("description", cmd.Description)
	if err != nil {
		return models.Task{}, err
	}
	task := models.Task{
		Title:       title,
		Description: description,
		Priority:    models.PriorityMedium,
	}
	if cmd.Completed.Present {
		completed, err := v.boolean("completed", cmd.Completed)
		if err != nil {
			return models.Task{}, err
		}
		task.Completed = completed
	}
	if cmd.Priority.Present {
		priority, err := v.priority(cmd.Priority)
		if err != nil {
			return models.Task{}, err
		}
		task.Priority = priority
	}
	return task, nil
}

// UpdateTask validates the fields present in cmd with the same rules as
// CreateTask and returns them as a patch. Absent fields stay nil.
func (v *Validator) UpdateTask(cmd commands.UpdateTaskCommand) (models.TaskPatch, error) {
	var patch models.TaskPatch
	if cmd.Title.Present {
		title, err := v.text("title", cmd.Title)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.Title = &title
	}
	if cmd.Description.Present {
		description, err := v.text("description", cmd.Description)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.Description = &description
	}
	if cmd.Completed.Present {
		completed, err := v.boolean("completed", cmd.Completed)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.Completed = &completed
	}
	if cmd.Priority.Present {
		priority, err := v.priority(cmd.Priority)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.Priority = &priority
	}
	return patch, nil
}

func (v *Validator) text(field string, value commands.Optional[string]) (string, error) {
	if !value.Valid || v.validate.Var(value.Value, fieldTag) != nil {
		return "", apperror.Validation(field,
			fmt.Sprintf("Expected %s to be a non-empty string, but got %s", field, value.TypeName()))
	}
	return strings.TrimSpace(value.Value), nil
}

func (v *Validator) boolean(field string, value commands.Optional[bool]) (bool, error) {
	if !value.Valid {
		return false, apperror.Validation(field,
			fmt.Sprintf("Expected %s to be a boolean, but got %s", field, value.TypeName()))
	}
	return value.Value, nil
}

func (v *Validator) priority(value commands.Optional[string]) (models.Priority, error) {
	if !value.Valid || v.validate.Var(value.Value, priorityTag) != nil {
		return "", apperror.Validation("priority", priorityMessage)
	}
	return models.Priority(value.Value), nil
}

// CompletedFilter parses the completed query parameter. values are all the
// values given for the key; nil means the key was absent and no filter applies.
func (v *Validator) CompletedFilter(values []string) (*bool, error) {
	if values == nil {
		return nil, nil
	}
	if len(values) != 1 || v.validate.Var(values[0], "required,oneof=true false") != nil {
		return nil, apperror.New(apperror.InvalidQuery, "completed must be true or false")
	}
	completed := values[0] == "true"
	return &completed, nil
}

// SortOrder parses the sort query parameter. values follows the same
// convention as in CompletedFilter.
func (v *Validator) SortOrder(values []string) (models.SortOrder, error) {
	if values == nil {
		return models.SortNone, nil
	}
	if len(values) != 1 || v.validate.Var(values[0], "required,oneof=asc desc") != nil {
		return models.SortNone, apperror.New(apperror.InvalidQuery, "sort must be asc or desc")
	}
	return models.SortOrder(values[0]), nil
}

// PriorityLevel parses a priority level path token, ignoring case.
func (v *Validator) PriorityLevel(token string) (models.Priority, error) {
	priority, ok := models.ParsePriority(token)
	if !ok {
		return "", apperror.New(apperror.InvalidQuery, priorityMessage)
	}
	return priority, nil
}
