package commands

import (
	"errors"
	"strconv"

	"TaskTrackerService/apperror"
)

// NoTaskId is the id of a well-formed token too large for an int.
// No stored task ever has it, so lookups report the task as not found.
const NoTaskId = -1

// TaskIdCommand represents a command addressing a single task by id,
// as used by get, update and delete requests.
type TaskIdCommand struct {
	Id int `json:"id"`
}

// ParseTaskId builds a TaskIdCommand from a raw path token.
// The token must consist of decimal digits only; signs and spaces are
// rejected with apperror.ErrInvalidId. Values that overflow an int get NoTaskId.
func ParseTaskId(token string) (TaskIdCommand, error) {
	if token == "" {
		return TaskIdCommand{}, apperror.ErrInvalidId
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return TaskIdCommand{}, apperror.ErrInvalidId
		}
	}
	id, err := strconv.Atoi(token)
	if errors.Is(err, strconv.ErrRange) {
		return TaskIdCommand{Id: NoTaskId}, nil
	}
	if err != nil {
		return TaskIdCommand{}, apperror.ErrInvalidId
	}
	return TaskIdCommand{Id: id}, nil
}
