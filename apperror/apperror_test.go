package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestKindStatus(t *testing.T) {
	testCases := map[Kind]int{
		InvalidId:        http.StatusBadRequest,
		InvalidQuery:     http.StatusBadRequest,
		ValidationError:  http.StatusBadRequest,
		NotFound:         http.StatusNotFound,
		MethodNotAllowed: http.StatusMethodNotAllowed,
		Internal:         http.StatusInternalServerError,
	}
	for kind, want := range testCases {
		if got := kind.Status(); got != want {
			t.Errorf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := errors.Wrap(ErrNotFound, "lookup")
	if KindOf(err) != NotFound {
		t.Errorf("Expected NotFound through wrapping, got %s", KindOf(err))
	}
	if KindOf(errors.New("boom")) != Internal {
		t.Errorf("Expected Internal for plain errors")
	}
	if Is(nil, Internal) {
		t.Errorf("Expected nil error to match no kind")
	}
}
