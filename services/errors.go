package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ErrorKind classifies a client-correctable input error.
type ErrorKind string

const (
	KindGroupNotInCombo           ErrorKind = "GroupNotInCombo"
	KindDishNotInGroup            ErrorKind = "DishNotInGroup"
	KindOptionNotOnDish           ErrorKind = "OptionNotOnDish"
	KindSelectionCountOutOfRange  ErrorKind = "SelectionCountOutOfRange"
	KindRequiredGroupNotSelected  ErrorKind = "RequiredGroupNotSelected"
	KindDuplicateGroupSelection   ErrorKind = "DuplicateGroupSelection"
	KindComboUnavailable          ErrorKind = "ComboUnavailable"
	KindStructureReferentialError ErrorKind = "StructureReferentialError"
	KindInvalidGroupBounds        ErrorKind = "InvalidGroupBounds"
	KindDuplicateDishInGroup      ErrorKind = "DuplicateDishInGroup"
	KindInvalidField              ErrorKind = "InvalidField"
)

type ValidationError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationErrors collects every violation found in one validation phase.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields groups messages by field, in the order they were found.
func (v ValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string)
	for _, e := range v {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

func (v ValidationErrors) Has(kind ErrorKind) bool {
	for _, e := range v {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func (v *ValidationErrors) add(field string, kind ErrorKind, format string, args ...any) {
	*v = append(*v, ValidationError{Field: field, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
