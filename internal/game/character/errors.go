package character

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAttribute is matched by InvalidAttributeError.
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrInvalidDetail is matched by InvalidDetailError.
	ErrInvalidDetail = errors.New("invalid detail")
	// ErrInvalidEnumValue is matched by InvalidEnumValueError.
	ErrInvalidEnumValue = errors.New("invalid enum value")
	// ErrInvalidAttributeName is returned when free text names no attribute.
	ErrInvalidAttributeName = errors.New("invalid attribute name")
	// ErrInvalidDetailName is returned when free text names no detail.
	ErrInvalidDetailName = errors.New("invalid detail name")
	// ErrMalformedInput is returned when an uploaded payload is not a JSON object.
	ErrMalformedInput = errors.New("malformed input")
)

// InvalidAttributeError reports an attribute that cannot be mutated.
type InvalidAttributeError struct {
	Attribute AttributeKind
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidAttribute, e.Attribute)
}

func (e *InvalidAttributeError) Is(target error) bool { return target == ErrInvalidAttribute }

// InvalidDetailError reports a detail kind other than DetailName.
type InvalidDetailError struct {
	Detail DetailKind
}

func (e *InvalidDetailError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidDetail, e.Detail)
}

func (e *InvalidDetailError) Is(target error) bool { return target == ErrInvalidDetail }

// InvalidEnumValueError reports an enum-valued wire field carrying an unknown tag.
type InvalidEnumValueError struct {
	Field string
	Value any
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("%s for %s: %v", ErrInvalidEnumValue, e.Field, e.Value)
}

func (e *InvalidEnumValueError) Is(target error) bool { return target == ErrInvalidEnumValue }
