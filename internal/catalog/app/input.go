package app

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CategoryInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	Icon      string `json:"icon" validate:"max=64"`
	SortOrder int    `json:"sortOrder"`
}

type CategoryPatch struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon      *string `json:"icon" validate:"omitempty,max=64"`
	SortOrder *int    `json:"sortOrder"`
}

type ProductInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Price       int64  `json:"price" validate:"gte=0"`
	Image       string `json:"image" validate:"omitempty,max=2048"`
	CategoryID  string `json:"categoryId" validate:"max=64"`
	Description string `json:"description" validate:"max=2000"`
	// IsActive defaults to true.
	IsActive  *bool `json:"isActive"`
	SortOrder int   `json:"sortOrder"`
}

type ProductPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Image       *string `json:"image" validate:"omitempty,max=2048"`
	CategoryID  *string `json:"categoryId" validate:"omitempty,max=64"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

// InvalidInputError carries per-field messages and matches ErrInvalidInput.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

func invalidField(field, msg string) error {
	return &InvalidInputError{Fields: map[string]string{field: msg}}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func (s *Service) validate(in any) error {
	err := s.validator.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := &InvalidInputError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}
