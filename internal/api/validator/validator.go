package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const sep = " and "

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validate(data interface{}) []Error
	Message(errs []Error) string
}

type XValidator struct {
	validator *validator.Validate
}

func NewXValidator(v *validator.Validate) IXValidator {
	return &XValidator{validator: v}
}

func (x *XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, Error{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})
		}
	}

	return validationErrors
}

func (x *XValidator) Message(errs []Error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, fmt.Sprintf("The '%s' format is invalid", err.FailedField))
	}

	return strings.Join(msgs, sep)
}
