package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

// AskParams is the body of an ask request. A nil Limit means "use the
// server default"; an explicit 0 is honoured and yields the no-context answer.
type AskParams struct {
	Question string `json:"question" validate:"required"`
	Limit    *int   `json:"limit" validate:"omitempty,gte=0"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *AskParams) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
