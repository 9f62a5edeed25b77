package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/unigrade/internal/grading"
	"github.com/verte-zerg/unigrade/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" {
			return name
		}
		return fld.Name
	})
	if err := v.RegisterValidation("credits", func(fl validator.FieldLevel) bool {
		_, ok := grading.ParseCredits(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks resolved settings and reports the first problem in terms
// of the flag that sets it.
func Validate(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("--%s must not be empty", fe.Field())
	case "oneof":
		return fmt.Errorf("--%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "credits":
		return fmt.Errorf("--%s must be a number greater than 0", fe.Field())
	default:
		return fmt.Errorf("--%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
