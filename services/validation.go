package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return utils.Invalid("invalid input")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
	}
	return utils.Invalid("invalid input: %s", strings.Join(msgs, "; "))
}

// optionalRef normalises an optional id, treating blanks and the given
// sentinels as absent.
func optionalRef(id *string, sentinels ...string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	for _, s := range sentinels {
		if v == s {
			return nil
		}
	}
	return &v
}
