package render

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	configureValidator(validate)
}

func configureValidator(validate *validator.Validate) {
	_ = validate.RegisterValidation("momo", validateMomoNumber)
	validate.RegisterTagNameFunc(useJSONTagNames)
}

// Report on 'TagName' json tag instead of struct name
// Look at documentation of 'RegisterTagNameFunc' for more details
func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

// Mobile money numbers: digits only, optional leading +, 9 to 15 digits.
// Providers vary per country so no stricter prefix check is done here.
func validateMomoNumber(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	number = strings.TrimPrefix(number, "+")

	if len(number) < 9 || len(number) > 15 {
		return false
	}

	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}

	return true
}
