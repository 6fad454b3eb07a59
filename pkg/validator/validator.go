// Package validator registers the request-body validations shared by
// the API's binding tags.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex   = regexp.MustCompile(`^\d{10}$`)
	aadharRegex  = regexp.MustCompile(`^\d{12}$`)
	gmailRegex   = regexp.MustCompile(`^[a-zA-Z0-9_.]+@gmail\.com$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// Register installs the custom validations on gin's binding engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	validations := map[string]validator.Func{
		"phone10":   matcher(phoneRegex),
		"aadhar12":  matcher(aadharRegex),
		"gmailaddr": gmail,
		"pincode6":  matcher(pincodeRegex),
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func matcher(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// gmail matches case-insensitively, as the original registration flow did.
func gmail(fl validator.FieldLevel) bool {
	return gmailRegex.MatchString(strings.ToLower(fl.Field().String()))
}

// ValidPhone reports whether s is a 10-digit phone number. Exposed for
// path-parameter checks that bypass body binding.
func ValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// ValidAadhar reports whether s is a 12-digit Aadhar number.
func ValidAadhar(s string) bool {
	return aadharRegex.MatchString(s)
}
