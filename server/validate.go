package server

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	digitsRe   = regexp.MustCompile(`^[0-9]+$`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// username_chars: letters, numbers and underscores only.
	validate.RegisterValidation("username_chars", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})

	// digits: numeric characters only (phone numbers).
	validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	})

	// password_strength: at least one lowercase, one uppercase and one digit.
	validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return lowerRe.MatchString(s) && upperRe.MatchString(s) && digitRe.MatchString(s)
	})
}

// ValidationDetail is one field-level validation failure, surfaced verbatim
// to the client.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateStruct runs the registered rules and translates failures into
// client-facing details. A nil slice means the input passed.
func validateStruct(req interface{}) []ValidationDetail {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationDetail{{Field: "", Message: "invalid request"}}
	}

	details := make([]ValidationDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, ValidationDetail{
			Field:   fe.Field(),
			Message: messageForTag(fe),
		})
	}
	return details
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "please provide a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "username_chars":
		return "username can only contain letters, numbers, and underscores"
	case "digits":
		return "phone must contain digits only"
	case "password_strength":
		return "password must contain at least one lowercase letter, one uppercase letter, and one number"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
