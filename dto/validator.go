package dto

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("dial_phone", validateDialPhone)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

// dialPhoneRegex accepts a dial code plus local number, the shape the
// registration form composes: +<1-3 digit country code><4-12 digit number>.
var dialPhoneRegex = regexp.MustCompile(`^\+[1-9][0-9]{0,2}[0-9]{4,12}$`)

func validateDialPhone(fl validator.FieldLevel) bool {
	return dialPhoneRegex.MatchString(fl.Field().String())
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			case "len":
				message = fieldError.Field() + " must be exactly " + fieldError.Param() + " characters"
			case "numeric":
				message = fieldError.Field() + " must contain only numbers"
			case "strong_password":
				message = "Password must contain at least 8 characters with uppercase, lowercase, number, and special character"
			case "dial_phone":
				message = fieldError.Field() + " must be a dial code followed by the local number"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

type fieldError struct {
	field string
}

func (e fieldError) Error() string {
	return e.field + " is required"
}

func requiredFieldError(field string) error {
	return fieldError{field: field}
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	errors := FormatValidationErrors(err)
	if len(errors) == 0 && err != nil {
		errors = append(errors, ValidationError{Message: err.Error()})
	}
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  errors,
	}
}

type ValidationError struct {
	Field   string `json:"field" example:"phone"`
	Message string `json:"message" example:"phone is required"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}
