package validator

import (
	"errors"
	"regexp"
	"strings"

	"mindhaven/internal/user/model"
	appErrors "mindhaven/pkg/errors"
	"mindhaven/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Names are validated after sanitization, so anything that escaped to an
// entity (quotes, angle brackets) fails the letters-and-spaces rule too.
var nameRe = regexp.MustCompile(`^[A-Za-z ]+$`)

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("person_name", validatePersonName)
	if err != nil {
		return
	}
}

func validatePersonName(fl validator.FieldLevel) bool {
	return nameRe.MatchString(fl.Field().String())
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	re := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return re.MatchString(email)
}

var fieldLabels = map[string]string{
	"FirstName": "First name",
	"LastName":  "Last name",
	"Email":     "Email",
	"Password":  "Password",
}

var fieldKeys = map[string]string{
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Email":     "email",
	"Password":  "password",
}

// ValidateRegisterForm checks every field and aggregates the failures so
// the form can show all of them at once. Inputs are expected to be
// sanitized already.
func ValidateRegisterForm(form *model.RegisterForm) appErrors.FieldErrors {
	fieldErrs := collect(validate.Struct(form))

	if _, taken := fieldErrs["password"]; !taken && form.Password != "" {
		if err := utils.ValidatePassword(form.Password); err != nil {
			fieldErrs.Add("password", err.Error())
		}
	}

	return fieldErrs
}

// ValidateLoginForm only checks presence and email shape; password
// strength is never re-validated at login.
func ValidateLoginForm(form *model.LoginForm) appErrors.FieldErrors {
	return collect(validate.Struct(form))
}

func collect(err error) appErrors.FieldErrors {
	fieldErrs := appErrors.FieldErrors{}
	if err == nil {
		return fieldErrs
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fieldErrs.Add("form", "invalid input")
		return fieldErrs
	}

	for _, fe := range validationErrs {
		label := fieldLabels[fe.StructField()]
		if label == "" {
			label = fe.StructField()
		}
		key := fieldKeys[fe.StructField()]
		if key == "" {
			key = strings.ToLower(fe.StructField())
		}

		switch fe.Tag() {
		case "required":
			fieldErrs.Add(key, label+" is required")
		case "person_name":
			fieldErrs.Add(key, label+" may only contain letters and spaces")
		case "email":
			fieldErrs.Add(key, "Invalid email format")
		default:
			fieldErrs.Add(key, label+" is invalid")
		}
	}

	return fieldErrs
}
