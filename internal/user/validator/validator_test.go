package validator

import (
	"testing"

	"mindhaven/internal/user/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegisterForm_Valid(t *testing.T) {
	t.Parallel()

	form := &model.RegisterForm{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "Abcdef12",
	}

	fieldErrs := ValidateRegisterForm(form)
	assert.False(t, fieldErrs.HasErrors())
}

func TestValidateRegisterForm_RequiredFields(t *testing.T) {
	t.Parallel()

	fieldErrs := ValidateRegisterForm(&model.RegisterForm{})

	assert.Equal(t, "First name is required", fieldErrs["first_name"])
	assert.Equal(t, "Last name is required", fieldErrs["last_name"])
	assert.Equal(t, "Email is required", fieldErrs["email"])
	assert.Equal(t, "Password is required", fieldErrs["password"])
}

func TestValidateRegisterForm_NameRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		firstName string
		wantErr   bool
	}{
		{"letters only", "Jane", false},
		{"letters and spaces", "Mary Jane", false},
		{"digits rejected", "Jane2", true},
		{"escaped quote rejected", "Jane&#39;s", true},
		{"hyphen rejected", "Anne-Marie", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &model.RegisterForm{
				FirstName: tt.firstName,
				LastName:  "Doe",
				Email:     "jane@example.com",
				Password:  "Abcdef12",
			}

			fieldErrs := ValidateRegisterForm(form)
			_, hasErr := fieldErrs["first_name"]
			assert.Equal(t, tt.wantErr, hasErr)
		})
	}
}

func TestValidateRegisterForm_EmailFormat(t *testing.T) {
	t.Parallel()

	form := &model.RegisterForm{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "not-an-email",
		Password:  "Abcdef12",
	}

	fieldErrs := ValidateRegisterForm(form)
	assert.Equal(t, "Invalid email format", fieldErrs["email"])
}

func TestValidateRegisterForm_PasswordPolicy(t *testing.T) {
	t.Parallel()

	weak := []string{"short1A", "alllower1", "ALLUPPER1", "NoDigitsHere"}
	for _, password := range weak {
		form := &model.RegisterForm{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Password:  password,
		}

		fieldErrs := ValidateRegisterForm(form)
		assert.Contains(t, fieldErrs, "password", "password %q should be rejected", password)
	}
}

func TestValidateLoginForm(t *testing.T) {
	t.Parallel()

	fieldErrs := ValidateLoginForm(&model.LoginForm{})
	assert.Equal(t, "Email is required", fieldErrs["email"])
	assert.Equal(t, "Password is required", fieldErrs["password"])

	// Login never re-checks password strength, only presence.
	fieldErrs = ValidateLoginForm(&model.LoginForm{
		Email:    "jane@example.com",
		Password: "weak",
	})
	assert.False(t, fieldErrs.HasErrors())
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidEmail("jane@example.com"))
	assert.True(t, IsValidEmail("jane.doe+tag@sub.example.co"))
	assert.False(t, IsValidEmail("jane@"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("jane at example dot com"))
}
