package model

// RegisterForm carries raw values from the registration page. Fields are
// sanitized before validation; the sanitized values are what get stored
// and what get echoed back on failure (except the password).
type RegisterForm struct {
	FirstName string `form:"first_name" validate:"required,person_name"`
	LastName  string `form:"last_name" validate:"required,person_name"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required"`
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
