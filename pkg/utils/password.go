package utils

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePassword enforces the registration password policy: at least
// 8 characters with one lowercase letter, one uppercase letter and one
// digit. Login only checks presence, never strength.
func ValidatePassword(password string) error {
	var (
		hasUpper  = false
		hasLower  = false
		hasNumber = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if len(password) < 8 || !hasUpper || !hasLower || !hasNumber {
		return errors.New("password must be at least 8 characters and contain an uppercase letter, " +
			"a lowercase letter and a number")
	}

	return nil
}
