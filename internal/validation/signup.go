// Package validation provides input validation for registration forms.
package validation

import (
	"fmt"
	"regexp"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// ValidateUsername checks the username against the allowed pattern.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-20 characters of letters, numbers, underscores, or hyphens")
	}
	return nil
}

// ValidatePassword checks password length bounds. Any characters are allowed.
func ValidatePassword(password string) error {
	if len(password) < 3 || len(password) > 20 {
		return fmt.Errorf("password must be 3-20 characters long")
	}
	return nil
}

// ValidateEmail checks email shape. An empty email is valid; the field is
// optional.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// SignupForm is the raw registration input.
type SignupForm struct {
	Username string
	Password string
	Verify   string
	Email    string
}

// CheckSignup validates a registration form and returns field-specific error
// messages, keyed the way the form redisplays them. An empty map means the
// form is valid.
func CheckSignup(form SignupForm) map[string]string {
	errs := map[string]string{}

	if err := ValidateUsername(form.Username); err != nil {
		errs["username"] = "That's not a valid username."
	}

	if err := ValidatePassword(form.Password); err != nil {
		errs["password"] = "That wasn't a valid password."
	} else if form.Password != form.Verify {
		errs["verify"] = "Your passwords didn't match."
	}

	if err := ValidateEmail(form.Email); err != nil {
		errs["email"] = "That's not a valid email."
	}

	return errs
}
