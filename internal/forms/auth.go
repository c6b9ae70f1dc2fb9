package forms

import (
	"strings"
	"unicode"
)

type Login struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Validate reports a single general error when either field is empty.
func (f Login) Validate() Errors {
	if check(f, nil).Any() {
		return Errors{General: "Username and password are required"}
	}
	return nil
}

type Register struct {
	Username        string `form:"username" validate:"required,min=3"`
	IDNumber        string `form:"idNumber" validate:"required"`
	Birthdate       string `form:"birthdate" validate:"required,datetime=2006-01-02"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

var registerMessages = messages{
	"username": {
		"required": "Username is required",
		"min":      "Username must be at least 3 characters",
	},
	"idNumber": {
		"required": "ID Number is required",
	},
	"birthdate": {
		"required": "Birthdate is required",
		"datetime": "Birthdate must be a valid date",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"confirmPassword": {
		"required": "Please confirm your password",
		"eqfield":  "Passwords do not match",
	},
}

// Normalize trims the identifying fields. Passwords are left untouched.
func (f Register) Normalize() Register {
	f.Username = strings.TrimSpace(f.Username)
	f.IDNumber = strings.TrimSpace(f.IDNumber)
	f.Birthdate = strings.TrimSpace(f.Birthdate)
	return f
}

func (f Register) Validate() Errors {
	return check(f.Normalize(), registerMessages)
}

type Strength string

const (
	StrengthNone   Strength = ""
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// PasswordStrength grades a password: under 6 chars is weak, under 10 is medium,
// and a longer one is strong only with at least three character classes.
func PasswordStrength(pw string) Strength {
	n := len([]rune(pw))
	switch {
	case n == 0:
		return StrengthNone
	case n < 6:
		return StrengthWeak
	case n < 10:
		return StrengthMedium
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(`!@#$%^&*()_+-=[]{};':"\|,.<>/?`, r):
			special = true
		}
	}
	score := 0
	for _, ok := range []bool{upper, lower, digit, special} {
		if ok {
			score++
		}
	}
	if score >= 3 {
		return StrengthStrong
	}
	return StrengthMedium
}
