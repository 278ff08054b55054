package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// User represents a user in the database.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var errPasswordTooLong = errors.New("the length must be no more than 72 bytes")

// SignupRequest is the payload of the signup form.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the signup form rules. bcrypt refuses passwords longer than
// 72 bytes with ErrPasswordTooLong, so they are rejected here first. Length
// counts runes, hence the separate byte check.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0), validation.By(passwordBytes)),
	)
}

func passwordBytes(value interface{}) error {
	if s, _ := value.(string); len(s) > maxPasswordBytes {
		return errPasswordTooLong
	}
	return nil
}

// SigninRequest is the payload of the signin form.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the signin form rules.
func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}
