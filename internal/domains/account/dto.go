package account

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RegisterRequest creates a new account. Handle and password share the
// same minimum length; name is optional.
type RegisterRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Handle,
			validation.Required.Error("handle is required"),
			validation.Length(3, 50).Error("handle is shorter than the minimum allowed length (3)"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(3, 128).Error("password is shorter than the minimum allowed length (3)"),
		),
		validation.Field(&r.Name,
			validation.Length(0, 100),
		),
	)
}

type LoginRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Handle, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the bearer token plus the public fields of the
// authenticated account.
type LoginResponse struct {
	Token  string `json:"token"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
}
