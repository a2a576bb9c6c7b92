package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error carrying an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e Error) StatusCode() int {
	return e.Code
}

func (e Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

var ErrUnauthorized = &Error{Code: http.StatusUnauthorized, Message: "unauthorized"}
var ErrInvalidPath = &Error{Code: http.StatusBadRequest, Message: "invalid path"}

// Authentication & Registration Related Errors

var ErrEmptyPassword = errors.New("empty password") // Password is empty, typically used for registration or login validation failure

var ErrEmptyEmail = errors.New("empty email") // Email is empty, typically used for registration, login and password recovery

var ErrEmailExists = errors.New("email exists, please use another email") // Trying to register an already registered email

var ErrUserNotExists = errors.New("user not exists") // Login, query or operations on non-existent users

var ErrInvalidCredentials = errors.New("invalid email or password") // Login with wrong password

var ErrTokenRequired = errors.New("token required") // Missing required token when accessing protected resources

var ErrInvalidToken = errors.New("invalid token") // Token is illegal, tampered with or expired

var ErrNotActivated = errors.New("user not activated") // Email activation not completed
