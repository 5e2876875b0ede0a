package errs

import (
	"context"
	"errors"
	"net/http"
)

// CodeError carries the HTTP status a failed operation should surface as.
type CodeError struct {
	Status int
	Msg    string
}

func New(status int, msg string) *CodeError {
	return &CodeError{Status: status, Msg: msg}
}

func (e *CodeError) Error() string { return e.Msg }

type body struct {
	Error string `json:"error"`
}

// HTTPHandler maps logic errors to wire responses. Register it with
// httpx.SetErrorHandlerCtx at startup; anything that is not a CodeError
// stays a 400 so request parsing failures keep their default shape.
func HTTPHandler(_ context.Context, err error) (int, any) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Status, body{Error: ce.Msg}
	}
	return http.StatusBadRequest, body{Error: err.Error()}
}
