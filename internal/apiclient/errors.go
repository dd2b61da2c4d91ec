package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"parking-api/internal/model"
)

// RequestError reports a request that could not be built.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("build request %s %q: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError is a response with a status code outside 2xx.
type StatusError struct {
	Response Response
}

func (e *StatusError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("status %d: %s", e.Response.StatusCode, msg)
	}
	return fmt.Sprintf("status %d %s", e.Response.StatusCode, http.StatusText(e.Response.StatusCode))
}

// StatusCode returns the HTTP status of the failed response.
func (e *StatusError) StatusCode() int {
	return e.Response.StatusCode
}

// Message returns the "error" field of the body, if the body has one.
func (e *StatusError) Message() string {
	var body model.ErrorResponse
	if err := json.Unmarshal(e.Response.Data, &body); err != nil {
		return ""
	}
	return body.Error
}

// DecodeError reports a 2xx payload that did not match the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response of %q: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AsErrorResponse extracts the ErrorResponse body carried by a StatusError.
func AsErrorResponse(err error) (model.ErrorResponse, bool) {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return model.ErrorResponse{}, false
	}
	var body model.ErrorResponse
	if jsonErr := json.Unmarshal(statusErr.Response.Data, &body); jsonErr != nil || body.Error == "" {
		return model.ErrorResponse{}, false
	}
	return body, true
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode() == http.StatusNotFound
}
