// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines the error taxonomy shared across yt-comments.
// Sentinel errors support errors.Is checks and map to CLI exit codes, while
// *Error carries the kind, HTTP status and structured API details.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidVideoID indicates the video argument is neither an 11-character
	// identifier nor a supported watch/share URL.
	// Maps to exit code 1.
	ErrInvalidVideoID = errors.New("invalid video id")

	// ErrMissingAPIKey indicates no API key was found in flags, env file or environment.
	// Maps to exit code 2.
	ErrMissingAPIKey = errors.New("youtube api key not found")

	// ErrQuotaOrAuth indicates the API rejected the key or the quota is exhausted (HTTP 403).
	// Maps to exit code 2.
	ErrQuotaOrAuth = errors.New("api key rejected or quota exceeded")

	// ErrVideoNotFound indicates the video does not exist or is not visible (HTTP 404).
	// Maps to exit code 2.
	ErrVideoNotFound = errors.New("video not found")

	// ErrBadRequest indicates the API rejected the request parameters (HTTP 400).
	// Maps to exit code 1.
	ErrBadRequest = errors.New("bad request")

	// ErrNetworkFailure indicates a network connection problem or an unreadable response.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrWriteFailed indicates the output directory or file could not be written.
	// Maps to exit code 1.
	ErrWriteFailed = errors.New("failed to write output")
)

// Kind classifies an *Error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAPI
	KindTransport
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	case KindTransport:
		return "transport"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ErrorDetail is one entry of the "errors" list in an API error body.
type ErrorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Error is the tagged error returned by every layer of yt-comments.
// Code is only meaningful for KindAPI and holds the HTTP status.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Details []ErrorDetail

	// Err is the underlying cause, if any.
	Err error

	sentinel error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Kind == KindAPI && e.Code != 0 {
		if status := fmt.Sprintf("HTTP %d", e.Code); msg != status {
			msg = fmt.Sprintf("%s (%s)", msg, status)
		}
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel for the error's class and the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.sentinel != nil {
		errs = append(errs, e.sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewValidation returns a validation error classified as ErrInvalidVideoID.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, sentinel: ErrInvalidVideoID}
}

// NewAPI returns an API error for the given HTTP status. The sentinel is
// derived from the status so callers can use errors.Is.
func NewAPI(code int, message string, details []ErrorDetail) *Error {
	return &Error{
		Kind:     KindAPI,
		Code:     code,
		Message:  message,
		Details:  details,
		sentinel: sentinelForStatus(code),
	}
}

// NewTransport returns a transport error classified as ErrNetworkFailure.
func NewTransport(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: cause, sentinel: ErrNetworkFailure}
}

// NewIO returns an I/O error classified as ErrWriteFailed.
func NewIO(message string, cause error) *Error {
	return &Error{Kind: KindIO, Message: message, Err: cause, sentinel: ErrWriteFailed}
}

// AsError reports whether err contains an *Error and returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by an API error in err's chain,
// or 0 if there is none.
func StatusCode(err error) int {
	if e, ok := AsError(err); ok && e.Kind == KindAPI {
		return e.Code
	}
	return 0
}

func sentinelForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrQuotaOrAuth
	case http.StatusNotFound:
		return ErrVideoNotFound
	default:
		return nil
	}
}
