package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/studentdb/api/apistudentv1"
	"github.com/fulldump/studentdb/collection"
	"github.com/fulldump/studentdb/database"
	"github.com/fulldump/studentdb/record"
	"github.com/fulldump/studentdb/service"
	"github.com/fulldump/studentdb/snapshot"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("temporary unavailable")
)

// PrettyError is the body of every error response, wrapped in an "error"
// object.
type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	envelope := struct {
		Error PrettyError `json:"error"`
	}{p}
	return jsonv2.MarshalWrite(w, envelope, jsontext.AllowInvalidUTF8(true))
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening {
				box.SetError(ctx, fmt.Errorf("%w: opening", ErrUnavailable))
				return
			}
			if status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: closing", ErrUnavailable))
				return
			}
			next(ctx)
		}
	}
}

// Authenticate requires X-Api-Key and X-Api-Secret headers. An empty apiKey
// disables the check.
func Authenticate(apiKey, apiSecret string) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			if apiKey == "" {
				next(ctx)
				return
			}

			r := box.GetRequest(ctx)
			key := r.Header.Get("X-Api-Key")
			secret := r.Header.Get("X-Api-Secret")

			validKey := subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1
			validSecret := subtle.ConstantTimeCompare([]byte(secret), []byte(apiSecret)) == 1
			if !validKey || !validSecret {
				box.SetError(ctx, ErrUnauthorized)
				return
			}

			next(ctx)
		}
	}
}

func isMalformedBody(err error) bool {

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var syntacticError *jsontext.SyntacticError
	var semanticError *jsonv2.SemanticError

	return errors.As(err, &syntaxError) ||
		errors.As(err, &typeError) ||
		errors.As(err, &syntacticError) ||
		errors.As(err, &semanticError)
}

func isBadRequest(err error) bool {
	return record.IsValidationError(err) ||
		errors.Is(err, service.ErrorUnknownOrder) ||
		errors.Is(err, service.ErrorEmptyQuery) ||
		errors.Is(err, apistudentv1.ErrInvalidStudentID)
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrorStudentNotFound) ||
		errors.Is(err, collection.ErrNotFound) ||
		errors.Is(err, collection.ErrCourseNotFound)
}

func writeError(w http.ResponseWriter, status int, err error, description string) {
	w.WriteHeader(status)
	PrettyError{
		Message:     err.Error(),
		Description: description,
	}.MarshalTo(w)
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		switch {
		case err == ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, err, "user is not authenticated")

		case err == box.ErrResourceNotFound:
			writeError(w, http.StatusNotFound, err, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()))

		case err == box.ErrMethodNotAllowed:
			writeError(w, http.StatusMethodNotAllowed, err, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method))

		case isNotFound(err):
			writeError(w, http.StatusNotFound, err, "Not found")

		case errors.Is(err, collection.ErrDuplicateID):
			writeError(w, http.StatusConflict, err, "Student already exists")

		case isMalformedBody(err):
			writeError(w, http.StatusBadRequest, err, "Malformed JSON")

		case isBadRequest(err):
			writeError(w, http.StatusBadRequest, err, "Invalid input")

		case errors.Is(err, ErrUnavailable), errors.Is(err, snapshot.ErrFileUnavailable):
			writeError(w, http.StatusServiceUnavailable, err, "Service unavailable, try again later")

		default:
			writeError(w, http.StatusInternalServerError, err, "Unexpected error")
		}
	}
}
