// Package handlers – error classification
//
// classify maps any error reaching the HTTP layer onto a status and a client
// message. Classifiers run in order and the first match wins:
//
//  1. *apperr.Error: its own status and message.
//  2. Malformed input: Postgres 22P02, SQLite SQLITE_MISMATCH, *strconv.NumError,
//     a JSON number decoded into the wrong type.
//  3. Missing required value: Postgres 23502, SQLite SQLITE_CONSTRAINT_NOTNULL,
//     validator.ValidationErrors.
//  4. Broken request body: JSON syntax errors, bodies over the size cap.
//
// Everything else is a 500 whose detail is logged, never returned.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tbourn/go-news-backend/internal/apperr"
)

// Client messages owned by the HTTP layer.
const (
	MsgInternal      = "internal server error"
	MsgRouteNotFound = "Route not found"
	MsgMalformedJSON = "Malformed JSON body"
	MsgBodyTooLarge  = "Request body too large"
)

// Storage error codes.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"

	sqliteConstraint        = 19
	sqliteMismatch          = 20
	sqliteConstraintNotNull = 1299
)

// sqliteCoded matches the pure-Go SQLite driver's error type.
type sqliteCoded interface {
	error
	Code() int
}

type classifier func(err error) (*apperr.Error, bool)

var classifiers = []classifier{
	asAppError,
	asMalformedInput,
	asMissingValue,
	asBrokenBody,
}

// classify returns the client-facing form of err.
func classify(err error) *apperr.Error {
	for _, f := range classifiers {
		if e, ok := f(err); ok {
			return e
		}
	}
	return apperr.New(http.StatusInternalServerError, MsgInternal)
}

func asAppError(err error) (*apperr.Error, bool) {
	return apperr.As(err)
}

func asMalformedInput(err error) (*apperr.Error, bool) {
	bad := apperr.BadRequest(apperr.MsgInvalidNumber)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return bad, true
	}
	var coded sqliteCoded
	if errors.As(err, &coded) && coded.Code()&0xff == sqliteMismatch {
		return bad, true
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return bad, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && isNumeric(typeErr.Type) {
		return bad, true
	}
	return nil, false
}

func asMissingValue(err error) (*apperr.Error, bool) {
	missing := apperr.BadRequest(apperr.MsgIncompletePost)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgNotNullViolation {
		return missing, true
	}
	var coded sqliteCoded
	if errors.As(err, &coded) {
		code := coded.Code()
		if code == sqliteConstraintNotNull ||
			(code == sqliteConstraint && strings.Contains(coded.Error(), "NOT NULL")) {
			return missing, true
		}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return missing, true
	}
	return nil, false
}

func asBrokenBody(err error) (*apperr.Error, bool) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.New(http.StatusRequestEntityTooLarge, MsgBodyTooLarge), true
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperr.BadRequest(MsgMalformedJSON), true
	}
	return nil, false
}

func isNumeric(t reflect.Type) bool {
	if t == nil {
		return false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
