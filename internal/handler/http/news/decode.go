package news

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrMalformedBody is returned when the request body is not a JSON object.
	ErrMalformedBody = errors.New("malformed JSON body")
	// ErrBodyTooLarge is returned when the body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// decodeWrite reads a WriteRequest from r.
// Type mismatches name the offending field so that clients can fix it.
func decodeWrite(r *http.Request) (WriteRequest, error) {
	var req WriteRequest
	if r.Body == nil {
		return req, ErrMalformedBody
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err == nil {
		return req, nil
	}

	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxErr):
		return req, ErrBodyTooLarge
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return req, fmt.Errorf("%w: invalid value for field %q", ErrMalformedBody, typeErr.Field)
	case errors.Is(err, io.EOF):
		return req, fmt.Errorf("%w: empty body", ErrMalformedBody)
	default:
		return req, ErrMalformedBody
	}
}
