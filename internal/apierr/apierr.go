// Package apierr normalizes backend error payloads into a single
// human-readable message. The backend emits DRF-style JSON errors whose
// shape varies by endpoint; downstream code and UI copy rely on the
// exact precedence and separators reproduced here.
package apierr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error is a normalized backend error. Message is what should be shown
// to the user; Status is the HTTP status of the failed response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error from a response status and raw body.
func New(status int, body []byte) *Error {
	return &Error{Status: status, Message: Normalize(status, body)}
}

// IsUnauthenticated reports whether err is a backend rejection with a
// 401 or 403 status.
func IsUnauthenticated(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// field is one top-level payload entry, in document order.
type field struct {
	key   string
	value json.RawMessage
}

// Normalize converts a raw error payload into a message, first match
// wins:
//
//  1. a non-empty non_field_errors list, entries joined with a space
//  2. a string detail field, used verbatim
//  3. every remaining list or string field rendered as "key: values",
//     parts joined with " — ", in document order
//  4. "HTTP {status}"
//
// Unparseable or empty bodies degrade to rule 4.
func Normalize(status int, body []byte) string {
	fallback := "HTTP " + strconv.Itoa(status)

	fields, err := parseOrdered(body)
	if err != nil {
		return fallback
	}

	for _, f := range fields {
		if f.key != "non_field_errors" {
			continue
		}
		if vals, ok := stringList(f.value); ok && len(vals) > 0 {
			return strings.Join(vals, " ")
		}
	}
	for _, f := range fields {
		if f.key != "detail" {
			continue
		}
		var s string
		if json.Unmarshal(f.value, &s) == nil {
			return s
		}
	}

	var parts []string
	for _, f := range fields {
		if vals, ok := stringList(f.value); ok {
			parts = append(parts, f.key+": "+strings.Join(vals, " "))
			continue
		}
		var s string
		if json.Unmarshal(f.value, &s) == nil {
			parts = append(parts, f.key+": "+s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " — ")
	}
	return fallback
}

// parseOrdered decodes the top-level object preserving document order,
// which encoding/json maps discard.
func parseOrdered(body []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("payload is not a JSON object")
	}

	var fields []field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		fields = append(fields, field{key: key, value: raw})
	}
	return fields, nil
}

// stringList decodes a JSON array of scalars into strings. Non-scalar
// elements are skipped.
func stringList(raw json.RawMessage) ([]string, bool) {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil, false
	}
	vals := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			vals = append(vals, s)
			continue
		}
		var n json.Number
		if json.Unmarshal(item, &n) == nil {
			vals = append(vals, n.String())
			continue
		}
		var b bool
		if json.Unmarshal(item, &b) == nil {
			vals = append(vals, strconv.FormatBool(b))
		}
	}
	return vals, true
}
