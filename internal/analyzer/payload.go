package analyzer

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Indent is the indentation used when pretty-printing a payload.
const Indent = "  "

var errInvalidJSON = errors.New("payload is not valid JSON")

// FormatPayload is the second decode step. The envelope's data field must be
// a JSON string whose contents are themselves valid JSON; the result is that
// inner document re-indented, with key order preserved.
func FormatPayload(env *Envelope) (string, error) {
	var payload string
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return "", &PayloadError{Err: err}
	}

	inner := bytes.TrimSpace([]byte(payload))
	if !json.Valid(inner) {
		return "", &PayloadError{Err: errInvalidJSON}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, inner, "", Indent); err != nil {
		return "", &PayloadError{Err: err}
	}
	return buf.String(), nil
}
