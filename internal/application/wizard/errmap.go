package wizard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// httpStatusError is implemented by transport errors that carry the backend
// status code (see the club API adapter).
type httpStatusError interface {
	error
	HTTPStatus() int
}

// TranslateSubmitError maps a submission failure onto field or root errors.
//
// The backend reports uniqueness conflicts as free-text messages inside an
// "errors":[...] array ("RG já cadastrado", ...). That shape is not a
// documented contract; this function is the single place that knows it, and
// its tests pin the exact strings.
func TranslateSubmitError(err error) FieldErrors {
	out := FieldErrors{}
	if err == nil {
		return out
	}
	if errors.Is(err, ErrPersonRequired) || errors.Is(err, ErrFlowNotImplemented) {
		out[RootField] = err.Error()
		return out
	}

	var se httpStatusError
	if errors.As(err, &se) && se.HTTPStatus() == http.StatusForbidden {
		out[RootField] = "you do not have permission to perform this action"
		return out
	}

	matched := false
	for _, msg := range backendMessages(err.Error()) {
		if !strings.Contains(msg, "já cadastrado") {
			continue
		}
		switch {
		case strings.Contains(msg, "RG"):
			out["person.rg"] = msg
			matched = true
		case strings.Contains(msg, "CPF"):
			out["person.cpf"] = msg
			matched = true
		case strings.Contains(strings.ToLower(msg), "mail"):
			out["person.email"] = msg
			matched = true
		}
	}
	if !matched {
		out[RootField] = "submission failed: " + err.Error()
	}
	return out
}

// backendMessages extracts the messages of an "errors":[...] array embedded
// anywhere in the text, falling back to the raw text.
func backendMessages(text string) []string {
	idx := strings.Index(text, `"errors"`)
	if idx < 0 {
		return []string{text}
	}
	fragment := text[idx:]
	start := strings.Index(fragment, "[")
	end := strings.Index(fragment, "]")
	if start < 0 || end < start {
		return []string{text}
	}
	var msgs []string
	if jsonErr := json.Unmarshal([]byte(fragment[start:end+1]), &msgs); jsonErr != nil || len(msgs) == 0 {
		return []string{text}
	}
	return msgs
}
