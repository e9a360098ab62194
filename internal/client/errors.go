package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ResponseError is returned when the server answers with an error status.
type ResponseError struct {
	StatusCode int
	// Message is the reason reported by the server.
	Message string
	// Fields holds the per field reasons of a validation failure.
	Fields  map[string]string
	TraceID string
}

func (e *ResponseError) Error() string {
	message := fmt.Sprintf("error: %s", e.Message)
	if e.TraceID != "" {
		message += fmt.Sprintf(": trace id: %s", e.TraceID)
	}
	return message + fmt.Sprintf(", status: %d", e.StatusCode)
}

// decodeError converts an error response into a ResponseError.  The server
// answers 400s with a map of field reasons and other errors with an object
// carrying an error message.
func decodeError(resp *resty.Response) error {
	e := &ResponseError{
		StatusCode: resp.StatusCode(),
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &body); err != nil || len(body) == 0 {
		e.Message = strings.TrimSpace(string(resp.Body()))
		if e.Message == "" {
			e.Message = resp.Status()
		}
		return e
	}

	if message, ok := body["error"].(string); ok {
		e.Message = message
		if traceID, ok := body["trace_id"].(string); ok {
			e.TraceID = traceID
		}
		return e
	}

	e.Fields = map[string]string{}
	var reasons []string
	for field, reason := range body {
		text := fmt.Sprintf("%v", reason)
		e.Fields[field] = text
		reasons = append(reasons, fmt.Sprintf("%s: %s", field, text))
	}
	sort.Strings(reasons)
	e.Message = strings.Join(reasons, ", ")
	return e
}
