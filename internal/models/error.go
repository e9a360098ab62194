package models

// BaseError is the base type for API errors
type BaseError struct {
	Error string `json:"error" example:"something bad"`
}

// ValidationErrors is returned in the body of an HTTP 400.  It maps each
// offending request field to the reason it was rejected.
type ValidationErrors map[string]string

func NewBadPathParameterError(param string) ValidationErrors {
	return ValidationErrors{param: "path parameter invalid"}
}

func NewQueryParameterRequiredError(param string) ValidationErrors {
	return ValidationErrors{param: "query parameter is required"}
}

func NewFieldValidationError(field string, reason string) ValidationErrors {
	return ValidationErrors{field: reason}
}

// NewBadPayloadError is returned when the request body is not valid json.
func NewBadPayloadError() BaseError {
	return BaseError{
		Error: "request json is invalid",
	}
}

// NotFoundError is returned in the body of an HTTP 404
type NotFoundError struct {
	BaseError
	Resource string `json:"resource,omitempty" example:"device"`
}

func NewNotFoundError(resource string, message string) NotFoundError {
	return NotFoundError{
		Resource: resource,
		BaseError: BaseError{
			Error: message,
		},
	}
}

// InternalServerError is returned in the body of an HTTP 500
type InternalServerError struct {
	BaseError
	TraceId string `json:"trace_id,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}

func NewInternalServerError(message string, traceId string) InternalServerError {
	return InternalServerError{
		BaseError: BaseError{
			Error: message,
		},
		TraceId: traceId,
	}
}
