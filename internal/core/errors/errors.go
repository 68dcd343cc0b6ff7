package errors

const (
	HttpInternalError           = "internal_error"
	HttpInvalidJsonError        = "invalid_json"
	HttpInvalidQueryError       = "invalid_query"
	HttpEncounterNotFoundError  = "encounter_not_found"
	HttpDuplicateEncounterError = "duplicate_encounter"
)

// ErrorResponse is the error response body shared by every HTTP handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
