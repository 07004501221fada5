package response

// SuccessResponse is the generic success body for mutations that return no
// resource.
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed"`
}

// ErrorResponse is the API error body.
type ErrorResponse struct {
	// Machine-readable error code
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Human-readable message
	// example: Validation failed
	Message string `json:"message"`

	// Optional details, e.g. the offending field
	// example: end_date_time must be after start_date_time
	Details string `json:"details,omitempty"`
}

// CreatedResponse carries the id of a newly stored resource.
type CreatedResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}
