package dto

// Response represents a standard success response
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination is attached to list responses
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ErrorResponse is the body of every failed request. Error carries the
// human-readable message; Code is one of the ErrCode constants.
type ErrorResponse struct {
	Success   bool               `json:"success"`
	Error     string             `json:"error"`
	Code      string             `json:"code"`
	Field     string             `json:"field,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
	RequestID string             `json:"requestId,omitempty"`
}

// ValidationDetail describes one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DeletedResponse is returned by DELETE endpoints
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewListResponse creates a success response with pagination
func NewListResponse(data interface{}, total int64, page, limit int) Response {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	}
	return Response{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      code,
		RequestID: requestID,
	}
}

// NewFieldErrorResponse creates an error response naming the offending field
func NewFieldErrorResponse(code, message, field, requestID string) ErrorResponse {
	resp := NewErrorResponse(code, message, requestID)
	resp.Field = field
	return resp
}

// NewValidationErrorResponse creates a validation error response. The first
// detail's message becomes the top-level error so clients that only read
// "error" still see which field failed.
func NewValidationErrorResponse(details []ValidationDetail, requestID string) ErrorResponse {
	resp := NewErrorResponse(ErrCodeValidation, "Request validation failed", requestID)
	if len(details) > 0 {
		resp.Error = details[0].Message
		resp.Field = details[0].Field
	}
	resp.Details = details
	return resp
}
