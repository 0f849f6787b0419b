package utils

import "time"

// SuccessResponse and ErrorResponse are the uniform envelopes every endpoint
// returns; clients branch on the success flag before reading data.
type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Meta    *Meta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// APIError carries a stable machine-readable code alongside the human
// message, so clients never have to parse message text.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	Timestamp time.Time   `json:"timestamp"`
	Page      *PageResult `json:"page,omitempty"`
}

// PageResult echoes the applied pagination window on list responses.
type PageResult struct {
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    code,
			Message: message,
		},
	}
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
		},
	}
}

// CreateListResponse wraps a list payload with its pagination window.
func CreateListResponse(data any, count, limit, offset int) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
			Page: &PageResult{
				Count:  count,
				Limit:  limit,
				Offset: offset,
			},
		},
	}
}
