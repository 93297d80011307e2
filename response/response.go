package response

import (
	"time"

	"redirectflow-go/internal/apperrors"
)

// Response is the generic API envelope.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// PageResponse wraps a paged list.
type PageResponse[T any] struct {
	Page      int `json:"page"`
	Size      int `json:"size"`
	TotalPage int `json:"totalPage"`
	Total     int `json:"total"`
	List      []T `json:"list"`
}

// OK builds a success response.
func OK[T any](data T, message string) *Response[T] {
	return &Response[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Error builds a failure response.
func Error(message string) *Response[any] {
	return &Response[any]{
		Success:   false,
		Message:   message,
		Data:      nil,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ErrorFromAppError builds a failure response from an AppError.
func ErrorFromAppError(err *apperrors.AppError) *Response[any] {
	return &Response[any]{
		Success:   false,
		Message:   err.Message,
		Data:      nil,
		Timestamp: time.Now().UnixMilli(),
	}
}
