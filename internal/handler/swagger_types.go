package handler

import (
	"menulens/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// ScanWithImageURL represents a scan with a presigned URL for its photo.
type ScanWithImageURL struct {
	Scan     domain.MenuScan `json:"scan"`
	ImageURL string          `json:"image_url" example:"https://s3.amazonaws.com/menulens-uploads/...?X-Amz-Signature=..."`
}

// MenuItemDoc documents the shape of an extracted menu item.
type MenuItemDoc struct {
	Name        string `json:"name" example:"Margherita Pizza"`
	Price       string `json:"price" example:"$12.99"`
	Description string `json:"description" example:"San Marzano tomatoes, fresh mozzarella, basil"`
	Category    string `json:"category" example:"Pizza"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
