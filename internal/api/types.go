package api

import "github.com/satriahrh/inventario/domain/entities"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string                `json:"error"`
	Message string                `json:"message,omitempty"`
	Fields  []entities.FieldError `json:"fields,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Subscribers int    `json:"subscribers"`
}

// AssetListResponse is the filtered asset view
type AssetListResponse struct {
	Filter entities.AssetFilter `json:"filter"`
	Assets []*entities.Asset    `json:"assets"`
	Total  int                  `json:"total"`
}

// SummaryResponse carries the active per-type counts and the dashboard cards
type SummaryResponse struct {
	Counts                 map[entities.AssetType]int `json:"counts"`
	Cards                  []entities.TypeCount       `json:"cards"`
	NextRegistrationNumber int                        `json:"nextRegistrationNumber"`
}

// UserListResponse lists every user in insertion order
type UserListResponse struct {
	Users []*entities.User `json:"users"`
	Total int              `json:"total"`
}
