package server

import "cenovnik/internal/spreadsheet"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// UploadResponse is returned after a spreadsheet was stored and parsed.
type UploadResponse struct {
	Message    string                 `json:"message"`
	Products   []spreadsheet.Product  `json:"products"`
	UpdateInfo spreadsheet.UpdateInfo `json:"updateInfo"`
}

// ProductsResponse is the listing served for a market and location.
type ProductsResponse struct {
	Products   []spreadsheet.Product  `json:"products"`
	UpdateInfo spreadsheet.UpdateInfo `json:"updateInfo"`
}

// ComponentHealth is the state of one dependency.
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse reports the service and its storage backend.
type HealthResponse struct {
	Status  string          `json:"status"`
	Storage ComponentHealth `json:"storage"`
}
