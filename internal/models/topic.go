package models

// Topic mirrors the upstream "tema" resource.
type Topic struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}
