package models

// Teacher mirrors the upstream "docente" resource.
type Teacher struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"nombre"`
	EmployeeCode string `json:"legajo"`
}
