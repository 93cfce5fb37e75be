package models

// Student mirrors the upstream "alumno" resource. IDs are server-assigned; a
// zero ID marks an entity that has not been persisted yet.
type Student struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"nombre"`
	BirthDate string `json:"fechaNacimiento"`
}
