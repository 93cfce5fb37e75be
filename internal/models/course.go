package models

// Course mirrors the upstream "curso" resource. The upstream API embeds full
// copies of the related topic, teacher and students rather than foreign keys,
// so the console treats those as values and re-fetches the authoritative lists
// after every mutation instead of patching embedded copies.
//
// Dates travel as ISO "2006-01-02" strings; the end-date filter endpoint is an
// exact string match, so the console never reparses them. EndDate before
// StartDate is accepted as-is — the upstream owns that rule.
type Course struct {
	ID        int64     `json:"id,omitempty"`
	StartDate string    `json:"fechaInicio"`
	EndDate   string    `json:"fechaFin"`
	Price     float64   `json:"precio"`
	Topic     *Topic    `json:"tema"`
	Teacher   *Teacher  `json:"docente"`
	Students  []Student `json:"alumnos"`
}

// Clone returns a deep copy so edit drafts never alias list entries.
func (c Course) Clone() Course {
	cp := c
	if c.Topic != nil {
		t := *c.Topic
		cp.Topic = &t
	}
	if c.Teacher != nil {
		t := *c.Teacher
		cp.Teacher = &t
	}
	if c.Students != nil {
		cp.Students = make([]Student, len(c.Students))
		copy(cp.Students, c.Students)
	}
	return cp
}
