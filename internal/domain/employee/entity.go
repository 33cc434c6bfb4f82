package employee

import "time"

// Employee is the roster entry as this service sees it. The directory that
// owns the full employee profile is an external collaborator; only the fields
// needed for absence inference and display are read here.
type Employee struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
