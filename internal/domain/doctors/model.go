package doctors

import "time"

type Doctor struct {
	ID        string
	FirstName string
	LastName  string

	CreatedAt time.Time
}

// DisplayName es como el front muestra al doctor ("Ana García").
func (d Doctor) DisplayName() string {
	return d.FirstName + " " + d.LastName
}
