package species

import "time"

// Species y Breed son catálogos por nombre. El booking público los crea
// on-demand (find-or-create), así que no hay un set cerrado de filas.
type Species struct {
	ID   string
	Name string

	CreatedAt time.Time
}

// Breed pertenece a una Species. "Unknown" es la raza default cuando el
// booking no trae raza.
type Breed struct {
	ID        string
	SpeciesID string
	Name      string

	CreatedAt time.Time
}

const DefaultBreedName = "Unknown"
