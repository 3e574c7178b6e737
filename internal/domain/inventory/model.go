package inventory

import "time"

// Item de inventario. El dashboard solo usa los conteos; la lista existe
// para que recepción pueda revisar stock.
type Item struct {
	ID           string
	Name         string
	Quantity     int
	ReorderLevel int

	CreatedAt time.Time
	UpdatedAt time.Time
}
