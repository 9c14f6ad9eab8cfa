package models

// Local is a physical venue where in-person sessions run. Its capacity is
// the ceiling applied to imported session rows.
type Local struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Address  string `json:"address" db:"address"`
	Capacity int    `json:"capacity" db:"capacity"`
}
