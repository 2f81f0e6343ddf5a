package models

import "time"

// Gender of a person in the family record store.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Person is a family-tree record. Source dates are kept as ISO strings
// (YYYY-MM-DD) exactly as imported; the reminder engine parses them and
// skips records whose dates do not parse.
type Person struct {
	ID                  string    `db:"id" json:"id"`
	FirstName           string    `db:"first_name" json:"first_name"`
	LastName            string    `db:"last_name" json:"last_name"`
	Gender              Gender    `db:"gender" json:"gender"`
	Birthday            string    `db:"birthday" json:"birthday"`
	BirthdayAfterSunset bool      `db:"birthday_after_sunset" json:"birthday_after_sunset"`
	DateOfPassing       *string   `db:"date_of_passing" json:"date_of_passing,omitempty"`
	PassingAfterSunset  bool      `db:"passing_after_sunset" json:"passing_after_sunset"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins the name fields for display.
func (p Person) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// PersonFilter narrows down person listings.
type PersonFilter struct {
	Query    string
	Page     int
	PageSize int
}
