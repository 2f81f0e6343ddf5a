package models

import "time"

// EventType classifies a reminder-worthy life event.
type EventType string

const (
	EventTypeBirthday    EventType = "birthday"
	EventTypeYahrzeit    EventType = "yahrzeit"
	EventTypeAnniversary EventType = "anniversary"
	EventTypeBarMitzvah  EventType = "bar_mitzvah"
	EventTypeBatMitzvah  EventType = "bat_mitzvah"
	EventTypeAliyah      EventType = "aliyah"
	EventTypeOther       EventType = "other"
)

// ValidEventType reports whether t is one of the known custom event types.
// Birthdays and yahrzeits are derived from person records, never stored as
// custom events.
func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeAnniversary, EventTypeBarMitzvah, EventTypeBatMitzvah, EventTypeAliyah, EventTypeOther:
		return true
	}
	return false
}

// CustomEvent is an externally recorded dated event attached to a person,
// e.g. a wedding anniversary shared with a related person.
type CustomEvent struct {
	ID              string    `db:"id" json:"id"`
	PersonID        string    `db:"person_id" json:"person_id"`
	RelatedPersonID *string   `db:"related_person_id" json:"related_person_id,omitempty"`
	EventType       EventType `db:"event_type" json:"event_type"`
	Name            *string   `db:"name" json:"name,omitempty"`
	Date            string    `db:"date" json:"date"`
	AfterSunset     bool      `db:"after_sunset" json:"after_sunset"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// UpcomingEvent is a fully derived, disposable cache row: one computed
// occurrence of a person's event inside the rolling look-ahead window. At
// most one row exists per (person, event type, occurrence date); the refresh
// replaces the whole window atomically.
type UpcomingEvent struct {
	ID              string    `db:"id" json:"id"`
	PersonID        string    `db:"person_id" json:"person_id"`
	RelatedPersonID *string   `db:"related_person_id" json:"related_person_id,omitempty"`
	CustomEventID   *string   `db:"custom_event_id" json:"custom_event_id,omitempty"`
	EventType       EventType `db:"event_type" json:"event_type"`
	Name            string    `db:"name" json:"name"`
	OccursOn        time.Time `db:"occurs_on" json:"occurs_on"`
	HebrewDate      string    `db:"hebrew_date" json:"hebrew_date"`
	SourceDate      string    `db:"source_date" json:"source_date"`
	Years           int       `db:"years" json:"years"`
	ComputedAt      time.Time `db:"computed_at" json:"computed_at"`
}

// UpcomingFilter narrows down cached upcoming events.
type UpcomingFilter struct {
	Start        time.Time
	End          time.Time
	Types        []EventType
	SubscriberID string
	Page         int
	PageSize     int
}
