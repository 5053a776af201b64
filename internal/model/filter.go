package model

// EventFilter holds criteria for listing captured events.
type EventFilter struct {
	Status []Status    `json:"status,omitempty"`
	Names  []EventName `json:"names,omitempty"`
	Limit  int         `json:"limit,omitempty"`
}
