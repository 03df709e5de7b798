package model

// Ticket is a help request raised by a hacker during the event.
type Ticket struct {
	ID          string   `json:"id,omitempty" bson:"_id,omitempty"`
	Topic       string   `json:"topic" bson:"topic" validate:"required,max=120"`
	Description string   `json:"description" bson:"description" validate:"required,max=2000"`
	Location    string   `json:"location" bson:"location" validate:"max=200"`
	RequestorID string   `json:"requestorId" bson:"requestor_id"`
	Tags        []string `json:"tags" bson:"tags" validate:"max=10,dive,max=40"`
	Taken       bool     `json:"taken" bson:"taken"`
	Resolved    bool     `json:"resolved" bson:"resolved"`
}

// TicketUpdate carries the mutable ticket fields.
type TicketUpdate struct {
	Topic       string   `json:"topic,omitempty" validate:"omitempty,max=120"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location    string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=40"`
	Taken       *bool    `json:"taken,omitempty"`
	Resolved    *bool    `json:"resolved,omitempty"`
}
