package model

// BookingRequest is one slot a hacker wants in a multi-slot booking call.
// Not persisted; the booking fields land on the slot document.
type BookingRequest struct {
	SlotID            string `json:"slotId" validate:"required"`
	HackerName        string `json:"hackerName" validate:"required,max=100"`
	TeamName          string `json:"teamName" validate:"required,max=100"`
	HackerDescription string `json:"hackerDescription" validate:"required,max=1000"`
	OfflineLocation   string `json:"offlineLocation,omitempty" validate:"omitempty,max=200"`
}

// SlotAnnotations carries the mentor-only fields a mentor may patch on a
// slot they own. Nil means "leave unchanged".
type SlotAnnotations struct {
	MentorNotes      *string `json:"mentorNotes,omitempty" validate:"omitempty,max=2000"`
	MentorMarkAsDone *bool   `json:"mentorMarkAsDone,omitempty"`
	MentorMarkAsAfk  *bool   `json:"mentorMarkAsAfk,omitempty"`
}

func (a *SlotAnnotations) Empty() bool {
	return a.MentorNotes == nil && a.MentorMarkAsDone == nil && a.MentorMarkAsAfk == nil
}
