package model

const (
	LocationOnline  = "online"
	LocationOffline = "offline"
)

// MentorshipSlot is one bookable time window owned by a mentor. Times are
// epoch seconds. The four booking fields are a unit: either all set (booked)
// or all absent (free); HackerID is the authoritative booked marker.
type MentorshipSlot struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	MentorID  string `json:"mentorId" bson:"mentor_id"`
	StartTime int64  `json:"startTime" bson:"start_time"`
	EndTime   int64  `json:"endTime" bson:"end_time"`
	Location  string `json:"location" bson:"location"`

	// Filled on booking when Location is offline.
	OfflineLocation string `json:"offlineLocation,omitempty" bson:"offline_location,omitempty"`

	HackerID          string `json:"hackerId,omitempty" bson:"hacker_id,omitempty"`
	HackerName        string `json:"hackerName,omitempty" bson:"hacker_name,omitempty"`
	TeamName          string `json:"teamName,omitempty" bson:"team_name,omitempty"`
	HackerDescription string `json:"hackerDescription,omitempty" bson:"hacker_description,omitempty"`

	// Mentor-only annotations, independent of booking state.
	MentorNotes      string `json:"mentorNotes,omitempty" bson:"mentor_notes,omitempty"`
	MentorMarkAsDone bool   `json:"mentorMarkAsDone" bson:"mentor_mark_as_done"`
	MentorMarkAsAfk  bool   `json:"mentorMarkAsAfk" bson:"mentor_mark_as_afk"`
}

func (s *MentorshipSlot) Booked() bool {
	return s.HackerID != ""
}

// BookingFields is the unit written on booking and cleared on cancellation.
type BookingFields struct {
	HackerID          string
	HackerName        string
	TeamName          string
	HackerDescription string
	OfflineLocation   string
}

// HackerSlotView is the projection returned to hackers. It strips the
// mentor-only annotation fields.
type HackerSlotView struct {
	ID                string `json:"id,omitempty"`
	MentorID          string `json:"mentorId"`
	StartTime         int64  `json:"startTime"`
	EndTime           int64  `json:"endTime"`
	Location          string `json:"location"`
	OfflineLocation   string `json:"offlineLocation,omitempty"`
	HackerID          string `json:"hackerId,omitempty"`
	HackerName        string `json:"hackerName,omitempty"`
	TeamName          string `json:"teamName,omitempty"`
	HackerDescription string `json:"hackerDescription,omitempty"`
}

func (s *MentorshipSlot) HackerView() HackerSlotView {
	return HackerSlotView{
		ID:                s.ID,
		MentorID:          s.MentorID,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		Location:          s.Location,
		OfflineLocation:   s.OfflineLocation,
		HackerID:          s.HackerID,
		HackerName:        s.HackerName,
		TeamName:          s.TeamName,
		HackerDescription: s.HackerDescription,
	}
}

// SlotFilter narrows slot queries. Zero values mean "no constraint".
type SlotFilter struct {
	StartAfter  int64 // inclusive lower bound on StartTime
	StartBefore int64 // inclusive upper bound on StartTime
	Limit       int64
}

// MentorshipConfig is the single config document gating the booking window.
type MentorshipConfig struct {
	IsMentorshipOpen bool  `json:"isMentorshipOpen" bson:"is_mentorship_open"`
	StartDate        int64 `json:"startDate" bson:"start_date"`
	EndDate          int64 `json:"endDate" bson:"end_date"`
}
