package dto

import "time"

type SpeakerReq struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	CancellationPeriodDays int    `json:"cancellation_period_days,omitempty"`
}

type CreateSeminarReq struct {
	RecordType string `json:"record_type"` // complete | topic | date
	TopicID    string `json:"topic_id,omitempty"`

	Title     string `json:"title"`
	Language  string `json:"language,omitempty"`
	EventType string `json:"event_type,omitempty"`

	BeginDate             *time.Time `json:"begin_date,omitempty"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	RegistrationBeginDate *time.Time `json:"registration_begin_date,omitempty"`
	RegistrationDeadline  *time.Time `json:"registration_deadline,omitempty"`

	NeedsRegistration    bool `json:"needs_registration"`
	AttendeesMax         int  `json:"attendees_max"` // 0 = unlimited
	HasRegistrationQueue bool `json:"has_registration_queue"`

	AllowRegistrationWithoutDate      bool `json:"allow_registration_without_date"`
	AllowRegistrationForStartedEvents bool `json:"allow_registration_for_started_events"`
	SkipCollisionCheck                bool `json:"skip_collision_check"`

	Speakers []SpeakerReq `json:"speakers,omitempty"`
	PlaceIDs []string     `json:"place_ids,omitempty"`
}

type RegisterReq struct {
	Seats        int               `json:"seats"`
	AttendeeData map[string]string `json:"attendee_data,omitempty"`
}

type OfflineAdmissionReq struct {
	Seats int `json:"seats"`
}

type CancelSeminarReq struct {
	Reason string `json:"reason"`
}
