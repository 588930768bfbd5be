package dto

import "time"

// SeminarResp is the stable API response model. Date records are returned
// already resolved against their topic, so consumers never see empty
// fallback fields.
type SeminarResp struct {
	ID         string `json:"id"`
	RecordType string `json:"record_type"`
	TopicID    string `json:"topic_id,omitempty"`

	Title        string `json:"title"`
	Language     string `json:"language,omitempty"`
	EventType    string `json:"event_type,omitempty"`
	PriceRegular int64  `json:"price_regular"`

	BeginDate             *time.Time `json:"begin_date,omitempty"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	RegistrationBeginDate *time.Time `json:"registration_begin_date,omitempty"`
	RegistrationDeadline  *time.Time `json:"registration_deadline,omitempty"`

	NeedsRegistration    bool `json:"needs_registration"`
	AttendeesMax         int  `json:"attendees_max"` // 0 means unlimited
	HasRegistrationQueue bool `json:"has_registration_queue"`

	Status      string     `json:"status"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`

	Speakers []SpeakerReq `json:"speakers,omitempty"`
	PlaceIDs []string     `json:"place_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived
	RegistrationPossible bool   `json:"registration_possible"`
	ClosureReason        string `json:"closure_reason,omitempty"`
	Unlimited            bool   `json:"unlimited"`
	Vacancies            *int   `json:"vacancies,omitempty"`
	EnoughVacancies      bool   `json:"enough_vacancies"`
}

type DecisionResp struct {
	Outcome        string `json:"outcome"`
	ClosureReason  string `json:"closure_reason,omitempty"`
	RegistrationID string `json:"registration_id,omitempty"`
	Seats          int    `json:"seats,omitempty"`
}

type ListResp struct {
	Items      []SeminarResp `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
