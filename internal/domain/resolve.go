package domain

// EffectiveEvent is a flattened event: for a date record the shared fields
// of the linked topic have been overlaid under any locally empty fields.
// Everything downstream of Resolve (deadlines, ledger, admission) consumes
// this type so topic fallbacks never leak into business logic.
type EffectiveEvent struct {
	Event
}

// Resolve produces the EffectiveEvent for e. Complete and topic records
// resolve to themselves and must not carry a topic. A date record requires
// its topic; its own non-empty fields win over the topic's.
func Resolve(e *Event, topic *Event) (*EffectiveEvent, error) {
	if e == nil {
		return nil, ErrValidation("event is required")
	}

	if e.RecordType != RecordDate {
		if topic != nil {
			return nil, ErrValidation("only date records resolve against a topic")
		}
		return &EffectiveEvent{Event: *e}, nil
	}

	if topic == nil {
		return nil, ErrNotFound("topic record for date event not found")
	}
	if topic.RecordType != RecordTopic {
		return nil, ErrInvalidState("linked record is not a topic")
	}
	if topic.ID != e.TopicID {
		return nil, ErrInvalidState("date event links a different topic")
	}

	flat := *e
	if flat.Title == "" {
		flat.Title = topic.Title
	}
	if flat.Language == "" {
		flat.Language = topic.Language
	}
	if flat.EventType == "" {
		flat.EventType = topic.EventType
	}
	if flat.PriceRegular == 0 {
		flat.PriceRegular = topic.PriceRegular
	}
	if len(flat.AttachedFileIDs) == 0 {
		flat.AttachedFileIDs = topic.AttachedFileIDs
	}
	if len(flat.RequirementTopicIDs) == 0 {
		flat.RequirementTopicIDs = topic.RequirementTopicIDs
	}
	return &EffectiveEvent{Event: flat}, nil
}
