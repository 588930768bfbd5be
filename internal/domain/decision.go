package domain

// AdmissionKind tags the outcome of an admission attempt. Rejections are
// expected results, not errors: the transport layer maps them to user-facing
// messages and no ledger mutation happens on any rejected path.
type AdmissionKind string

const (
	AdmittedRegular AdmissionKind = "admitted_regular"
	AdmittedQueued  AdmissionKind = "admitted_queued"

	RejectedEventCanceled           AdmissionKind = "event_canceled"
	RejectedRegistrationClosed      AdmissionKind = "registration_closed"
	RejectedRegistrationNotRequired AdmissionKind = "registration_not_required"
	RejectedScheduleConflict        AdmissionKind = "schedule_conflict"
	RejectedNoVacancies             AdmissionKind = "no_vacancies"
)

type Decision struct {
	Kind AdmissionKind

	// ClosureReason is set when Kind == RejectedRegistrationClosed.
	ClosureReason RegistrationClosure

	// RegistrationID and Seats are set on admitted outcomes.
	RegistrationID string
	Seats          int
}

func (d Decision) Admitted() bool {
	return d.Kind == AdmittedRegular || d.Kind == AdmittedQueued
}

func Admitted(kind AdmissionKind, registrationID string, seats int) Decision {
	return Decision{Kind: kind, RegistrationID: registrationID, Seats: seats}
}

func Rejected(kind AdmissionKind) Decision { return Decision{Kind: kind} }

func RejectedClosed(reason RegistrationClosure) Decision {
	return Decision{Kind: RejectedRegistrationClosed, ClosureReason: reason}
}
