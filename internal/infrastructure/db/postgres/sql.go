package postgres

const eventColumns = `
  id, record_type, topic_id, title, language, event_type, price_regular,
  attached_file_ids, begin_date, end_date,
  registration_begin_date, registration_deadline, unregistration_deadline,
  allow_reg_without_date, allow_reg_started,
  needs_registration, attendees_max, has_registration_queue,
  allow_unreg_empty_waitlist, skip_collision_check,
  status, confirmed_at, canceled_at,
  organizer_ids, speakers, place_ids, requirement_topic_ids,
  created_at, updated_at`

const insertEventSQL = `
INSERT INTO events (` + eventColumns + `
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29)
`

const getEventSQL = `
SELECT` + eventColumns + `
FROM events WHERE id = $1
`

const getEventForUpdateSQL = getEventSQL + `FOR UPDATE
`

const updateEventSQL = `
UPDATE events SET
  title=$2, language=$3, event_type=$4, price_regular=$5, attached_file_ids=$6,
  begin_date=$7, end_date=$8,
  registration_begin_date=$9, registration_deadline=$10, unregistration_deadline=$11,
  allow_reg_without_date=$12, allow_reg_started=$13,
  needs_registration=$14, attendees_max=$15, has_registration_queue=$16,
  allow_unreg_empty_waitlist=$17, skip_collision_check=$18,
  status=$19, confirmed_at=$20, canceled_at=$21,
  organizer_ids=$22, speakers=$23, place_ids=$24, requirement_topic_ids=$25,
  updated_at=$26
WHERE id=$1
`

const getAttendanceSQL = `
SELECT regular_seats, queue_seats, offline_seats, paid_seats
FROM event_attendance WHERE event_id = $1
`

const getAttendanceForUpdateSQL = getAttendanceSQL + `FOR UPDATE
`

// bootstrap only: DO NOTHING so a concurrent first admission that already
// committed counts is never overwritten back to zero
const insertAttendanceIfAbsentSQL = `
INSERT INTO event_attendance (event_id, regular_seats, queue_seats, offline_seats, paid_seats, updated_at)
VALUES ($1,0,0,0,0,$2)
ON CONFLICT (event_id) DO NOTHING
`

const upsertAttendanceSQL = `
INSERT INTO event_attendance (event_id, regular_seats, queue_seats, offline_seats, paid_seats, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (event_id) DO UPDATE SET
  regular_seats=EXCLUDED.regular_seats,
  queue_seats=EXCLUDED.queue_seats,
  offline_seats=EXCLUDED.offline_seats,
  paid_seats=EXCLUDED.paid_seats,
  updated_at=EXCLUDED.updated_at
`

const registrationColumns = `
  id, event_id, user_id, seats, on_queue, payment_date, canceled_at,
  attendee_data, created_at, updated_at`

const insertRegistrationSQL = `
INSERT INTO registrations (` + registrationColumns + `
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`

const getRegistrationSQL = `
SELECT` + registrationColumns + `
FROM registrations WHERE id = $1
`

const getActiveRegistrationSQL = `
SELECT` + registrationColumns + `
FROM registrations
WHERE event_id = $1 AND user_id = $2 AND canceled_at IS NULL
`

const updateRegistrationSQL = `
UPDATE registrations SET
  seats=$2, on_queue=$3, payment_date=$4, canceled_at=$5, updated_at=$6
WHERE id=$1
`

// longest-waiting active queue member that fits the freed seats
const oldestQueuedSQL = `
SELECT` + registrationColumns + `
FROM registrations
WHERE event_id = $1 AND on_queue AND canceled_at IS NULL AND seats <= $2
ORDER BY created_at ASC
LIMIT 1
FOR UPDATE SKIP LOCKED
`

// time windows of events the user holds an active regular registration for
const userBookingsSQL = `
SELECT e.begin_date, e.end_date
FROM registrations r
JOIN events e ON e.id = r.event_id
WHERE r.user_id = $1 AND r.canceled_at IS NULL AND NOT r.on_queue
  AND e.status <> 'canceled'
`
