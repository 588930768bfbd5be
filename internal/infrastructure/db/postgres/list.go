package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/application/seminar"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

// ListUpcoming returns non-canceled seminars ordered by begin date using
// keyset pagination on (begin_date, id). Date-less seminars sort last; a
// zero afterBegin marks a cursor inside that NULL tail, where paging
// continues on id alone.
func (r *Repo) ListUpcoming(
	ctx context.Context,
	f seminar.ListFilter,
	hasCursor bool,
	afterBegin time.Time,
	afterID string,
) ([]*domain.Event, error) {

	where := []string{"status <> 'canceled'", "record_type <> 'topic'"}
	args := []any{}
	argN := 1

	add := func(condFmt string, v any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, v)
		argN++
	}

	if lang := strings.TrimSpace(f.Language); lang != "" {
		add("language = $%d", lang)
	}
	if et := strings.TrimSpace(f.EventType); et != "" {
		add("event_type = $%d", et)
	}
	if f.From != nil {
		add("begin_date >= $%d", f.From.UTC())
	}
	if f.To != nil {
		add("begin_date <= $%d", f.To.UTC())
	}

	if hasCursor {
		if afterBegin.IsZero() {
			add("begin_date IS NULL AND id > $%d", afterID)
		} else {
			// begin_date IS NULL rows sort after every dated row, so they
			// stay reachable from any dated cursor
			where = append(where, fmt.Sprintf(
				"(begin_date > $%d OR (begin_date = $%d AND id > $%d) OR begin_date IS NULL)",
				argN, argN, argN+1))
			args = append(args, afterBegin.UTC(), afterID)
			argN += 2
		}
	}

	q := `
SELECT` + eventColumns + `
FROM events
WHERE ` + strings.Join(where, " AND ") + `
ORDER BY begin_date ASC NULLS LAST, id ASC
LIMIT $` + fmt.Sprintf("%d", argN)

	args = append(args, f.PageSize)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
