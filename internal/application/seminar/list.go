package seminar

import (
	"context"
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListResult struct {
	Items      []*domain.Event
	NextCursor string
}

// List pages the public seminar listing. The cursor is "begin|id" with begin
// in RFC3339Nano; an empty begin part means the cursor sits in the date-less
// tail of the listing. An empty cursor starts from the beginning.
func (s *Service) List(ctx context.Context, f ListFilter, cursor string) (*ListResult, error) {
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	hasCursor := false
	var afterBegin time.Time
	var afterID string
	if cursor != "" {
		parts := strings.SplitN(cursor, "|", 2)
		if len(parts) != 2 || parts[1] == "" {
			return nil, domain.ErrValidation("malformed cursor")
		}
		if parts[0] != "" {
			t, err := time.Parse(time.RFC3339Nano, parts[0])
			if err != nil {
				return nil, domain.ErrValidation("malformed cursor")
			}
			afterBegin = t
		}
		hasCursor = true
		afterID = parts[1]
	}

	items, err := s.repo.ListUpcoming(ctx, f, hasCursor, afterBegin, afterID)
	if err != nil {
		return nil, err
	}

	next := ""
	if len(items) == f.PageSize {
		last := items[len(items)-1]
		if last.HasBeginDate() {
			next = last.BeginDate.UTC().Format(time.RFC3339Nano) + "|" + last.ID
		} else {
			next = "|" + last.ID
		}
	}
	return &ListResult{Items: items, NextCursor: next}, nil
}
