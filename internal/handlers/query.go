package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"feedloop-server/internal/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePagination resolves page/limit query values with defaults and caps.
func parsePagination(pageStr, limitStr string) repository.Pagination {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return repository.Pagination{Page: page, Limit: limit}
}

// parseSort normalizes sort[column]/sort[direction]; the repository applies
// its own column whitelist.
func parseSort(column, direction string) repository.ReportSort {
	direction = strings.ToLower(direction)
	if direction != "asc" {
		direction = "desc"
	}
	return repository.ReportSort{Column: column, Direction: direction}
}

// parseDate accepts a bare date or a full RFC 3339 timestamp. Bare dates used
// as range ends are pushed to the end of the day so the range stays inclusive.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// reportFilterQuery validates the filter[...] enum values before they reach
// the repository.
type reportFilterQuery struct {
	Type     string `validate:"omitempty,oneof=bug initiative feedback"`
	Status   string `validate:"omitempty,oneof=active archived"`
	Priority string `validate:"omitempty,oneof=low medium high critical"`
}

func parseReportFilter(c *fiber.Ctx, typeKey, statusKey, priorityKey string) (repository.ReportFilter, error) {
	q := reportFilterQuery{
		Type:     c.Query(typeKey),
		Status:   c.Query(statusKey),
		Priority: c.Query(priorityKey),
	}
	if err := validate.Struct(&q); err != nil {
		return repository.ReportFilter{}, err
	}
	return repository.ReportFilter{
		Type:     q.Type,
		Status:   q.Status,
		Priority: q.Priority,
	}, nil
}
