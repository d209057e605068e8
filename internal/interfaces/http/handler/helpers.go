package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platebooks/backend/internal/domain/finance"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// parseIDParam parses the :id path parameter as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter. The
// second return value reports a malformed value; an absent parameter
// yields (nil, true).
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// parseDateQueryDefault parses a YYYY-MM-DD query parameter, falling
// back to the given default when absent.
func parseDateQueryDefault(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	t, ok := parseDateQuery(c, name)
	if !ok {
		return time.Time{}, false
	}
	if t == nil {
		return fallback, true
	}
	return *t, true
}

// parseUUIDQuery parses an optional UUID query parameter.
func parseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// parseBankTypeQuery parses an optional bank_type query parameter.
func parseBankTypeQuery(c *gin.Context) (*finance.BankType, bool) {
	raw := c.Query("bank_type")
	if raw == "" {
		return nil, true
	}
	bankType := finance.BankType(raw)
	if !bankType.IsValid() {
		return nil, false
	}
	return &bankType, true
}

// toSharedFilter converts the bound list request into a domain filter,
// applying defaults for anything left unset.
func toSharedFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}
