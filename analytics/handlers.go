package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the analytics HTTP endpoints.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RecordVisit accepts a page-view beacon from the client. Bot traffic is
// acknowledged but not stored.
func (h *Handler) RecordVisit(c echo.Context) error {
	var req VisitRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if req.Path == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	ua := c.Request().UserAgent()
	if IsBot(ua) {
		return c.NoContent(http.StatusNoContent)
	}

	ip := c.RealIP()
	visit := Visit{
		VisitorID: GenerateVisitorID(ip, ua),
		IPHash:    HashIP(ip),
		Path:      req.Path,
		Referrer:  CleanReferrer(req.Referrer),
		Timestamp: time.Now(),
	}
	if err := h.store.RecordVisit(visit); err != nil {
		c.Logger().Errorf("record visit: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

// StatsJSON returns aggregated readership for the requested period
// (?period=day|week|month, default month).
func (h *Handler) StatsJSON(c echo.Context) error {
	period := c.QueryParam("period")
	var since time.Time
	switch period {
	case "day":
		since = time.Now().AddDate(0, 0, -1)
	case "week":
		since = time.Now().AddDate(0, 0, -7)
	default:
		period = "month"
		since = time.Now().AddDate(0, -1, 0)
	}

	stats, err := h.store.StatsSince(since, period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
