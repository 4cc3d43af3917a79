package api

import (
	"net/http"

	reqdto "club-roster/internal/handler/dto/request"
	resdto "club-roster/internal/handler/dto/response"
	"club-roster/internal/handler/httperr"
	"club-roster/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	q queries.BookingQueries
}

func NewBookingHandler(q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{q: q}
}

// @Summary List bookings
// @Description Bookings in a window of whole days, with attendee names resolved from the roster
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param daysAgo query int false "Window starts this many days before today (default 0)"
// @Param days query int false "Window length in days (default 7)"
// @Param name query string false "Attendee name contains"
// @Param singles query bool false "Only bookings with exactly one attendee"
// @Param sport query string false "all or a resource keyword such as tennis"
// @Param sort query string false "asc or desc by start time"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 6)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var req reqdto.ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	filter, page, err := req.ToQuery()
	if err != nil {
		abortWithQueryError(c, err, "Invalid query parameters")
		return
	}

	list, err := h.q.List(c.Request.Context(), filter, page)
	if err != nil {
		abortWithQueryError(c, err, "Failed to list bookings")
		return
	}
	resp, err := resdto.FromBookingList(list)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to encode bookings", nil)
		return
	}
	setSource(c, list.Source)
	c.JSON(http.StatusOK, resp)
}

// @Summary Booking leaderboards
// @Description Top ten attendees per configured sport keyword
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param daysAgo query int false "Window starts this many days before today (default 0)"
// @Param days query int false "Window length in days (default 7)"
// @Success 200 {object} resdto.StatsResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings/stats [get]
func (h *BookingHandler) Stats(c *gin.Context) {
	var req reqdto.WindowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	daysAgo, days := req.Resolve()

	stats, err := h.q.Stats(c.Request.Context(), daysAgo, days)
	if err != nil {
		abortWithQueryError(c, err, "Failed to compute booking stats")
		return
	}
	resp, err := resdto.FromStats(stats)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to encode booking stats", nil)
		return
	}
	setSource(c, stats.Source)
	c.JSON(http.StatusOK, resp)
}

// @Summary Court utilization
// @Description Share of daily court capacity taken by bookings, per calendar day
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param daysAgo query int false "Window starts this many days before today (default 0)"
// @Param days query int false "Window length in days (default 7)"
// @Success 200 {object} resdto.UtilizationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings/utilization [get]
func (h *BookingHandler) Utilization(c *gin.Context) {
	var req reqdto.WindowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	daysAgo, days := req.Resolve()

	report, err := h.q.Utilization(c.Request.Context(), daysAgo, days)
	if err != nil {
		abortWithQueryError(c, err, "Failed to compute utilization")
		return
	}
	resp, err := resdto.FromUtilization(report)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to encode utilization", nil)
		return
	}
	setSource(c, report.Source)
	c.JSON(http.StatusOK, resp)
}
