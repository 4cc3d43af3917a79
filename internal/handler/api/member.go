package api

import (
	"log/slog"
	"net/http"

	reqdto "club-roster/internal/handler/dto/request"
	resdto "club-roster/internal/handler/dto/response"
	"club-roster/internal/handler/httperr"
	"club-roster/internal/handler/middleware"
	"club-roster/internal/usecase"
	"club-roster/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	q      queries.MemberQueries
	roster usecase.RosterService
}

func NewMemberHandler(q queries.MemberQueries, roster usecase.RosterService) *MemberHandler {
	return &MemberHandler{q: q, roster: roster}
}

// @Summary List members
// @Description Reconciled club roster with booking platform links, filtered and paginated
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param tag query string false "Member type"
// @Param sport query string false "Sport tag"
// @Param group query string false "Group title"
// @Param name query string false "Name contains"
// @Param city query string false "City contains"
// @Param email query string false "Email contains"
// @Param booking query string false "all, with, without or only"
// @Param year query int false "Booking account creation year"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 12)"
// @Success 200 {object} resdto.MemberListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	var req reqdto.ListMembersRequest
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
		abortWithQueryError(c, err, "Failed to list members")
		return
	}
	resp, err := resdto.FromMemberList(list)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to encode members", nil)
		return
	}
	setSource(c, list.Source)
	c.JSON(http.StatusOK, resp)
}

// @Summary List member tags
// @Description Distinct member types on the roster
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LabelsResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/members/tags [get]
func (h *MemberHandler) Tags(c *gin.Context) {
	labels, err := h.q.Tags(c.Request.Context())
	if err != nil {
		abortWithQueryError(c, err, "Failed to list tags")
		return
	}
	setSource(c, labels.Source)
	c.JSON(http.StatusOK, resdto.FromLabels(labels))
}

// @Summary List groups
// @Description Group titles from the booking platform
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LabelsResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/members/groups [get]
func (h *MemberHandler) Groups(c *gin.Context) {
	labels, err := h.q.Groups(c.Request.Context())
	if err != nil {
		abortWithQueryError(c, err, "Failed to list groups")
		return
	}
	setSource(c, labels.Source)
	c.JSON(http.StatusOK, resdto.FromLabels(labels))
}

// @Summary Refresh roster
// @Description Run a fetch cycle now, ignoring cache freshness. A failed cycle still answers with the fallback roster and its source.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RefreshResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/members/refresh [post]
func (h *MemberHandler) Refresh(c *gin.Context) {
	subject, _ := middleware.GetSubject(c)
	r, err := h.roster.Refresh(c.Request.Context())
	if err != nil {
		abortWithQueryError(c, err, "Refresh failed")
		return
	}

	slog.Info("Roster refresh requested",
		"request_id", middleware.GetRequestID(c),
		"subject", subject,
		"cycle_id", r.CycleID,
		"source", string(r.Source),
	)

	setSource(c, r.Source)
	c.JSON(http.StatusOK, resdto.RefreshResponse{
		CycleID: r.CycleID,
		Summary: resdto.SummaryResponse{
			Registry:    r.Summary.Registry,
			Linked:      r.Summary.Linked,
			Strong:      r.Summary.Strong,
			Fallback:    r.Summary.Fallback,
			BookingOnly: r.Summary.BookingOnly,
		},
		Source:    string(r.Source),
		FetchedAt: r.FetchedAt,
	})
}
