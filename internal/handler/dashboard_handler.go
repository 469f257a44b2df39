package handler

import (
	"net/http"
	"strconv"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/cqrs"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/middleware"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/query"
	"github.com/gin-gonic/gin"
)

// DashboardQuerier defines the read-side operations used by DashboardHandler.
type DashboardQuerier interface {
	GetDashboard(cqrs.GetDashboardQuery) (*query.DashboardView, error)
	ListInvestments(cqrs.ListInvestmentsQuery) (*query.InvestmentListView, error)
	GetProfile(cqrs.GetProfileQuery) (*models.ProfileView, error)
}

// DashboardHandler serves the member-scoped dashboard reads. Every route
// runs behind the auth middleware; the handlers only add parameter parsing
// and error mapping.
type DashboardHandler struct {
	queries DashboardQuerier
}

func NewDashboardHandler(queries DashboardQuerier) *DashboardHandler {
	return &DashboardHandler{queries: queries}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	memberID := c.Param("memberID")
	requesting, ok := middleware.GetMember(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Access token required")
		return
	}

	view, err := h.queries.GetDashboard(cqrs.GetDashboardQuery{
		MemberID:           memberID,
		RequestingMemberID: requesting.MemberID,
	})
	if err != nil {
		if err.Error() == "forbidden" {
			middleware.RespondWithError(c, http.StatusForbidden, "Access denied")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	middleware.RespondWithData(c, http.StatusOK, view)
}

func (h *DashboardHandler) ListInvestments(c *gin.Context) {
	memberID := c.Param("memberID")
	requesting, ok := middleware.GetMember(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Access token required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	view, err := h.queries.ListInvestments(cqrs.ListInvestmentsQuery{
		MemberID:           memberID,
		RequestingMemberID: requesting.MemberID,
		Page:               page,
		Limit:              limit,
		SortBy:             c.DefaultQuery("sortBy", "tnx_date"),
		SortOrder:          c.DefaultQuery("sortOrder", "DESC"),
	})
	if err != nil {
		if err.Error() == "forbidden" {
			middleware.RespondWithError(c, http.StatusForbidden, "Access denied")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch investment history")
		return
	}

	middleware.RespondWithData(c, http.StatusOK, view)
}

func (h *DashboardHandler) GetProfile(c *gin.Context) {
	memberID := c.Param("memberID")
	requesting, ok := middleware.GetMember(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Access token required")
		return
	}

	view, err := h.queries.GetProfile(cqrs.GetProfileQuery{
		MemberID:           memberID,
		RequestingMemberID: requesting.MemberID,
	})
	if err != nil {
		switch err.Error() {
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "Access denied")
		case "member not found":
			middleware.RespondWithError(c, http.StatusNotFound, "Member not found")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch profile")
		}
		return
	}

	middleware.RespondWithData(c, http.StatusOK, gin.H{"member": view})
}
