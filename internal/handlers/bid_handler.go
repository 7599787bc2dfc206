package handlers

import (
	"net/http"
	"strings"

	"yardwork_backend/internal/middleware"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/services"
	"yardwork_backend/internal/services/dto"
	"yardwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	*BaseHandler
	lifecycleService *services.LifecycleService
	queryService     *services.QueryService
}

func NewBidHandler(base *BaseHandler, lifecycleService *services.LifecycleService, queryService *services.QueryService) *BidHandler {
	return &BidHandler{
		BaseHandler:      base,
		lifecycleService: lifecycleService,
		queryService:     queryService,
	}
}

func (h *BidHandler) RegisterRoutes(api *gin.RouterGroup) {
	bids := api.Group("/bids")
	bids.Use(middleware.AuthMiddleware())
	{
		bids.POST("", middleware.RequireKinds(models.UserKindCompanyOwner), h.Submit)
		bids.GET("/mine", middleware.RequireKinds(models.UserKindCompanyOwner), h.ListMine)
		bids.POST("/:id/accept", middleware.RequireKinds(models.UserKindHomeowner), h.Accept)
	}
}

// Submit - POST /api/bids
func (h *BidHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitBidRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	bid, err := h.lifecycleService.SubmitBid(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// Accept - POST /api/bids/:id/accept
// Принимает ставку и атомарно отклоняет остальные pending-ставки объявления.
func (h *BidHandler) Accept(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bidID := c.Param("id")
	if err := h.lifecycleService.AcceptBid(c.Request.Context(), userID, bidID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bid accepted"})
}

// ListMine - GET /api/bids/mine?statuses=pending,accepted
func (h *BidHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	statuses, err := parseBidStatuses(c.Query("statuses"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	bids, svcErr := h.queryService.ListBidsForUser(c.Request.Context(), userID, statuses)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

func parseBidStatuses(raw string) ([]models.BidStatus, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]models.BidStatus, 0, len(parts))
	for _, part := range parts {
		s := models.BidStatus(strings.TrimSpace(part))
		switch s {
		case models.BidStatusPending, models.BidStatusAccepted, models.BidStatusRejected, models.BidStatusCompleted:
			statuses = append(statuses, s)
		default:
			return nil, apperrors.NewBadRequestError("Unknown bid status: " + string(s))
		}
	}
	return statuses, nil
}
