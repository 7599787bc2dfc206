package handlers

import (
	"net/http"

	"yardwork_backend/internal/middleware"
	"yardwork_backend/internal/models"
	"yardwork_backend/internal/services"
	"yardwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	lifecycleService *services.LifecycleService
	queryService     *services.QueryService
}

func NewReviewHandler(base *BaseHandler, lifecycleService *services.LifecycleService, queryService *services.QueryService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:      base,
		lifecycleService: lifecycleService,
		queryService:     queryService,
	}
}

func (h *ReviewHandler) RegisterRoutes(api *gin.RouterGroup) {
	reviews := api.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", middleware.RequireKinds(models.UserKindHomeowner), h.Submit)
		reviews.GET("/company/:id", h.ListForCompany)
		reviews.GET("/posting/:id", middleware.RequireKinds(models.UserKindHomeowner), h.GetForPosting)
	}
}

// Submit - POST /api/reviews
// Один отзыв на объявление; повтор отклоняется с DUPLICATE.
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.lifecycleService.SubmitReview(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListForCompany - GET /api/reviews/company/:id
// Отзывы о подрядчике, новые первыми.
func (h *ReviewHandler) ListForCompany(c *gin.Context) {
	reviews, err := h.queryService.ListReviewsForCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// GetForPosting - GET /api/reviews/posting/:id
// Отзыв текущего домовладельца на его объявление.
func (h *ReviewHandler) GetForPosting(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	review, err := h.queryService.GetReviewForPosting(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
