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

type PostingHandler struct {
	*BaseHandler
	postingService   *services.PostingService
	lifecycleService *services.LifecycleService
	queryService     *services.QueryService
}

func NewPostingHandler(base *BaseHandler, postingService *services.PostingService, lifecycleService *services.LifecycleService, queryService *services.QueryService) *PostingHandler {
	return &PostingHandler{
		BaseHandler:      base,
		postingService:   postingService,
		lifecycleService: lifecycleService,
		queryService:     queryService,
	}
}

func (h *PostingHandler) RegisterRoutes(api *gin.RouterGroup) {
	postings := api.Group("/postings")
	postings.Use(middleware.AuthMiddleware())
	{
		postings.POST("", middleware.RequireKinds(models.UserKindHomeowner), h.Create)
		postings.GET("/mine", middleware.RequireKinds(models.UserKindHomeowner), h.ListMine)
		postings.GET("/available", middleware.RequireKinds(models.UserKindCompanyOwner), h.ListAvailable)
		postings.GET("/:id", h.Get)
		postings.PATCH("/:id", middleware.RequireKinds(models.UserKindHomeowner), h.Update)

		// Переходы жизненного цикла объявления
		postings.POST("/:id/confirm", middleware.RequireKinds(models.UserKindCompanyOwner), h.ConfirmCompletion)
		postings.POST("/:id/close", middleware.RequireKinds(models.UserKindHomeowner), h.Close)
	}
}

// ConfirmCompletion - POST /api/postings/:id/confirm
// Подрядчик выигравшей ставки подтверждает выполнение. Идемпотентно.
func (h *PostingHandler) ConfirmCompletion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	postingID := c.Param("id")
	if err := h.lifecycleService.ConfirmCompletion(c.Request.Context(), userID, postingID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Completion confirmed"})
}

// Close - POST /api/postings/:id/close
func (h *PostingHandler) Close(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CloseJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	postingID := c.Param("id")
	if err := h.lifecycleService.CloseCompletedJob(c.Request.Context(), userID, postingID, req.WinningBidID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job closed"})
}

// Create - POST /api/postings
func (h *PostingHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	posting, err := h.postingService.CreatePosting(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, posting)
}

// Get - GET /api/postings/:id
func (h *PostingHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	postingID := c.Param("id")
	resp, err := h.postingService.GetPosting(c.Request.Context(), postingID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update - PATCH /api/postings/:id
func (h *PostingHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	postingID := c.Param("id")
	if err := h.postingService.UpdatePosting(c.Request.Context(), postingID, userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Posting updated"})
}

// ListMine - GET /api/postings/mine?statuses=open,inprogress
// Возвращает объявления владельца вместе со ставками.
func (h *PostingHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	statuses, err := parseJobStatuses(c.Query("statuses"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	responses, svcErr := h.queryService.ListPostingsWithBidsByStatus(c.Request.Context(), userID, statuses)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"postings": responses})
}

// ListAvailable - GET /api/postings/available
// Открытые объявления без ставки текущего подрядчика, опционально в радиусе.
func (h *PostingHandler) ListAvailable(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var q dto.ListPostingsQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}

	responses, err := h.queryService.ListOpenPostingsExcludingBidder(c.Request.Context(), userID, &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"postings": responses})
}

// parseJobStatuses разбирает фильтр ?statuses=open,closed.
// Алиас closed пропускается как есть, репозиторий нормализует его сам.
func parseJobStatuses(raw string) ([]models.JobStatus, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]models.JobStatus, 0, len(parts))
	for _, part := range parts {
		s := models.JobStatus(strings.TrimSpace(part))
		switch s {
		case models.JobStatusOpen, models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusClosedAlias:
			statuses = append(statuses, s)
		default:
			return nil, apperrors.NewBadRequestError("Unknown posting status: " + string(s))
		}
	}
	return statuses, nil
}
