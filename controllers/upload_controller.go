package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/odhiambo-ed/ReUbuntu/services"
)

// UploadController exposes the CSV ingestion pipeline over HTTP.
type UploadController struct {
	ingestion IngestionAPI
	redis     *redis.Client
	logger    *zap.Logger
}

// NewUploadController creates an UploadController. The redis client is only
// needed for the async queue path and may be nil.
func NewUploadController(ingestion IngestionAPI, rdb *redis.Client, logger *zap.Logger) *UploadController {
	return &UploadController{ingestion: ingestion, redis: rdb, logger: logger}
}

// ProcessUpload triggers ingestion of an already-stored CSV. Row-level
// validation failures still complete with HTTP 200; only a broken pipeline
// returns 500.
func (ctl *UploadController) ProcessUpload(c *gin.Context) {
	var req ProcessUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctl.logger.Error("invalid process request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	uploadID, err := strconv.ParseInt(req.UploadID, 10, 64)
	if err != nil {
		ctl.logger.Error("invalid upload id", zap.String("upload_id", req.UploadID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "invalid upload_id: " + req.UploadID})
		return
	}

	if strings.EqualFold(strings.TrimSpace(c.Query("async")), "true") {
		ctl.handleAsync(c, uploadID, req.UserID)
		return
	}

	summary, err := ctl.ingestion.Run(c.Request.Context(), uploadID, req.UserID)
	if err != nil {
		ctl.logger.Error("processing error", zap.Int64("upload_id", uploadID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetUpload returns an upload's status and counters.
func (ctl *UploadController) GetUpload(c *gin.Context) {
	uploadID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload id"})
		return
	}

	upload, err := ctl.ingestion.GetUpload(c.Request.Context(), uploadID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
		return
	}

	c.JSON(http.StatusOK, upload)
}

// ListUploadErrors returns one page of the row-error records for an upload.
func (ctl *UploadController) ListUploadErrors(c *gin.Context) {
	uploadID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	records, total, err := ctl.ingestion.ListErrors(c.Request.Context(), uploadID, page, limit)
	if err != nil {
		ctl.logger.Error("failed to list upload errors", zap.Int64("upload_id", uploadID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve upload errors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  records,
		"count": total,
		"page":  page,
		"limit": limit,
	})
}

func (ctl *UploadController) handleAsync(c *gin.Context, uploadID int64, userID string) {
	if ctl.redis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "async processing unavailable"})
		return
	}

	if err := services.EnqueueIngestion(c.Request.Context(), ctl.redis, uploadID, userID); err != nil {
		ctl.logger.Error("failed to enqueue ingestion", zap.Int64("upload_id", uploadID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to queue upload for processing"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"upload_id": uploadID,
		"message":   "Upload queued for processing",
	})
}
