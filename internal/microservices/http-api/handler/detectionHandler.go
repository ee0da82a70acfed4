package handler

import (
	"errors"
	"net/http"
	"strconv"

	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type DetectionHandler struct {
	detectionService  service.DetectionService
	enrichmentService service.EnrichmentService
}

func NewDetectionHandler(detectionService service.DetectionService, enrichmentService service.EnrichmentService) *DetectionHandler {
	return &DetectionHandler{
		detectionService:  detectionService,
		enrichmentService: enrichmentService,
	}
}

// RegisterRoutes registers the three detection domains and the disease
// reference lookup. Each domain has an authenticated detect route and an
// anonymous one; disease adds the raw validate/classify routes.
func (h *DetectionHandler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	birds := api.Group("/birds")
	{
		birds.POST("/detect", authMW, h.DetectBird)
		birds.POST("/detect-anonymous", h.DetectBirdAnonymous)
		birds.GET("/history", authMW, h.BirdHistory)
	}

	insects := api.Group("/insects")
	{
		insects.POST("/detect", authMW, h.DetectInsect)
		insects.POST("/detect-anonymous", h.DetectInsectAnonymous)
		insects.GET("/history", authMW, h.InsectHistory)
	}

	disease := api.Group("/disease")
	{
		disease.POST("/detect", authMW, h.DetectDisease)
		disease.POST("/detect/anonymous", h.DetectDiseaseAnonymous)
		disease.POST("/validate-leaf", h.ValidateLeaf)
		disease.POST("/classify-disease", h.ClassifyDisease)
		disease.GET("/history", authMW, h.DiseaseHistory)
	}

	api.GET("/disease-info/:disease_name", h.GetDiseaseInfo)
	api.PUT("/disease-info/:disease_name", authMW, h.UpsertDiseaseInfo)
}

// detectionError maps gateway errors onto HTTP responses. Validation
// problems, empty prediction sets and upstream failures are all the
// caller's 400 per the error contract; the not-a-leaf rejection carries
// its own message field.
func detectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotALeaf):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "The uploaded image does not appear to contain a leaf",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrNoImage),
		errors.Is(err, service.ErrInvalidImageType),
		errors.Is(err, service.ErrImageTooLarge),
		errors.Is(err, service.ErrNoDetection),
		errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /api/birds/detect
func (h *DetectionHandler) DetectBird(c *gin.Context) {
	userID := c.GetString("userID")
	h.detectBird(c, &userID)
}

// POST /api/birds/detect-anonymous
func (h *DetectionHandler) DetectBirdAnonymous(c *gin.Context) {
	h.detectBird(c, nil)
}

func (h *DetectionHandler) detectBird(c *gin.Context, userID *string) {
	upload, err := readImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	result, err := h.detectionService.DetectBird(c.Request.Context(), userID, upload)
	if err != nil {
		detectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// POST /api/insects/detect
func (h *DetectionHandler) DetectInsect(c *gin.Context) {
	userID := c.GetString("userID")
	h.detectInsect(c, &userID)
}

// POST /api/insects/detect-anonymous
func (h *DetectionHandler) DetectInsectAnonymous(c *gin.Context) {
	h.detectInsect(c, nil)
}

func (h *DetectionHandler) detectInsect(c *gin.Context, userID *string) {
	upload, err := readImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	result, err := h.detectionService.DetectInsect(c.Request.Context(), userID, upload)
	if err != nil {
		detectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// POST /api/disease/detect
func (h *DetectionHandler) DetectDisease(c *gin.Context) {
	userID := c.GetString("userID")
	h.detectDisease(c, &userID)
}

// POST /api/disease/detect/anonymous
func (h *DetectionHandler) DetectDiseaseAnonymous(c *gin.Context) {
	h.detectDisease(c, nil)
}

func (h *DetectionHandler) detectDisease(c *gin.Context, userID *string) {
	upload, err := readImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	cropType := c.PostForm("crop_type")

	result, err := h.detectionService.DetectDisease(c.Request.Context(), userID, upload, cropType)
	if err != nil {
		detectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ValidateLeaf answers whether the image contains a leaf, without the
// persist wrapper.
// POST /api/disease/validate-leaf
func (h *DetectionHandler) ValidateLeaf(c *gin.Context) {
	upload, err := readImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	result, err := h.detectionService.ValidateLeaf(c.Request.Context(), upload)
	if err != nil {
		detectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClassifyDisease is the raw classification path: no leaf gate, no
// persistence.
// POST /api/disease/classify-disease
func (h *DetectionHandler) ClassifyDisease(c *gin.Context) {
	upload, err := readImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	cropType := c.PostForm("crop_type")

	result, err := h.detectionService.ClassifyDisease(c.Request.Context(), upload, cropType)
	if err != nil {
		detectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// BirdHistory returns the caller's bird detections newest-first.
// GET /api/birds/history?limit=20
func (h *DetectionHandler) BirdHistory(c *gin.Context) {
	h.history(c, h.detectionService.BirdHistory)
}

// InsectHistory returns the caller's insect detections newest-first.
// GET /api/insects/history?limit=20
func (h *DetectionHandler) InsectHistory(c *gin.Context) {
	h.history(c, h.detectionService.InsectHistory)
}

// DiseaseHistory returns the caller's disease detections newest-first.
// GET /api/disease/history?limit=20
func (h *DetectionHandler) DiseaseHistory(c *gin.Context) {
	h.history(c, h.detectionService.DiseaseHistory)
}

func (h *DetectionHandler) history(c *gin.Context, fetch func(userID string, limit int) ([]dto.DetectionRecordResponse, error)) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	records, err := fetch(c.GetString("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetDiseaseInfo returns the stored reference row for a disease label.
// GET /api/disease-info/:disease_name
func (h *DetectionHandler) GetDiseaseInfo(c *gin.Context) {
	info, err := h.enrichmentService.StoredInfo(c.Param("disease_name"))
	if err != nil {
		if err == service.ErrDiseaseInfoNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// UpsertDiseaseInfo writes a reference row for a disease label, used by
// operators to seed and correct the table.
// PUT /api/disease-info/:disease_name
func (h *DetectionHandler) UpsertDiseaseInfo(c *gin.Context) {
	var req dto.UpsertDiseaseInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.enrichmentService.SaveInfo(c.Request.Context(), c.Param("disease_name"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}
