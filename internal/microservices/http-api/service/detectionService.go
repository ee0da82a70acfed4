package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"agriconnect/internal/config"
	"agriconnect/internal/inference/roboflow"
	"agriconnect/internal/media"
	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/models"
	"agriconnect/internal/microservices/http-api/repository"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// InferenceClient is the slice of the Roboflow client the gateway needs.
type InferenceClient interface {
	Infer(ctx context.Context, modelID string, image []byte) (*roboflow.InferenceResponse, error)
}

// DetectionService is the shared gateway for the three image
// classification domains: validate the upload, call the configured model,
// pick the highest-confidence prediction, persist best-effort, respond.
// A nil userID marks an anonymous request.
type DetectionService interface {
	DetectBird(ctx context.Context, userID *string, upload *ImageUpload) (*dto.DetectionResponse, error)
	DetectInsect(ctx context.Context, userID *string, upload *ImageUpload) (*dto.DetectionResponse, error)
	DetectDisease(ctx context.Context, userID *string, upload *ImageUpload, cropType string) (*dto.DiseaseDetectionResponse, error)
	ClassifyDisease(ctx context.Context, upload *ImageUpload, cropType string) (*dto.DiseaseDetectionResponse, error)
	ValidateLeaf(ctx context.Context, upload *ImageUpload) (*dto.LeafValidationResponse, error)
	BirdHistory(userID string, limit int) ([]dto.DetectionRecordResponse, error)
	InsectHistory(userID string, limit int) ([]dto.DetectionRecordResponse, error)
	DiseaseHistory(userID string, limit int) ([]dto.DetectionRecordResponse, error)
}

type detectionService struct {
	infer         InferenceClient
	detectionRepo repository.DetectionRepository
	enrichment    EnrichmentService
	store         MediaStore
	logger        *slog.Logger

	birdModelID    string
	insectModelID  string
	diseaseModelID string
	leafModelID    string
	maxUploadSize  int64
}

func NewDetectionService(
	infer InferenceClient,
	detectionRepo repository.DetectionRepository,
	enrichment EnrichmentService,
	store MediaStore,
	cfg *config.Config,
	logger *slog.Logger,
) DetectionService {
	return &detectionService{
		infer:          infer,
		detectionRepo:  detectionRepo,
		enrichment:     enrichment,
		store:          store,
		logger:         logger,
		birdModelID:    cfg.BirdModelID,
		insectModelID:  cfg.InsectModelID,
		diseaseModelID: cfg.DiseaseModelID,
		leafModelID:    cfg.LeafModelID,
		maxUploadSize:  cfg.MaxUploadSize,
	}
}

func (s *detectionService) DetectBird(ctx context.Context, userID *string, upload *ImageUpload) (*dto.DetectionResponse, error) {
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	top, raw, err := s.classify(ctx, s.birdModelID, upload)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		s.persistBird(userID, upload, top, raw)
	}

	return &dto.DetectionResponse{
		Success:    true,
		Species:    top.Class,
		Confidence: top.Confidence,
		Detections: raw,
		Message:    "Bird species detected successfully",
	}, nil
}

func (s *detectionService) DetectInsect(ctx context.Context, userID *string, upload *ImageUpload) (*dto.DetectionResponse, error) {
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	top, raw, err := s.classify(ctx, s.insectModelID, upload)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		s.persistInsect(userID, upload, top, raw)
	}

	return &dto.DetectionResponse{
		Success:    true,
		Species:    top.Class,
		Confidence: top.Confidence,
		Detections: raw,
		Message:    "Insect species detected successfully",
	}, nil
}

// DetectDisease gates on leaf validation, classifies, persists a record
// for authenticated and anonymous callers alike, and enriches the label.
func (s *detectionService) DetectDisease(ctx context.Context, userID *string, upload *ImageUpload, cropType string) (*dto.DiseaseDetectionResponse, error) {
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}
	if cropType == "" {
		cropType = "tomato"
	}

	leaf, err := s.ValidateLeaf(ctx, upload)
	if err != nil {
		return nil, err
	}
	if !leaf.IsLeaf || !leaf.Success {
		return nil, ErrNotALeaf
	}

	top, raw, err := s.classify(ctx, s.diseaseModelID, upload)
	if err != nil {
		return nil, err
	}

	s.persistLeaf(userID, upload, cropType, top, raw)

	return &dto.DiseaseDetectionResponse{
		Success:     true,
		Prediction:  top.Class,
		Confidence:  top.Confidence,
		Detections:  raw,
		Message:     "Disease classified successfully",
		DiseaseInfo: s.enrichment.DiseaseInfo(ctx, top.Class, cropType),
	}, nil
}

// ClassifyDisease is the raw classification path: no leaf gate, no
// persistence, enrichment still attached.
func (s *detectionService) ClassifyDisease(ctx context.Context, upload *ImageUpload, cropType string) (*dto.DiseaseDetectionResponse, error) {
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}
	if cropType == "" {
		cropType = "tomato"
	}

	top, raw, err := s.classify(ctx, s.diseaseModelID, upload)
	if err != nil {
		return nil, err
	}

	return &dto.DiseaseDetectionResponse{
		Success:     true,
		Prediction:  top.Class,
		Confidence:  top.Confidence,
		Detections:  raw,
		Message:     "Disease classified successfully",
		DiseaseInfo: s.enrichment.DiseaseInfo(ctx, top.Class, cropType),
	}, nil
}

// ValidateLeaf reports whether the image contains a leaf. Upstream
// failures come back as an unsuccessful response rather than an error so
// the endpoint can always answer.
func (s *detectionService) ValidateLeaf(ctx context.Context, upload *ImageUpload) (*dto.LeafValidationResponse, error) {
	if upload == nil || len(upload.Data) == 0 {
		return nil, ErrNoImage
	}

	resp, err := s.infer.Infer(ctx, s.leafModelID, upload.Data)
	if err != nil {
		s.logger.Warn("leaf validation call failed", "error", err)
		return &dto.LeafValidationResponse{
			Success: false,
			Message: "Leaf validation service unavailable",
		}, nil
	}

	top, ok := resp.Top()
	if !ok {
		return &dto.LeafValidationResponse{
			Success: true,
			IsLeaf:  false,
			Message: "No leaf detected in the image",
		}, nil
	}

	if !isLeafClass(top.Class) {
		return &dto.LeafValidationResponse{
			Success:    true,
			IsLeaf:     false,
			Confidence: top.Confidence,
			Message:    "No leaf detected in the image",
		}, nil
	}

	return &dto.LeafValidationResponse{
		Success:    true,
		IsLeaf:     true,
		Confidence: top.Confidence,
		Message:    "Leaf detected",
	}, nil
}

// isLeafClass interprets the validation model's label: any leaf-ish class
// counts unless it is explicitly negative ("non-leaf", "not_leaf").
func isLeafClass(class string) bool {
	lower := strings.ToLower(class)
	return strings.Contains(lower, "leaf") && !strings.Contains(lower, "non") && !strings.Contains(lower, "not")
}

func (s *detectionService) validateUpload(upload *ImageUpload) error {
	if upload == nil || len(upload.Data) == 0 {
		return ErrNoImage
	}
	if !allowedImageTypes[upload.ContentType] {
		return ErrInvalidImageType
	}
	if int64(len(upload.Data)) > s.maxUploadSize {
		return ErrImageTooLarge
	}
	return nil
}

// classify runs the model and picks the highest-confidence prediction.
// Upstream and shape failures wrap ErrUpstream; an empty prediction set
// is ErrNoDetection, and nothing is persisted in either case.
func (s *detectionService) classify(ctx context.Context, modelID string, upload *ImageUpload) (roboflow.Prediction, json.RawMessage, error) {
	resp, err := s.infer.Infer(ctx, modelID, upload.Data)
	if err != nil {
		return roboflow.Prediction{}, nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	top, ok := resp.Top()
	if !ok {
		return roboflow.Prediction{}, nil, ErrNoDetection
	}

	return top, resp.RawPredictions, nil
}

// BirdHistory returns the user's bird detections newest-first.
func (s *detectionService) BirdHistory(userID string, limit int) ([]dto.DetectionRecordResponse, error) {
	records, err := s.detectionRepo.ListBirdsByUser(userID, clampHistoryLimit(limit))
	if err != nil {
		return nil, err
	}

	items := make([]dto.DetectionRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.DetectionRecordResponse{
			ID:         r.ID,
			Image:      r.Image,
			Label:      r.DetectedSpecies,
			Confidence: r.Confidence,
			CreatedAt:  r.CreatedAt,
		})
	}
	return items, nil
}

// InsectHistory returns the user's insect detections newest-first.
func (s *detectionService) InsectHistory(userID string, limit int) ([]dto.DetectionRecordResponse, error) {
	records, err := s.detectionRepo.ListInsectsByUser(userID, clampHistoryLimit(limit))
	if err != nil {
		return nil, err
	}

	items := make([]dto.DetectionRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.DetectionRecordResponse{
			ID:         r.ID,
			Image:      r.Image,
			Label:      r.DetectedSpecies,
			Confidence: r.Confidence,
			CreatedAt:  r.CreatedAt,
		})
	}
	return items, nil
}

// DiseaseHistory returns the user's disease detections newest-first.
func (s *detectionService) DiseaseHistory(userID string, limit int) ([]dto.DetectionRecordResponse, error) {
	records, err := s.detectionRepo.ListLeavesByUser(userID, clampHistoryLimit(limit))
	if err != nil {
		return nil, err
	}

	items := make([]dto.DetectionRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.DetectionRecordResponse{
			ID:         r.ID,
			Image:      r.Image,
			Label:      r.Prediction,
			Confidence: r.Confidence,
			CropType:   r.CropType,
			CreatedAt:  r.CreatedAt,
		})
	}
	return items, nil
}

func clampHistoryLimit(limit int) int {
	if limit < 1 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

// Persistence below is best-effort: a failed save is logged and the
// classification response still goes out.

func (s *detectionService) persistBird(userID *string, upload *ImageUpload, top roboflow.Prediction, raw json.RawMessage) {
	path, err := s.store.Save("bird_detections", media.ExtForContentType(upload.ContentType), upload.Data)
	if err != nil {
		s.logger.Error("failed to store bird detection image", "error", err)
		return
	}
	record := &models.BirdDetection{
		UserID:          userID,
		Image:           path,
		DetectedSpecies: top.Class,
		Confidence:      top.Confidence,
		DetectionData:   raw,
	}
	if err := s.detectionRepo.CreateBird(record); err != nil {
		s.logger.Error("failed to save bird detection", "error", err)
	}
}

func (s *detectionService) persistInsect(userID *string, upload *ImageUpload, top roboflow.Prediction, raw json.RawMessage) {
	path, err := s.store.Save("insect_detections", media.ExtForContentType(upload.ContentType), upload.Data)
	if err != nil {
		s.logger.Error("failed to store insect detection image", "error", err)
		return
	}
	record := &models.InsectDetection{
		UserID:          userID,
		Image:           path,
		DetectedSpecies: top.Class,
		Confidence:      top.Confidence,
		DetectionData:   raw,
	}
	if err := s.detectionRepo.CreateInsect(record); err != nil {
		s.logger.Error("failed to save insect detection", "error", err)
	}
}

func (s *detectionService) persistLeaf(userID *string, upload *ImageUpload, cropType string, top roboflow.Prediction, raw json.RawMessage) {
	path, err := s.store.Save("disease_detections", media.ExtForContentType(upload.ContentType), upload.Data)
	if err != nil {
		s.logger.Error("failed to store disease detection image", "error", err)
		return
	}
	record := &models.LeafDetection{
		UserID:        userID,
		Image:         path,
		CropType:      cropType,
		Prediction:    top.Class,
		Confidence:    top.Confidence,
		DetectionData: raw,
	}
	if err := s.detectionRepo.CreateLeaf(record); err != nil {
		s.logger.Error("failed to save disease detection", "error", err)
	}
}
