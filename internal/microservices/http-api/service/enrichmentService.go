package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"agriconnect/internal/cache"
	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/models"
	"agriconnect/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

const (
	defaultDiseaseDescription = "No detailed information available for this disease."
	errorDiseaseDescription   = "Unable to retrieve disease information."
)

// GenerativeClient produces free-form treatment text for a disease label.
type GenerativeClient interface {
	TreatmentRecommendation(ctx context.Context, diseaseName, cropType string) (string, error)
}

// EnrichmentService attaches description/treatment/prevention text to a
// disease label. DiseaseInfo never fails: every error path degrades to a
// default payload so the detection response it decorates still goes out.
type EnrichmentService interface {
	DiseaseInfo(ctx context.Context, diseaseName, cropType string) *dto.DiseaseInfoPayload
	StoredInfo(diseaseName string) (*dto.DiseaseInfoResponse, error)
	SaveInfo(ctx context.Context, diseaseName string, req *dto.UpsertDiseaseInfoRequest) (*dto.DiseaseInfoResponse, error)
}

type enrichmentService struct {
	diseaseRepo repository.DiseaseInfoRepository
	generative  GenerativeClient
	infoCache   *cache.DiseaseInfoCache
	logger      *slog.Logger
}

func NewEnrichmentService(
	diseaseRepo repository.DiseaseInfoRepository,
	generative GenerativeClient,
	infoCache *cache.DiseaseInfoCache,
	logger *slog.Logger,
) EnrichmentService {
	return &enrichmentService{
		diseaseRepo: diseaseRepo,
		generative:  generative,
		infoCache:   infoCache,
		logger:      logger,
	}
}

// DiseaseInfo resolves enrichment for a label: cache, then the reference
// table, then the generative service, degrading to a default payload.
func (s *enrichmentService) DiseaseInfo(ctx context.Context, diseaseName, cropType string) *dto.DiseaseInfoPayload {
	if data, ok, err := s.infoCache.Get(ctx, diseaseName, cropType); err != nil {
		s.logger.Warn("disease info cache read failed", "disease", diseaseName, "error", err)
	} else if ok {
		var payload dto.DiseaseInfoPayload
		if err := json.Unmarshal(data, &payload); err == nil {
			return &payload
		}
		s.logger.Warn("disease info cache entry corrupt", "disease", diseaseName)
	}

	info, err := s.diseaseRepo.GetByName(diseaseName)
	switch {
	case err == nil:
		payload := &dto.DiseaseInfoPayload{
			Description: info.Description,
			Treatments:  splitLines(info.Treatment),
			Prevention:  splitLines(info.Prevention),
		}
		s.cachePayload(ctx, diseaseName, cropType, payload)
		return payload

	case errors.Is(err, gorm.ErrRecordNotFound):
		text, genErr := s.generative.TreatmentRecommendation(ctx, diseaseName, cropType)
		if genErr != nil {
			s.logger.Warn("treatment recommendation failed", "disease", diseaseName, "error", genErr)
			return &dto.DiseaseInfoPayload{
				Description: defaultDiseaseDescription,
				Treatments:  []string{},
				Prevention:  []string{},
			}
		}
		payload := parseRecommendation(text)
		s.cachePayload(ctx, diseaseName, cropType, payload)
		return payload

	default:
		s.logger.Error("disease info lookup failed", "disease", diseaseName, "error", err)
		return &dto.DiseaseInfoPayload{
			Description: errorDiseaseDescription,
			Treatments:  []string{},
			Prevention:  []string{},
		}
	}
}

// StoredInfo returns the reference row for a label, or
// ErrDiseaseInfoNotFound.
func (s *enrichmentService) StoredInfo(diseaseName string) (*dto.DiseaseInfoResponse, error) {
	info, err := s.diseaseRepo.GetByName(diseaseName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiseaseInfoNotFound
		}
		return nil, err
	}
	return dto.FromModelToDiseaseInfoResponse(info), nil
}

// SaveInfo writes a reference row and drops its cached payloads so the
// next detection re-reads the table.
func (s *enrichmentService) SaveInfo(ctx context.Context, diseaseName string, req *dto.UpsertDiseaseInfoRequest) (*dto.DiseaseInfoResponse, error) {
	info := &models.DiseaseInfo{
		DiseaseName: diseaseName,
		Description: req.Description,
		Treatment:   req.Treatment,
		Prevention:  req.Prevention,
	}

	if err := s.diseaseRepo.Upsert(info); err != nil {
		return nil, err
	}

	if err := s.infoCache.Invalidate(ctx, diseaseName); err != nil {
		s.logger.Warn("disease info cache invalidation failed", "disease", diseaseName, "error", err)
	}

	return dto.FromModelToDiseaseInfoResponse(info), nil
}

func (s *enrichmentService) cachePayload(ctx context.Context, diseaseName, cropType string, payload *dto.DiseaseInfoPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.infoCache.Set(ctx, diseaseName, cropType, data); err != nil {
		s.logger.Warn("disease info cache write failed", "disease", diseaseName, "error", err)
	}
}

// splitLines splits stored multi-line text into list items; empty text
// yields an empty list rather than [""].
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
