package dto

import (
	"encoding/json"
	"time"

	"agriconnect/internal/microservices/http-api/models"
)

// DetectionResponse is the payload for bird and insect detections.
// Detections carries the upstream prediction list verbatim.
type DetectionResponse struct {
	Success    bool            `json:"success"`
	Species    string          `json:"species"`
	Confidence float64         `json:"confidence"`
	Detections json.RawMessage `json:"detections"`
	Message    string          `json:"message"`
}

// DiseaseInfoPayload is the enrichment attached to disease detections.
type DiseaseInfoPayload struct {
	Description string   `json:"description"`
	Treatments  []string `json:"treatments"`
	Prevention  []string `json:"prevention"`
}

// DiseaseDetectionResponse is the payload for plant disease detections.
type DiseaseDetectionResponse struct {
	Success     bool                `json:"success"`
	Prediction  string              `json:"prediction"`
	Confidence  float64             `json:"confidence"`
	Detections  json.RawMessage     `json:"detections"`
	Message     string              `json:"message"`
	DiseaseInfo *DiseaseInfoPayload `json:"disease_info,omitempty"`
}

// LeafValidationResponse mirrors the raw validate-leaf endpoint.
type LeafValidationResponse struct {
	IsLeaf     bool    `json:"is_leaf"`
	Confidence float64 `json:"confidence"`
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
}

// DetectionRecordResponse is one entry in a user's detection history.
// Label is the detected species or disease; CropType is set for disease
// records only.
type DetectionRecordResponse struct {
	ID         int64     `json:"id"`
	Image      string    `json:"image"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	CropType   string    `json:"crop_type,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UpsertDiseaseInfoRequest writes a reference row; treatment and
// prevention are newline-delimited lists, matching the stored form.
type UpsertDiseaseInfoRequest struct {
	Description string `json:"description" binding:"required"`
	Treatment   string `json:"treatment"`
	Prevention  string `json:"prevention"`
}

// DiseaseInfoResponse is the stored reference row as served by the
// disease-info endpoint, with treatment/prevention still newline-joined.
type DiseaseInfoResponse struct {
	DiseaseName string `json:"disease_name"`
	Description string `json:"description"`
	Treatment   string `json:"treatment"`
	Prevention  string `json:"prevention"`
}

func FromModelToDiseaseInfoResponse(info *models.DiseaseInfo) *DiseaseInfoResponse {
	return &DiseaseInfoResponse{
		DiseaseName: info.DiseaseName,
		Description: info.Description,
		Treatment:   info.Treatment,
		Prevention:  info.Prevention,
	}
}
