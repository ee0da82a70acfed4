package models

import "time"

// Detection records are written best-effort after a successful
// classification; a nil UserID means the request was anonymous.
// DetectionData holds the full prediction list as returned upstream.

type BirdDetection struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          *string   `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Image           string    `json:"image" gorm:"not null"`
	DetectedSpecies string    `json:"detected_species" gorm:"not null"`
	Confidence      float64   `json:"confidence" gorm:"not null"`
	DetectionData   []byte    `json:"detection_data" gorm:"type:jsonb"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (BirdDetection) TableName() string {
	return "bird_detections"
}

type InsectDetection struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          *string   `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Image           string    `json:"image" gorm:"not null"`
	DetectedSpecies string    `json:"detected_species" gorm:"not null"`
	Confidence      float64   `json:"confidence" gorm:"not null"`
	DetectionData   []byte    `json:"detection_data" gorm:"type:jsonb"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (InsectDetection) TableName() string {
	return "insect_detections"
}

type LeafDetection struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        *string   `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Image         string    `json:"image" gorm:"not null"`
	CropType      string    `json:"crop_type" gorm:"not null;default:'tomato'"`
	Prediction    string    `json:"prediction" gorm:"not null"`
	Confidence    float64   `json:"confidence" gorm:"not null"`
	DetectionData []byte    `json:"detection_data" gorm:"type:jsonb"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (LeafDetection) TableName() string {
	return "leaf_detections"
}
