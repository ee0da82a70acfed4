package repository

import (
	"agriconnect/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type DiseaseInfoRepository interface {
	GetByName(diseaseName string) (*models.DiseaseInfo, error)
	Upsert(info *models.DiseaseInfo) error
}

type diseaseInfoRepository struct {
	db *gorm.DB
}

func NewDiseaseInfoRepository(db *gorm.DB) DiseaseInfoRepository {
	return &diseaseInfoRepository{db: db}
}

// GetByName looks up the reference row by exact disease label.
func (r *diseaseInfoRepository) GetByName(diseaseName string) (*models.DiseaseInfo, error) {
	var info models.DiseaseInfo
	err := r.db.Where("disease_name = ?", diseaseName).First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Upsert writes a reference row, used by operator seeding.
func (r *diseaseInfoRepository) Upsert(info *models.DiseaseInfo) error {
	return r.db.Save(info).Error
}
