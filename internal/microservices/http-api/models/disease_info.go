package models

// DiseaseInfo is a static reference table keyed by the predicted disease
// label. Treatment and Prevention are newline-delimited lists.
type DiseaseInfo struct {
	DiseaseName string `json:"disease_name" gorm:"primaryKey"`
	Description string `json:"description" gorm:"type:text"`
	Treatment   string `json:"treatment" gorm:"type:text"`
	Prevention  string `json:"prevention" gorm:"type:text"`
}

func (DiseaseInfo) TableName() string {
	return "disease_info"
}
