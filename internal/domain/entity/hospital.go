package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Hospital struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Street    string    `gorm:"type:varchar(255);not null" json:"street"`
	City      string    `gorm:"type:varchar(100);not null;index" json:"city"`
	State     string    `gorm:"type:varchar(50);not null;index" json:"state"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

func (h *Hospital) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// HospitalFilter narrows a hospital listing. Empty fields are ignored.
type HospitalFilter struct {
	Name  string
	City  string
	State string
}

// DirectoryHospital is a facility record from the external CMS directory.
type DirectoryHospital struct {
	CMSID        string `json:"cms_id"`
	Name         string `json:"name"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Phone        string `json:"phone"`
	HospitalType string `json:"hospital_type"`
	Ownership    string `json:"ownership"`
	Rating       string `json:"rating"`
}
