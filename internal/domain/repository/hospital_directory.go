package repository

import (
	"context"

	"nightingale/internal/domain/entity"
)

// HospitalDirectory is the external facility directory.
type HospitalDirectory interface {
	SearchByLocation(ctx context.Context, city, state string, limit int) ([]entity.DirectoryHospital, error)
	SearchByName(ctx context.Context, name string, limit int) ([]entity.DirectoryHospital, error)
	SearchByZipcode(ctx context.Context, zip, state string, limit int) ([]entity.DirectoryHospital, error)
	SearchByFacilityID(ctx context.Context, facilityID string) (*entity.DirectoryHospital, error)
}
