package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
	"nightingale/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrSearchCriteriaMissing = errors.New("provide name, zip, city or state")
	ErrDirectoryUnavailable  = errors.New("hospital directory is unavailable")
	ErrFacilityNotFound      = errors.New("facility not found")
)

// DirectoryUsecase searches the external hospital directory. Nothing is
// persisted locally.
type DirectoryUsecase interface {
	Search(ctx context.Context, query *dto.DirectorySearchQuery) ([]entity.DirectoryHospital, error)
	GetFacility(ctx context.Context, facilityID string) (*entity.DirectoryHospital, error)
}

type directoryUsecase struct {
	log       *logrus.Logger
	directory repository.HospitalDirectory
}

func NewDirectoryUsecase(log *logrus.Logger, directory repository.HospitalDirectory) DirectoryUsecase {
	return &directoryUsecase{
		log:       log,
		directory: directory,
	}
}

// Search picks one strategy: name first, then zip (with state as the
// prefix fallback), then city and state.
func (u *directoryUsecase) Search(ctx context.Context, query *dto.DirectorySearchQuery) ([]entity.DirectoryHospital, error) {
	name := strings.TrimSpace(query.Name)
	zip := strings.TrimSpace(query.Zip)
	city := strings.TrimSpace(query.City)
	state := strings.TrimSpace(query.State)

	var (
		hospitals []entity.DirectoryHospital
		err       error
	)
	switch {
	case name != "":
		hospitals, err = u.directory.SearchByName(ctx, name, query.Limit)
	case zip != "":
		hospitals, err = u.directory.SearchByZipcode(ctx, zip, state, query.Limit)
	case city != "" || state != "":
		hospitals, err = u.directory.SearchByLocation(ctx, city, state, query.Limit)
	default:
		return nil, ErrSearchCriteriaMissing
	}
	if err != nil {
		u.log.Warnf("Failed to search hospital directory: %+v", err)
		return nil, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}

	if hospitals == nil {
		hospitals = []entity.DirectoryHospital{}
	}
	return hospitals, nil
}

func (u *directoryUsecase) GetFacility(ctx context.Context, facilityID string) (*entity.DirectoryHospital, error) {
	facilityID = strings.TrimSpace(facilityID)
	if facilityID == "" {
		return nil, ErrFacilityNotFound
	}

	hospital, err := u.directory.SearchByFacilityID(ctx, facilityID)
	if err != nil {
		u.log.Warnf("Failed to find facility %s: %+v", facilityID, err)
		return nil, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}
	if hospital == nil {
		return nil, ErrFacilityNotFound
	}
	return hospital, nil
}
