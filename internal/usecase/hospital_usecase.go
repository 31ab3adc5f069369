package usecase

import (
	"context"
	"errors"

	"nightingale/internal/converter"
	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
	"nightingale/internal/domain/repository"
	"nightingale/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound = errors.New("hospital not found")
)

type HospitalUsecase interface {
	CreateHospital(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	GetAllHospitals(ctx context.Context, query *dto.HospitalListQuery) (*dto.HospitalListResponse, error)
	GetHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error)
	UpdateHospital(ctx context.Context, id uuid.UUID, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	DeleteHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error)
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	ratingRepo   repository.RatingRepository
	auditService service.AuditService
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	ratingRepo repository.RatingRepository,
	auditService service.AuditService,
) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		ratingRepo:   ratingRepo,
		auditService: auditService,
	}
}

func (u *hospitalUsecase) CreateHospital(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital := &entity.Hospital{
		Name:   req.Name,
		Street: req.Street,
		City:   req.City,
		State:  req.State,
	}
	if err := u.hospitalRepo.Create(tx, hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, service.AuditEntry{
		Action:   entity.AuditActionHospitalCreate,
		Entity:   "hospital",
		EntityID: hospital.ID.String(),
		After:    converter.HospitalToResponse(hospital),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) GetAllHospitals(ctx context.Context, query *dto.HospitalListQuery) (*dto.HospitalListResponse, error) {
	filter := entity.HospitalFilter{}
	if query != nil {
		filter = entity.HospitalFilter{
			Name:  query.Name,
			City:  query.City,
			State: query.State,
		}
	}

	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all hospitals: %+v", err)
		return nil, err
	}

	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Total:     len(hospitals),
	}, nil
}

// GetHospital includes the hospital's rating average and count.
func (u *hospitalUsecase) GetHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error) {
	db := u.db.WithContext(ctx)

	hospital, err := u.hospitalRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	summary, err := u.ratingRepo.AverageForHospital(db, id)
	if err != nil {
		u.log.Warnf("Failed to average ratings: %+v", err)
		return nil, err
	}

	return converter.HospitalWithSummaryToResponse(hospital, summary), nil
}

func (u *hospitalUsecase) UpdateHospital(ctx context.Context, id uuid.UUID, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	oldValue := converter.HospitalToResponse(hospital)

	hospital.Name = req.Name
	hospital.Street = req.Street
	hospital.City = req.City
	hospital.State = req.State

	if err := u.hospitalRepo.Update(tx, hospital); err != nil {
		u.log.Warnf("Failed to update hospital: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, service.AuditEntry{
		Action:   entity.AuditActionHospitalUpdate,
		Entity:   "hospital",
		EntityID: hospital.ID.String(),
		Before:   oldValue,
		After:    converter.HospitalToResponse(hospital),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

// DeleteHospital returns the hospital as it was before deletion.
func (u *hospitalUsecase) DeleteHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	affected, err := u.hospitalRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed delete hospital: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrHospitalNotFound
	}

	oldValue := converter.HospitalToResponse(hospital)
	u.auditService.Record(tx, service.AuditEntry{
		Action:   entity.AuditActionHospitalDelete,
		Entity:   "hospital",
		EntityID: id.String(),
		Before:   oldValue,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return oldValue, nil
}
