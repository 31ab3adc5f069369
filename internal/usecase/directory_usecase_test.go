package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	called   string
	args     []string
	limit    int
	err      error
	hospital *entity.DirectoryHospital
}

func (s *stubDirectory) result() ([]entity.DirectoryHospital, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []entity.DirectoryHospital{{CMSID: "220071", Name: "GENERAL"}}, nil
}

func (s *stubDirectory) SearchByLocation(_ context.Context, city, state string, limit int) ([]entity.DirectoryHospital, error) {
	s.called, s.args, s.limit = "location", []string{city, state}, limit
	return s.result()
}

func (s *stubDirectory) SearchByName(_ context.Context, name string, limit int) ([]entity.DirectoryHospital, error) {
	s.called, s.args, s.limit = "name", []string{name}, limit
	return s.result()
}

func (s *stubDirectory) SearchByZipcode(_ context.Context, zip, state string, limit int) ([]entity.DirectoryHospital, error) {
	s.called, s.args, s.limit = "zip", []string{zip, state}, limit
	return s.result()
}

func (s *stubDirectory) SearchByFacilityID(_ context.Context, facilityID string) (*entity.DirectoryHospital, error) {
	s.called, s.args = "facility", []string{facilityID}
	return s.hospital, s.err
}

func newDirectoryUsecase(dir *stubDirectory) DirectoryUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewDirectoryUsecase(log, dir)
}

func TestDirectorySearchStrategy(t *testing.T) {
	tests := []struct {
		name  string
		query dto.DirectorySearchQuery
		want  string
		args  []string
	}{
		{"name wins", dto.DirectorySearchQuery{Name: "general", Zip: "02114", City: "Boston"}, "name", []string{"general"}},
		{"zip with state", dto.DirectorySearchQuery{Zip: "02114", State: "MA"}, "zip", []string{"02114", "MA"}},
		{"city and state", dto.DirectorySearchQuery{City: "Boston", State: "MA"}, "location", []string{"Boston", "MA"}},
		{"state only", dto.DirectorySearchQuery{State: "MA"}, "location", []string{"", "MA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &stubDirectory{}
			hospitals, err := newDirectoryUsecase(dir).Search(context.Background(), &tt.query)
			require.NoError(t, err)
			assert.Len(t, hospitals, 1)
			assert.Equal(t, tt.want, dir.called)
			assert.Equal(t, tt.args, dir.args)
		})
	}
}

func TestDirectorySearchWithoutCriteria(t *testing.T) {
	dir := &stubDirectory{}
	uc := newDirectoryUsecase(dir)

	_, err := uc.Search(context.Background(), &dto.DirectorySearchQuery{})
	assert.ErrorIs(t, err, ErrSearchCriteriaMissing)

	_, err = uc.Search(context.Background(), &dto.DirectorySearchQuery{Name: "   "})
	assert.ErrorIs(t, err, ErrSearchCriteriaMissing)
	assert.Empty(t, dir.called)
}

func TestDirectoryUpstreamFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	uc := newDirectoryUsecase(&stubDirectory{err: upstream})

	_, err := uc.Search(context.Background(), &dto.DirectorySearchQuery{City: "Boston"})
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
	assert.ErrorIs(t, err, upstream)

	_, err = uc.GetFacility(context.Background(), "220071")
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestDirectoryGetFacility(t *testing.T) {
	dir := &stubDirectory{hospital: &entity.DirectoryHospital{CMSID: "220071"}}
	uc := newDirectoryUsecase(dir)

	hospital, err := uc.GetFacility(context.Background(), "220071")
	require.NoError(t, err)
	assert.Equal(t, "220071", hospital.CMSID)

	_, err = newDirectoryUsecase(&stubDirectory{}).GetFacility(context.Background(), "999999")
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}
