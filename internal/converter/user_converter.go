package converter

import (
	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
)

// UserToResponse never exposes the password hash.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		Resume:    user.Resume,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
