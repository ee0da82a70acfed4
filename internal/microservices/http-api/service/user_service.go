package service

import (
	"errors"

	"agriconnect/internal/media"
	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest, image *ImageUpload) (*dto.UserResponse, error)
	DeleteAccount(userID string) error
}

type userService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	store            MediaStore
}

func NewUserService(userRepo repository.UserRepository, refreshTokenRepo repository.RefreshTokenRepository, store MediaStore) UserService {
	return &userService{userRepo: userRepo, refreshTokenRepo: refreshTokenRepo, store: store}
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the provided fields; nil fields keep their current
// values. A new profile image replaces the stored path.
func (s *userService) UpdateProfile(userID string, req *dto.UpdateProfileRequest, image *ImageUpload) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(*req.Username); err == nil {
			return nil, ErrNameInUse
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*req.Email); err == nil {
			return nil, ErrEmailInUse
		}
		user.Email = *req.Email
	}

	if image != nil {
		path, err := s.store.Save("profiles", media.ExtForContentType(image.ContentType), image.Data)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = &path
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

// DeleteAccount revokes the user's refresh tokens and removes the user;
// owned rows cascade at the database level.
func (s *userService) DeleteAccount(userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.refreshTokenRepo.DeleteByUser(userID); err != nil {
		return err
	}

	return s.userRepo.Delete(userID)
}
