package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrWrongPassword is returned when a password confirmation does not match.
var ErrWrongPassword = errors.New("current password is incorrect")

// UserDataPurger removes the rows a feature owns for a user. Plugins
// implement it so account deletion reaches every table in one transaction.
type UserDataPurger interface {
	PurgeUser(tx *gorm.DB, userID uuid.UUID) error
}

type UserService struct {
	db      *gorm.DB
	purgers []UserDataPurger
}

func NewUserService(db *gorm.DB, purgers ...UserDataPurger) *UserService {
	return &UserService{db: db, purgers: purgers}
}

func (s *UserService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the fields present in req and leaves the rest alone.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Age != nil {
		if *req.Age <= 0 {
			return nil, apperr.InvalidArgument("age must be positive")
		}
		updates["age"] = *req.Age
	}
	if req.Weight != nil {
		if *req.Weight <= 0 {
			return nil, apperr.InvalidArgument("weight must be positive")
		}
		updates["weight"] = *req.Weight
	}
	if req.Height != nil {
		if *req.Height <= 0 {
			return nil, apperr.InvalidArgument("height must be positive")
		}
		updates["height"] = *req.Height
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.FitnessGoal != nil {
		updates["fitness_goal"] = *req.FitnessGoal
	}
	if len(updates) == 0 {
		return nil, apperr.InvalidArgument("no data provided")
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Get(userID)
}

func (s *UserService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperr.InvalidArgument("current password and new password are required")
	}

	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperr.InvalidArgument("new password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.Model(user).Update("password", string(hash)).Error
}

// DeleteAccount removes the user and everything they own after confirming
// the password. Either all rows go or none do.
func (s *UserService) DeleteAccount(userID uuid.UUID, password string) error {
	if password == "" {
		return apperr.InvalidArgument("password confirmation required")
	}

	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrWrongPassword
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range s.purgers {
			if err := p.PurgeUser(tx, userID); err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
