package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/pantry-guardian/backend/internal/utils"
	"github.com/pantry-guardian/backend/internal/utils/mailing"
	"github.com/pantry-guardian/backend/internal/utils/storage"
	"github.com/pantry-guardian/backend/pkg/household"
	"github.com/pantry-guardian/backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error)
		SavePushToken(ctx context.Context, req domain.SavePushTokenRequest, userID string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository   UserRepository
		householdService household.HouseholdService
		jwtService       jwt.JWTService
		s3               storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, householdService household.HouseholdService, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository:   userRepository,
		householdService: householdService,
		jwtService:       jwtService,
		s3:               s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	return userToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	// Every signed-in user owns at least one household.
	s.ensureDefaultHousehold(ctx, user.ID.String())

	return domain.LoginResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String()),
		User:  userToResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return userToResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.Photo != nil {
		fileName := fmt.Sprintf("user-%s", user.ID.String())
		var objectKey string
		if user.PhotoURL != "" {
			existingKey := s.s3.GetObjectKeyFromLink(user.PhotoURL)
			objectKey, err = s.s3.UpdateFile(existingKey, req.Photo, storage.AllowImage...)
		} else {
			objectKey, err = s.s3.UploadFile(fileName, req.Photo, "users", storage.AllowImage...)
		}
		if err != nil {
			return domain.UserResponse{}, err
		}
		user.PhotoURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return userToResponse(user), nil
}

func (s *userService) SavePushToken(ctx context.Context, req domain.SavePushTokenRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.PushToken = req.PushToken
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address is registered.
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}, time.Hour)
	if err != nil {
		return err
	}

	if utils.GetConfig("SMTP_HOST") == "" {
		return nil
	}

	go func(email, token string) {
		if err := mailing.SendResetPasswordMail(email, token); err != nil {
			log.Printf("unable to send reset password email to %s: %v", email, err)
		}
	}(user.Email, token)

	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ensureDefaultHousehold(ctx context.Context, userID string) {
	households, err := s.householdService.GetHouseholdsForUser(ctx, userID)
	if err != nil {
		log.Printf("unable to list households for %s: %v", userID, err)
		return
	}
	if len(households) > 0 {
		return
	}

	if _, err := s.householdService.CreateHousehold(ctx, domain.CreateHouseholdRequest{Name: "My Household"}, userID); err != nil {
		log.Printf("unable to create default household for %s: %v", userID, err)
	}
}

func userToResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
	}
}
