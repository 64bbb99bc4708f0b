package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"recipe-book/domain"
	"recipe-book/entities"
	"recipe-book/internal/logging"
	"recipe-book/internal/metrics"
	"recipe-book/internal/utils/mailing"
	"recipe-book/pkg/jwt"
)

const verifyTokenTTL = 24 * time.Hour

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		SendVerificationEmail(ctx context.Context, req domain.SendVerifyRequest) error
		VerifyEmail(ctx context.Context, token string) error
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUserByID(ctx context.Context, userID string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, appURL string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         strings.TrimRight(appURL, "/"),
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userRepository.CheckUsername(ctx, username)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if taken {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	}

	taken, err = s.userRepository.CheckEmail(ctx, email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if taken {
		return domain.UserResponse{}, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		IsActive: false,
		Role:     entities.RoleUser,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	// mail failures do not roll back the registration
	if err := s.sendConfirmation(user); err != nil {
		logging.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to send confirmation mail")
	}

	return toUserResponse(user), nil
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerifyRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}
	if user.IsActive {
		return domain.ErrAccountVerified
	}
	return s.sendConfirmation(user)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.jwtService.ValidateTokenVerifyEmail(token)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsActive {
		return domain.ErrAccountVerified
	}

	if err := s.userRepository.ActivateUser(ctx, userID); err != nil {
		return err
	}
	logging.Info().Str("user_id", userID).Msg("account activated")
	return nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsNotMatch
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsNotMatch
	}

	if !user.IsActive {
		return domain.LoginResponse{}, domain.ErrAccountNotVerified
	}

	return domain.LoginResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
		Role:  user.Role,
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) sendConfirmation(user *entities.User) error {
	token, err := s.jwtService.GenerateTokenVerifyEmail(user.ID.String(), verifyTokenTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", s.appURL, url.QueryEscape(token))
	body, err := mailing.ConfirmRegistrationBody(user.Username, link)
	if err != nil {
		return err
	}

	err = s.mailer.SendMail(user.Email, mailing.ConfirmRegistrationSubject, body)
	metrics.MailsSent.WithLabelValues(metrics.Outcome(err)).Inc()
	return err
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
		Role:     user.Role,
	}
}
