package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/dto/response"
	"ticket-portal/pkg/mailer"
	"ticket-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotApproved = errors.New("account is awaiting admin approval")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with upper, lower, digit and special")
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) error
	VerifyRegistration(ctx context.Context, req *request.VerifyRegistrationRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminAuthResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo *repository.Repository
	mail *mailer.Mailer
	cfg  *utils.Config
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, mail *mailer.Mailer, cfg *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		mail: mail,
		cfg:  cfg,
		log:  log.With(zap.String("service", "auth")),
	}
}

// Register starts the two-step signup: validate the details, then persist and
// email a short-lived OTP. No user row exists until the OTP is verified.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !utils.IsPasswordStrong(req.Password) {
		return ErrWeakPassword
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	if err := s.issueOTP(ctx, req.Email, entity.OTPPurposeRegistration); err != nil {
		return err
	}

	s.log.Info("Registration OTP sent", zap.String("email", req.Email))
	return nil
}

func (s *authService) issueOTP(ctx context.Context, email string, purpose entity.OTPPurpose) error {
	expiry := time.Duration(s.cfg.OTP.ExpiryMinutes) * time.Minute
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Email:     email,
		Code:      utils.GenerateOTP(6),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(expiry),
	}

	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		return err
	}

	if s.mail != nil {
		if err := s.mail.SendOTP(email, otp.Code, expiry); err != nil {
			s.log.Error("Failed to send OTP mail",
				zap.Error(err),
				zap.String("email", email),
			)
			return fmt.Errorf("send OTP mail: %w", err)
		}
	}

	return nil
}

// VerifyRegistration consumes the OTP and creates the user account, still
// unapproved. The registration details ride along with the OTP code.
func (s *authService) VerifyRegistration(ctx context.Context, req *request.VerifyRegistrationRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !utils.IsPasswordStrong(req.Password) {
		return nil, ErrWeakPassword
	}

	otp, err := s.repo.OTP.FindValid(ctx, req.Email, req.OTP, entity.OTPPurposeRegistration)
	if err != nil {
		return nil, fmt.Errorf("check OTP: %w", err)
	}
	if otp == nil {
		return nil, ErrInvalidOTP
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.OTP.MarkAsUsed(ctx, otp); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.UserRole(req.Role),
		IsApproved:   false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered, awaiting approval",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsApproved {
		return nil, ErrAccountNotApproved
	}

	session, err := s.createSession(ctx, &user.ID, false)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminAuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Username != s.cfg.Admin.Username || req.Password != s.cfg.Admin.Password {
		return nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, nil, true)
	if err != nil {
		return nil, err
	}

	s.log.Info("Admin logged in")

	resp := response.AdminAuthToResponse(session)
	return &resp, nil
}

func (s *authService) createSession(ctx context.Context, userID *uuid.UUID, isAdmin bool) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     uuid.New(),
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}
	return s.repo.Session.Revoke(ctx, tokenUUID)
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		// Do not reveal whether the email is registered.
		s.log.Info("Password reset requested for unknown email", zap.String("email", req.Email))
		return nil
	}

	return s.issueOTP(ctx, req.Email, entity.OTPPurposePasswordReset)
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !utils.IsPasswordStrong(req.NewPassword) {
		return ErrWeakPassword
	}

	otp, err := s.repo.OTP.FindValid(ctx, req.Email, req.OTP, entity.OTPPurposePasswordReset)
	if err != nil {
		return fmt.Errorf("check OTP: %w", err)
	}
	if otp == nil {
		return ErrInvalidOTP
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return ErrInvalidOTP
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.OTP.MarkAsUsed(ctx, otp); err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}
