package usecase

import (
	"context"
	"fmt"
	"time"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/internal/dto/request"
	"bootcamp-platform/internal/dto/response"
	"bootcamp-platform/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) (*response.UserResponse, error)
	ApproveAdmin(ctx context.Context, req *request.ApproveAdminRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	CheckAuth(ctx context.Context, userID string) (*response.UserResponse, error)
}

type authService struct {
	repo     *repository.Repository
	notifier NotificationService
	config   *utils.Config
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	notifier NotificationService,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check email is not taken
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 4. Generate verification code
	code := utils.GenerateVerificationCode(s.config.Verification.CodeLength)
	codeExpiry := time.Now().Add(time.Duration(s.config.Verification.CodeExpiryHours) * time.Hour)

	role := entity.RoleUser
	if req.Role == string(entity.RoleAdmin) {
		role = entity.RoleAdmin
	}

	// 5. Create user entity. Admin signups skip email verification but are
	// gated by company approval instead.
	user := &entity.User{
		Fullname:                   req.Fullname,
		Email:                      req.Email,
		PasswordHash:               hashedPassword,
		Role:                       role,
		IsAccountVerified:          role == entity.RoleAdmin,
		IsAdminVerified:            false,
		LastLogin:                  time.Now(),
		Bootcamps:                  []bson.ObjectID{},
		VerificationToken:          &code,
		VerificationTokenExpiresAt: &codeExpiry,
	}

	// 6. Save user; the unique email index backstops a concurrent register
	if err := s.repo.User.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("email already registered")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 7. Dispatch the verification notification: admins are approved by the
	// company, regular users verify their own address
	if role == entity.RoleAdmin {
		s.notifier.SendAdminApprovalRequest(user.Fullname, user.Email, code)
	} else {
		s.notifier.SendVerificationEmail(user.Email, code)
	}

	// 8. Issue session token
	token, expiresAt, err := utils.GenerateSessionToken(user.ID.Hex(), string(user.Role), s.config.JWT)
	if err != nil {
		s.log.Error("Failed to issue session token", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return response.AuthToResponse(user, token, expiresAt), nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify email validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find a user holding this non-expired code
	user, err := s.repo.User.FindByVerificationToken(ctx, req.Code)
	if err != nil {
		s.log.Error("Failed to look up verification code", zap.Error(err))
		return nil, fmt.Errorf("failed to verify email")
	}
	if user == nil {
		return nil, fmt.Errorf("invalid or expired verification code")
	}

	// 3. Flip verified and clear the single-use code
	user.IsAccountVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpiresAt = nil

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to mark account verified", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return nil, fmt.Errorf("failed to verify email")
	}

	// 4. Welcome mail
	s.notifier.SendWelcomeEmail(user.Email, user.Fullname)

	s.log.Info("Email verified",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) ApproveAdmin(ctx context.Context, req *request.ApproveAdminRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Approve admin validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Match only an unapproved admin holding this non-expired code
	user, err := s.repo.User.FindPendingAdmin(ctx, req.Email, req.Code)
	if err != nil {
		s.log.Error("Failed to look up pending admin", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to approve admin")
	}
	if user == nil {
		return fmt.Errorf("invalid or expired approval code")
	}

	// 3. Grant admin authority exactly once; code is single-use
	user.IsAdminVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpiresAt = nil

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to approve admin", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return fmt.Errorf("failed to approve admin")
	}

	s.log.Info("Admin approved",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email),
	)

	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}

	// 3. Same message for unknown email and wrong password so the response
	// does not reveal which check failed
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.Hex()))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 4. Record login
	user.LastLogin = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Warn("Failed to update last login", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		// Not fatal
	}

	// 5. Rotate the session token
	token, expiresAt, err := utils.GenerateSessionToken(user.ID.Hex(), string(user.Role), s.config.JWT)
	if err != nil {
		s.log.Error("Failed to issue session token", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email),
	)

	return response.AuthToResponse(user, token, expiresAt), nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	// 1. Find user. An unknown email gets the same success response as a
	// known one so the endpoint cannot be used to probe for accounts.
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for password reset", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to process password reset")
	}
	if user == nil {
		s.log.Info("Password reset requested for unknown email", zap.String("email", email))
		return nil
	}

	// 2. Issue reset token
	token, err := utils.GenerateResetToken()
	if err != nil {
		s.log.Error("Failed to generate reset token", zap.Error(err))
		return fmt.Errorf("failed to process password reset")
	}
	expiry := time.Now().Add(time.Duration(s.config.Verification.ResetExpiryMins) * time.Minute)

	user.ResetPasswordToken = &token
	user.ResetPasswordExpiresAt = &expiry

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store reset token", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return fmt.Errorf("failed to process password reset")
	}

	// 3. Reset-link mail
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.config.App.ClientURL, token)
	s.notifier.SendPasswordResetEmail(user.Email, resetURL)

	s.log.Info("Password reset token issued", zap.String("user_id", user.ID.Hex()))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(&request.ResetPasswordRequest{Password: password}); len(errs) > 0 {
		s.log.Warn("Reset password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Match the non-expired token
	user, err := s.repo.User.FindByResetToken(ctx, token)
	if err != nil {
		s.log.Error("Failed to look up reset token", zap.Error(err))
		return fmt.Errorf("failed to reset password")
	}
	if user == nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	// 3. Replace hash and clear the single-use token
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to reset password")
	}

	user.PasswordHash = hashedPassword
	user.ResetPasswordToken = nil
	user.ResetPasswordExpiresAt = nil

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to store new password", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		return fmt.Errorf("failed to reset password")
	}

	// 4. Success mail
	s.notifier.SendResetSuccessEmail(user.Email)

	s.log.Info("Password reset", zap.String("user_id", user.ID.Hex()))
	return nil
}

func (s *authService) CheckAuth(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to resolve current user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to resolve user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
