package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleet-manager/internal/config"
	domainDriver "fleet-manager/internal/domain/driver"
	domainNotification "fleet-manager/internal/domain/notification"
	domainTruck "fleet-manager/internal/domain/truck"
	domainUser "fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
	"fleet-manager/pkg/email"
	appErrors "fleet-manager/pkg/errors"
	"fleet-manager/pkg/utils"
)

// Accounts created without a password start with a provisional one the
// user is expected to change through the reset flow.
const provisionalPassword = "123456"

// Service implements authentication and user administration use cases
type Service struct {
	userRepo   domainUser.Repository
	driverRepo domainDriver.Repository
	truckRepo  domainTruck.Repository
	notifRepo  domainNotification.Repository
	sender     *email.Sender
	config     *config.Config
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	driverRepo domainDriver.Repository,
	truckRepo domainTruck.Repository,
	notifRepo domainNotification.Repository,
	sender *email.Sender,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:   userRepo,
		driverRepo: driverRepo,
		truckRepo:  truckRepo,
		notifRepo:  notifRepo,
		sender:     sender,
		config:     cfg,
	}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "login_failed_inactive_user"),
		)
		return nil, appErrors.ErrUserInactive
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateToken(
		user.ID,
		user.Email,
		string(user.Role),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:      ToUserResponse(user, s.driverFor(ctx, user.ID)),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_requested_non_existent_email"),
			)
			return nil // Don't reveal if user exists
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	token, err := utils.GenerateResetToken(user.ID, s.config.JWT.Secret, s.config.JWT.ResetExpiryMinutes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, token)
	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account. "+
			"The link below is valid for %d minutes:\n\n%s\n\n"+
			"If you did not request this, you can ignore this message.",
		user.Name, s.config.JWT.ResetExpiryMinutes, resetLink,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hello %s,</p><p>A password reset was requested for your account. "+
			"The link below is valid for %d minutes:</p>"+
			"<p><a href=%q>Reset my password</a></p>"+
			"<p>If you did not request this, you can ignore this message.</p>",
		user.Name, s.config.JWT.ResetExpiryMinutes, resetLink,
	)

	if err := s.sender.Send("Password reset", []string{user.Email}, body, htmlBody); err != nil {
		return err
	}

	logger.Info("Password reset email sent",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "password_reset_email_sent"),
	)

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	userID, err := utils.VerifyResetToken(req.Token, s.config.JWT.Secret)
	if err != nil {
		logger.Warn("Password reset attempt with invalid token",
			zap.String("event", "password_reset_failed_invalid_token"),
			zap.Error(err),
		)
		return appErrors.ErrInvalidToken
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", userID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(user, s.driverFor(ctx, user.ID)), nil
}

func (s *Service) GetAllUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user, s.driverFor(ctx, user.ID)))
	}

	return responses, nil
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	role := domainUser.Role(req.Role)
	emailAddr := utils.SanitizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domainUser.ErrEmailTaken
	}

	password := req.Password
	if password == "" {
		password = provisionalPassword
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Name:           utils.SanitizeString(req.Name),
		Email:          emailAddr,
		PasswordHashed: hashedPassword,
		Role:           role,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	var d *domainDriver.Driver
	if role == domainUser.RoleDriver {
		d, err = s.createDriverRow(ctx, user, req)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.String("event", "user_created"),
	)

	return ToUserResponse(user, d), nil
}

func (s *Service) UpdateUser(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = utils.SanitizeString(*req.Name)
	}
	if req.Email != nil {
		newEmail := utils.SanitizeEmail(*req.Email)
		if newEmail != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, newEmail)
			if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to check existing user: %w", err)
			}
			if existing != nil {
				return nil, domainUser.ErrEmailTaken
			}
			user.Email = newEmail
		}
	}
	if req.Role != nil {
		user.Role = domainUser.Role(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHashed = hashedPassword
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	d := s.driverFor(ctx, user.ID)
	if user.Role == domainUser.RoleDriver {
		d, err = s.syncDriverRow(ctx, user, d, req)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "user_updated"),
	)

	return ToUserResponse(user, d), nil
}

// DeleteUser removes the account and everything hanging off it: the driver
// row with its assignment history, then the user's notifications.
func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if d := s.driverFor(ctx, userID); d != nil {
		if err := s.driverRepo.DeleteAssignmentsByDriver(ctx, d.ID); err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}
		if err := s.driverRepo.Delete(ctx, d.ID); err != nil {
			return fmt.Errorf("failed to delete driver: %w", err)
		}
	}

	if err := s.notifRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_deleted"),
	)

	return nil
}

func (s *Service) createDriverRow(ctx context.Context, user *domainUser.User, req *CreateUserRequest) (*domainDriver.Driver, error) {
	if req.LicenseNumber == nil || *req.LicenseNumber == "" {
		return nil, domainDriver.ErrLicenseRequired
	}

	userID := user.ID
	d := &domainDriver.Driver{
		Name:          user.Name,
		LicenseNumber: utils.SanitizeString(*req.LicenseNumber),
		Email:         user.Email,
		UserID:        &userID,
	}
	if req.Phone != nil {
		d.Phone = utils.SanitizePhone(*req.Phone)
	}
	if err := s.driverRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	if req.TruckID != nil {
		if err := s.assignTruck(ctx, d, *req.TruckID); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (s *Service) syncDriverRow(ctx context.Context, user *domainUser.User, d *domainDriver.Driver, req *UpdateUserRequest) (*domainDriver.Driver, error) {
	if d == nil {
		if req.LicenseNumber == nil || *req.LicenseNumber == "" {
			return nil, domainDriver.ErrLicenseRequired
		}
		userID := user.ID
		d = &domainDriver.Driver{
			Name:          user.Name,
			LicenseNumber: utils.SanitizeString(*req.LicenseNumber),
			Email:         user.Email,
			UserID:        &userID,
		}
		if req.Phone != nil {
			d.Phone = utils.SanitizePhone(*req.Phone)
		}
		if err := s.driverRepo.Create(ctx, d); err != nil {
			return nil, err
		}
	} else {
		d.Name = user.Name
		d.Email = user.Email
		if req.LicenseNumber != nil && *req.LicenseNumber != "" {
			d.LicenseNumber = utils.SanitizeString(*req.LicenseNumber)
		}
		if req.Phone != nil {
			d.Phone = utils.SanitizePhone(*req.Phone)
		}
		if err := s.driverRepo.Update(ctx, d); err != nil {
			return nil, err
		}
	}

	switch {
	case req.TruckID != nil:
		if err := s.assignTruck(ctx, d, *req.TruckID); err != nil {
			return nil, err
		}
	case req.UnassignTruck:
		if err := s.unassignTruck(ctx, d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// assignTruck moves a driver onto a truck: the previous active assignment is
// closed with today's end date before the new one opens, so at most one
// assignment per driver stays active.
func (s *Service) assignTruck(ctx context.Context, d *domainDriver.Driver, truckID uuid.UUID) error {
	if d.CurrentTruckID != nil && *d.CurrentTruckID == truckID {
		return nil
	}

	if _, err := s.truckRepo.GetByID(ctx, truckID); err != nil {
		return err
	}

	today := time.Now()
	if d.CurrentTruckID != nil {
		if err := s.driverRepo.CloseActiveAssignment(ctx, d.ID, *d.CurrentTruckID, today); err != nil {
			return fmt.Errorf("failed to close previous assignment: %w", err)
		}
	}

	assignment := &domainDriver.Assignment{
		DriverID:  d.ID,
		TruckID:   truckID,
		StartDate: today,
		Active:    true,
	}
	if err := s.driverRepo.CreateAssignment(ctx, assignment); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	d.CurrentTruckID = &truckID
	if err := s.driverRepo.Update(ctx, d); err != nil {
		return err
	}

	logger.Info("Driver reassigned",
		zap.String("driver_id", d.ID.String()),
		zap.String("truck_id", truckID.String()),
		zap.String("event", "driver_reassigned"),
	)

	return nil
}

func (s *Service) unassignTruck(ctx context.Context, d *domainDriver.Driver) error {
	if d.CurrentTruckID == nil {
		return nil
	}

	if err := s.driverRepo.CloseActiveAssignment(ctx, d.ID, *d.CurrentTruckID, time.Now()); err != nil {
		return fmt.Errorf("failed to close assignment: %w", err)
	}

	d.CurrentTruckID = nil
	return s.driverRepo.Update(ctx, d)
}

// driverFor resolves a user's driver row, nil when the user has none.
func (s *Service) driverFor(ctx context.Context, userID uuid.UUID) *domainDriver.Driver {
	d, err := s.driverRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domainDriver.ErrDriverNotFound) {
			logger.Error("Failed to load driver for user",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
		return nil
	}
	return d
}
