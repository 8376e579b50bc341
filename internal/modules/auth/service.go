package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"courseportal/internal/domain"
	"courseportal/internal/pkg/validator"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type jwtService interface {
	GenerateToken(userID int64, email, role string) (string, error)
}

// Service contains all business logic for magic-link authentication.
type Service struct {
	users           UserRepositoryInterface
	jwt             jwtService
	mailer          Mailer
	activity        ActivityRecorder
	linkTokenPepper string
	linkTTL         time.Duration
	resendCooldown  time.Duration
	frontendURL     string
	adminSetupKey   string
}

type SessionResult struct {
	User        *domain.User
	AccessToken string
}

func NewService(
	users UserRepositoryInterface,
	jwt jwtService,
	mailer Mailer,
	activity ActivityRecorder,
	linkTokenPepper string,
	linkTTL time.Duration,
	resendCooldown time.Duration,
	frontendURL string,
	adminSetupKey string,
) *Service {
	return &Service{
		users:           users,
		jwt:             jwt,
		mailer:          mailer,
		activity:        activity,
		linkTokenPepper: linkTokenPepper,
		linkTTL:         linkTTL,
		resendCooldown:  resendCooldown,
		frontendURL:     strings.TrimRight(frontendURL, "/"),
		adminSetupKey:   adminSetupKey,
	}
}

// RequestLink issues a fresh magic link for the address and hands it to the
// mailer. The caller must report success regardless of whether the address
// was known before the call; account existence is never disclosed here.
func (s *Service) RequestLink(ctx context.Context, email, name string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !validator.IsEmail(normalized) {
		return ErrInvalidEmail
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user = &domain.User{
			Email:    normalized,
			Name:     deriveName(normalized, name),
			Role:     domain.RoleStudent,
			IsActive: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			// A concurrent first-login request for the same address may
			// have hit the unique email index first; take its row.
			existing, lookupErr := s.users.GetByEmail(ctx, normalized)
			if lookupErr != nil {
				return err
			}
			user = existing
		} else {
			slog.Info("new user created on first login request", "user_id", user.ID)
		}
	}

	return s.issueLink(ctx, user, 0)
}

// ResendLink invalidates any still-usable outstanding link for the address
// and issues a new one, subject to the per-email cooldown. Unknown addresses
// report success just like RequestLink.
func (s *Service) ResendLink(ctx context.Context, email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !validator.IsEmail(normalized) {
		return ErrInvalidEmail
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Info("resend requested for unknown address (masked)")
			return nil
		}
		return err
	}

	now := time.Now()
	var latest domain.MagicLink
	err = s.users.DB().WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("last_sent_at DESC").
		First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && latest.LastSentAt.Add(s.resendCooldown).After(now) {
		return ErrRateLimited
	}

	// Retire outstanding usable links before issuing the replacement.
	if err := s.users.DB().WithContext(ctx).Model(&domain.MagicLink{}).
		Where("user_id = ? AND consumed_at IS NULL AND expires_at > ?", user.ID, now).
		Update("expires_at", now).Error; err != nil {
		return err
	}

	return s.issueLink(ctx, user, latest.ResendCount+1)
}

func (s *Service) issueLink(ctx context.Context, user *domain.User, resendCount int) error {
	raw, hash, err := generateLinkToken(s.linkTokenPepper)
	if err != nil {
		return err
	}

	now := time.Now()
	link := domain.MagicLink{
		UserID:      user.ID,
		TokenHash:   hash,
		IssuedAt:    now,
		LastSentAt:  now,
		ExpiresAt:   now.Add(s.linkTTL),
		ResendCount: resendCount,
	}
	if err := s.users.DB().WithContext(ctx).Create(&link).Error; err != nil {
		return err
	}

	url := fmt.Sprintf("%s/auth/magic-login?token=%s", s.frontendURL, raw)

	// Mail delivery is decoupled from the request path. A failed or slow
	// provider never fails link issuance; the link stays valid either way.
	email := user.Email
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("magic link dispatch panicked", "recover", r)
			}
		}()
		if err := s.mailer.SendMagicLink(context.Background(), email, url); err != nil {
			slog.Error("magic link delivery failed", "error", err)
		}
	}()

	return nil
}

// ConsumeLink validates and atomically consumes a magic link, minting a
// session token on success. Concurrent consumers of the same token serialize
// on the row lock; exactly one of them wins.
func (s *Service) ConsumeLink(ctx context.Context, rawToken string) (*SessionResult, error) {
	hash := hashLinkToken(rawToken, s.linkTokenPepper)

	var result *SessionResult
	err := s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var link domain.MagicLink
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token_hash = ?", hash).
			First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}
			return err
		}

		if link.ConsumedAt != nil {
			return ErrAlreadyUsed
		}
		if !now.Before(link.ExpiresAt) {
			return ErrExpired
		}

		// Conditional update as the real single-use gate: only the request
		// that transitions consumed_at from NULL proceeds, even on backends
		// that ignore the row lock.
		res := tx.Model(&domain.MagicLink{}).
			Where("id = ? AND consumed_at IS NULL", link.ID).
			Update("consumed_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyUsed
		}

		var user domain.User
		if err := tx.First(&user, link.UserID).Error; err != nil {
			return err
		}
		if !user.IsActive {
			return ErrAccountDisabled
		}

		token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
		if err != nil {
			return err
		}

		result = &SessionResult{User: &user, AccessToken: token}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, result.User.ID, "magic_login", "")
	return result, nil
}

// AdminLogin is the retained password path for administrators.
func (s *Service) AdminLogin(ctx context.Context, req AdminLoginRequest) (*SessionResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, user.ID, "admin_login", "")
	return &SessionResult{User: user, AccessToken: token}, nil
}

// RegisterAdmin creates an administrator account, gated behind the setup key.
func (s *Service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*domain.User, error) {
	if s.adminSetupKey == "" || req.SetupKey != s.adminSetupKey {
		return nil, ErrBadSetupKey
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.CollegeCode != "" {
		user.CollegeCode = strings.ToUpper(strings.TrimSpace(req.CollegeCode))
	}
	if req.ProgramName != "" {
		user.ProgramName = req.ProgramName
	}
	if req.YearOfStudy > 0 {
		user.YearOfStudy = req.YearOfStudy
	}
	if req.RegistrationNumber != "" {
		user.RegistrationNumber = req.RegistrationNumber
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) recordActivity(ctx context.Context, userID int64, action, details string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, &domain.SystemLog{
		UserID:  &userID,
		Action:  action,
		Details: details,
	}); err != nil {
		slog.Warn("activity record failed", "action", action, "error", err)
	}
}

// deriveName falls back to the email local part, mirroring first-login
// auto-provisioning.
func deriveName(email, name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func generateLinkToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashLinkToken(raw, pepper)
	return raw, hash, nil
}

func hashLinkToken(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
