package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/db"
	"github.com/mentiq/mentiq/internal/platform/validate"
)

// TokenSigner issues access tokens. *auth.Issuer satisfies it.
type TokenSigner interface {
	Sign(p auth.Principal) (string, time.Time, error)
}

// DoctorProvisioner creates the directory entry for a newly registered
// doctor. InvalidateDoctors runs once the registration has committed.
type DoctorProvisioner interface {
	ProvisionDoctor(ctx context.Context, userID uuid.UUID, name, email string, specialty *string) error
	InvalidateDoctors(ctx context.Context)
}

type Service struct {
	users    UserRepository
	signer   TokenSigner
	doctors  DoctorProvisioner
	tx       db.TxBeginner
	logger   zerolog.Logger
	hashCost int
}

func NewService(users UserRepository, signer TokenSigner, doctors DoctorProvisioner, tx db.TxBeginner, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		signer:   signer,
		doctors:  doctors,
		tx:       tx,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.tx, fn)
}

// Register creates an account and signs the caller in. A doctor account
// also gets a directory listing in the same transaction, and the doctor
// cache is dropped after commit.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Session, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		Email:         req.Email,
		PasswordHash:  string(hash),
		Name:          req.Name,
		UserType:      req.UserType,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
			return ErrConflict
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.users.Create(ctx, u); err != nil {
			return err
		}
		if u.UserType == UserTypeDoctor && s.doctors != nil {
			if err := s.doctors.ProvisionDoctor(ctx, u.ID, u.Name, u.Email, u.Specialty); err != nil {
				return fmt.Errorf("provision doctor listing: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if u.UserType == UserTypeDoctor && s.doctors != nil {
		s.doctors.InvalidateDoctors(ctx)
	}
	return s.session(u)
}

// Login checks credentials and issues a token. The user type always comes
// from the stored account.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.ValidRole(u.UserType) {
		return nil, ErrInvalidAccountType
	}

	if err := s.users.TouchLastLogin(ctx, u.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to update last login")
	} else {
		now := time.Now().UTC()
		u.LastLogin = &now
	}
	return s.session(u)
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) session(u *User) (*Session, error) {
	token, exp, err := s.signer.Sign(auth.Principal{UserID: u.ID, Email: u.Email, Role: u.UserType})
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
