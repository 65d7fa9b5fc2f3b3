package adminauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/repositories"
	"github.com/jvoverseas/intake_backend/utils"
	"github.com/labstack/gommon/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultOTPTTL = 5 * time.Minute
	SessionTTL    = 12 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoPendingOTP       = errors.New("no OTP request found")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP has expired")
)

// UserStore is the persistence the login flow needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expiry time.Time) error
	ClearOTP(ctx context.Context, id primitive.ObjectID) error
}

// OTPSender delivers the second factor. Implementations must not block.
type OTPSender interface {
	SendLoginOTP(to, otp string, ttl time.Duration)
}

// TokenIssuer signs a session token for an authenticated user.
type TokenIssuer func(userID, role string) (string, error)

// Session is the result of a completed two-step login.
type Session struct {
	Token  string
	UserID string
	Role   string
}

// Service drives ANONYMOUS -> OTP_PENDING -> AUTHENTICATED for admin users.
// Two concurrent logins for the same account race on the stored OTP; the
// last write wins.
type Service struct {
	users      UserStore
	sender     OTPSender
	issue      TokenIssuer
	now        func() time.Time
	generate   func() (string, error)
	otpTTL     time.Duration
	production bool
	logger     *log.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithOTPGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.generate = gen }
}

func WithOTPTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.otpTTL = ttl
		}
	}
}

// WithProduction suppresses the development OTP log line.
func WithProduction(production bool) Option {
	return func(s *Service) { s.production = production }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(users UserStore, sender OTPSender, issue TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:    users,
		sender:   sender,
		issue:    issue,
		now:      time.Now,
		generate: func() (string, error) { return utils.GenerateNumericOTP(utils.DefaultOTPLength) },
		otpTTL:   DefaultOTPTTL,
		logger:   log.New("adminauth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the password and, on success, stores a fresh OTP and queues
// it for delivery. Unknown users and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) error {
	email = utils.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return ErrInvalidCredentials
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	otp, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expiry := s.now().Add(s.otpTTL)

	if err := s.users.SetOTP(ctx, user.ID, otp, expiry); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	s.sender.SendLoginOTP(user.Email, otp, s.otpTTL)

	if !s.production {
		s.logger.Infof("DEV LOG: OTP for %s is %s", email, otp)
	}
	return nil
}

// VerifyOTP consumes a pending OTP and issues a session token. Checks run
// in order: pending, match, expiry.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (*Session, error) {
	email = utils.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.HasPendingOTP() {
		return nil, ErrNoPendingOTP
	}
	if subtle.ConstantTimeCompare([]byte(user.OTP), []byte(code)) != 1 {
		return nil, ErrInvalidOTP
	}
	if s.now().After(*user.OTPExpiry) {
		return nil, ErrOTPExpired
	}

	if err := s.users.ClearOTP(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("clear otp: %w", err)
	}

	token, err := s.issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Infof("admin %s authenticated", email)
	return &Session{Token: token, UserID: user.ID.Hex(), Role: user.Role}, nil
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

// dummyHash keeps the unknown-user path as slow as a real comparison.
func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}
