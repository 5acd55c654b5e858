package userservice

import (
	"fmt"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/aangsquared/Events-Planner/src/pkg/utilities"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// LoginResult carries what the transport layer needs to set the access
// token cookie.
type LoginResult struct {
	User      core.UserProfile
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	userRepo core.UserRepository
	sessions core.SessionStore
	now      func() time.Time
}

func NewService(userRepo core.UserRepository, sessions core.SessionStore) Service {
	return Service{
		userRepo: userRepo,
		sessions: sessions,
		now:      time.Now,
	}
}

// RegisterUser creates an account with the default user role. Staff and
// admin roles are assigned operationally, never at signup.
func (s *Service) RegisterUser(req core.UserRegister) (*core.UserProfile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrValidation, err)
	}

	hashed, err := utilities.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &core.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		Role:      core.RoleUser,
		CreatedAt: s.now().UTC(),
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}

// LoginUser checks the credentials, opens a revocable session and issues
// the access token bound to it.
func (s *Service) LoginUser(req core.UserLogin) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrValidation, err)
	}

	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", core.ErrUnauthorized)
	}
	if err := utilities.CheckPassword(user.Password, req.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", core.ErrUnauthorized)
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := utilities.GenerateJWT(user.ID, user.Role, user.Email, user.Username, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %v", err)
	}

	session := core.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: expiresAt,
		IssuedAt:  s.now().UTC(),
	}
	if err := s.sessions.CreateSession(session); err != nil {
		return nil, fmt.Errorf("error creating session: %v", err)
	}

	return &LoginResult{
		User:      user.Profile(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// LogoutUser revokes the session behind a token. A missing session is not
// an error; logout is idempotent.
func (s *Service) LogoutUser(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.DeleteSession(sessionID)
}

// Profile returns the account behind an authenticated user id.
func (s *Service) Profile(userID string) (*core.UserProfile, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}
