package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/public-space/backend/internal/logger"
	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/anonto42/public-space/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const resetCooldown = 24 * time.Hour

// TokenVerifier checks firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AccountService handles registration, credentials and friend references.
type AccountService struct {
	users    repositories.UserRepository
	friends  repositories.FriendshipRepository
	tokens   *TokenIssuer
	verifier TokenVerifier
	now      func() time.Time
	log      *logger.Logger
}

// NewAccountService creates the service. verifier may be nil, in which case
// firebase login is unavailable.
func NewAccountService(
	users repositories.UserRepository,
	friends repositories.FriendshipRepository,
	tokens *TokenIssuer,
	verifier TokenVerifier,
) *AccountService {
	return &AccountService{
		users:    users,
		friends:  friends,
		tokens:   tokens,
		verifier: verifier,
		now:      time.Now,
		log:      logger.New("services/accounts"),
	}
}

func (s *AccountService) SetClock(now func() time.Time) {
	s.now = now
}

// FirebaseEnabled reports whether a token verifier is configured.
func (s *AccountService) FirebaseEnabled() bool {
	return s.verifier != nil
}

// duplicateIdentity turns a unique-email violation, e.g. from a concurrent
// registration that passed the lookup, into ErrDuplicateIdentity.
func duplicateIdentity(err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return ErrDuplicateIdentity
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateIdentity
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Password: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, duplicateIdentity(err)
	}
	s.log.Info("user registered", logger.Fields{"userId": user.ID})
	return s.authResponse(user)
}

func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(user)
}

// ForgotPassword replaces the password of the account matching identifier
// (email or phone) and returns the new plaintext password. Only one reset
// per account is allowed every 24 hours.
func (s *AccountService) ForgotPassword(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", repositories.ErrNotFound
	}
	if strings.Contains(identifier, "@") {
		identifier = normalizeEmail(identifier)
	}
	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		return "", err
	}

	now := s.now()
	if user.LastPasswordReset != nil && now.Sub(*user.LastPasswordReset) < resetCooldown {
		s.log.Info("password reset refused", logger.Fields{"userId": user.ID})
		return "", ErrRateLimited
	}

	password := utils.GeneratePassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hash)
	user.LastPasswordReset = &now
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return "", err
	}
	s.log.Info("password reset", logger.Fields{"userId": user.ID})
	return password, nil
}

// FirebaseLogin exchanges a firebase ID token for a local session. The user
// is found by firebase uid, then by email (and linked), else created.
func (s *AccountService) FirebaseLogin(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	if s.verifier == nil {
		return nil, ErrInvalidToken
	}
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.log.Warn("firebase token rejected", logger.Fields{"error": err.Error()})
		return nil, ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	email = normalizeEmail(email)
	name, _ := token.Claims["name"].(string)

	user, err := s.users.GetUserByFirebaseUID(ctx, token.UID)
	switch {
	case err == nil:
		changed := false
		if email != "" && user.Email != email {
			user.Email, changed = email, true
		}
		if name != "" && user.Name != name {
			user.Name, changed = name, true
		}
		if changed {
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, duplicateIdentity(err)
			}
		}
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.linkOrCreate(ctx, token.UID, email, name)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s.authResponse(user)
}

func (s *AccountService) linkOrCreate(ctx context.Context, uid, email, name string) (*models.User, error) {
	if email != "" {
		user, err := s.users.GetUserByEmail(ctx, email)
		if err == nil {
			user.FirebaseUID = uid
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	if name == "" {
		name = defaultCommenter
	}
	user := &models.User{Name: name, Email: email, FirebaseUID: uid}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, duplicateIdentity(err)
	}
	s.log.Info("user created from firebase", logger.Fields{"userId": user.ID})
	return user, nil
}

func (s *AccountService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{UserID: user.ID, Name: user.Name, Token: token}, nil
}

// AddFriend records friendID as one of userID's friends and returns the new
// friend count. Adding the same friend twice changes nothing.
func (s *AccountService) AddFriend(ctx context.Context, userID, friendID string) (int64, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return 0, err
	}
	if friendID == userID {
		return 0, ErrInvalidFriend
	}
	if err := s.friends.AddFriend(ctx, userID, friendID); err != nil {
		return 0, err
	}
	return s.friends.CountFriends(ctx, userID)
}

func (s *AccountService) ListFriends(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.friends.GetFriendIDs(ctx, userID)
}
