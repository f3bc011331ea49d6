package services

import (
	"errors"
	"os"
	"time"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/logger"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var userRepo = repositories.NewUserRepository()

// Register creates a new user account
func Register(req dto.RegisterRequest) (*models.User, error) {
	exists, err := userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrConflict
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}

	user, err = userRepo.Create(user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates a user and returns a token
func Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidation("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewValidation("invalid email or password")
	}

	if user.IsBlocked {
		return nil, apperrors.ErrForbidden
	}

	token, expiresAt, err := GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser retrieves a user by ID
func GetUser(id string) (*models.User, error) {
	user, err := userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update. When the password changes
// a fresh token is returned so old ones can be discarded client-side.
func UpdateProfile(actor *models.User, req dto.UpdateProfileRequest) (*dto.AuthResponse, error) {
	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	rotate := false
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, apperrors.NewValidation("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
		rotate = true
	}

	if len(updates) == 0 {
		return nil, apperrors.NewValidation("no fields to update")
	}

	if err := userRepo.UpdateFields(actor.ID, updates); err != nil {
		return nil, err
	}

	user, err := userRepo.FindByID(actor.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{User: user}
	if rotate {
		token, expiresAt, err := GenerateToken(user.ID, user.Email, string(user.Role))
		if err != nil {
			return nil, err
		}
		resp.Token = token
		resp.ExpiresAt = expiresAt
	}
	return resp, nil
}

// DeleteAccount removes the actor's account with the full ownership cascade
func DeleteAccount(actor *models.User) error {
	return userRepo.DeleteCascade(actor.ID)
}

// TouchLastActive bumps the actor's lastActive in the background. Failure is
// logged and never surfaces to the request that triggered it.
func TouchLastActive(userID string) {
	go func() {
		if err := userRepo.TouchLastActive(userID); err != nil {
			logger.Log.Warn("failed to touch lastActive", zap.String("userId", userID), zap.Error(err))
		}
	}()
}

// GenerateToken generates a new JWT token for a user
func GenerateToken(userID, email, role string) (string, time.Time, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return "", time.Time{}, errors.New("JWT_SECRET not set in environment")
	}

	expiresAt := time.Now().Add(24 * time.Hour)

	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    os.Getenv("JWT_ISSUER"),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid. The
// issuer claim is always verified alongside the signature and expiry.
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(os.Getenv("JWT_ISSUER")))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
