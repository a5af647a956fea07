// Package security provides token-based authentication services
package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AuthService issues and validates the opaque bearer tokens the API uses.
// Tokens are HS256 JWTs; clients treat them as opaque strings.
//
// When a Redis client is configured, every issued token is registered under
// its token id so it can be revoked before expiry. A nil client disables
// the registry; validation then relies on expiry alone.
type AuthService struct {
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
	jwtSecret   []byte
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *AuthService {
	return &AuthService{
		config:      cfg,
		logger:      logger,
		redisClient: redisClient,
		jwtSecret:   []byte(cfg.Auth.JWTSecret),
	}
}

// TokenLifetime reports how long issued tokens stay valid
func (a *AuthService) TokenLifetime() time.Duration {
	return a.config.Auth.JWTExpiration
}

// Claims represents JWT claims structure
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new bearer token for the given user
func (a *AuthService) GenerateToken(ctx context.Context, userID uint, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pantrybook",
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.Auth.JWTExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := a.registerToken(ctx, claims.ID, userID); err != nil {
		a.logger.Warn("Failed to register token in Redis", zap.Error(err))
	}

	return tokenString, nil
}

// ValidateToken validates a bearer token and returns its claims
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	revoked, err := a.isRevoked(ctx, claims.ID)
	if err != nil {
		a.logger.Warn("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	return claims, nil
}

// RevokeToken marks a token as revoked until its natural expiry.
// A no-op without a Redis client.
func (a *AuthService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := a.ValidateToken(ctx, tokenString)
	if err != nil {
		return err
	}

	if a.redisClient == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	return a.redisClient.Set(ctx, revokedKey(claims.ID), "1", ttl).Err()
}

// ExtractBearerToken pulls the token out of an Authorization header value
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("authorization header required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("invalid authorization header format")
	}

	return parts[1], nil
}

func (a *AuthService) registerToken(ctx context.Context, tokenID string, userID uint) error {
	if a.redisClient == nil {
		return nil
	}

	key := fmt.Sprintf("auth:token:%s", tokenID)
	return a.redisClient.Set(ctx, key, userID, a.config.Auth.JWTExpiration).Err()
}

func (a *AuthService) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	if a.redisClient == nil {
		return false, nil
	}

	_, err := a.redisClient.Get(ctx, revokedKey(tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}
