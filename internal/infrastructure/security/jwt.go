package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
)

// AccessClaims é o payload dos tokens de acesso
type AccessClaims struct {
	UserID         string  `json:"id"`
	Email          string  `json:"email"`
	Role           string  `json:"role,omitempty"`
	OrganizationID *string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager emite e verifica tokens HS256
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenManager cria um TokenManager. O segredo não pode ser vazio.
func NewTokenManager(secret string, expiry time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}, nil
}

// WithClock troca o relógio usado na emissão e validação (testes)
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

// Issue assina um token de acesso para o usuário
func (m *TokenManager) Issue(user *entities.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expiry)

	claims := &AccessClaims{
		UserID:         user.ID,
		Email:          user.Email.String(),
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ExtractBearerToken retira o token de um header "Bearer <token>".
// O esquema é comparado sem diferenciar maiúsculas.
func ExtractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domainerrors.ErrMissingCredential
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", domainerrors.ErrMissingCredential
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domainerrors.ErrMissingCredential
	}

	return token, nil
}

// VerifyHeader extrai e verifica o token de um header Authorization
func (m *TokenManager) VerifyHeader(header string) (*entities.Identity, error) {
	token, err := ExtractBearerToken(header)
	if err != nil {
		return nil, err
	}
	return m.Verify(token)
}

// Verify valida assinatura e expiração e decodifica as claims.
// Qualquer falha vira ErrInvalidCredential; a causa fica no erro encadeado só para log.
func (m *TokenManager) Verify(tokenString string) (*entities.Identity, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerrors.ErrInvalidCredential, err)
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidCredential
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: token has no subject", domainerrors.ErrInvalidCredential)
	}

	role := entities.DefaultRole
	if strings.TrimSpace(claims.Role) != "" {
		role = entities.NormalizeRole(claims.Role)
	}

	identity := &entities.Identity{
		UserID: userID,
		Email:  strings.ToLower(strings.TrimSpace(claims.Email)),
		Role:   role,
	}
	if claims.OrganizationID != nil && *claims.OrganizationID != "" {
		org := *claims.OrganizationID
		identity.OrganizationID = &org
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	return identity, nil
}
