package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/auth"
	"seo-spinner/internal/config"
	"seo-spinner/internal/models"

	"github.com/go-ldap/ldap/v3"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const maxSessionsPerUser = 2

type AuthService struct {
	db   *bun.DB
	jwt  *auth.JWTManager
	cfg  *config.Config
	logr *zap.Logger
}

func NewAuthService(db *bun.DB, jwt *auth.JWTManager, cfg *config.Config, logr *zap.Logger) *AuthService {
	return &AuthService{db: db, jwt: jwt, cfg: cfg, logr: logr}
}

// HashPassword uses bcrypt
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// CreateLocalUser provisions an operator with a bcrypt password.
func (s *AuthService) CreateLocalUser(ctx context.Context, email, name, password string, roles []string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, apperr.Validation("email and a password of at least 8 characters are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if len(roles) == 0 {
		roles = []string{models.RoleEditor}
	}
	u := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Provider:     "local",
		Roles:        roles,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(u).Returning("id").Exec(ctx); err != nil {
		return nil, apperr.Database("create user", err)
	}
	return u, nil
}

// LoginLocal authenticates with email and password.
func (s *AuthService) LoginLocal(ctx context.Context, email, password, deviceInfo string) (*auth.TokenPair, *models.UserInfo, error) {
	var u models.User
	err := s.db.NewSelect().Model(&u).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, nil, apperr.Database("load user", err)
	}
	if u.PasswordHash == "" {
		return nil, nil, apperr.Unauthorized("account not configured for local login")
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		return nil, nil, apperr.Unauthorized("invalid credentials")
	}

	pair, err := s.startSession(ctx, &u, "local", deviceInfo)
	if err != nil {
		return nil, nil, err
	}
	return pair, u.Info("local"), nil
}

// LoginLDAP binds as the user against the directory, then provisions a local account on first login.
func (s *AuthService) LoginLDAP(ctx context.Context, username, password, deviceInfo string) (*auth.TokenPair, *models.UserInfo, error) {
	if s.cfg.LDAPServer == "" {
		return nil, nil, apperr.Unauthorized("directory login is not configured")
	}

	cleanUsername := strings.TrimSpace(username)
	if s.cfg.LDAPDomain != "" {
		suffix := "@" + strings.ToLower(s.cfg.LDAPDomain)
		if strings.HasSuffix(strings.ToLower(cleanUsername), suffix) {
			cleanUsername = cleanUsername[:len(cleanUsername)-len(suffix)]
		}
	}
	if cleanUsername == "" || password == "" {
		return nil, nil, apperr.Unauthorized("invalid credentials")
	}

	l, err := ldap.DialURL(s.cfg.LDAPServer, ldap.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}))
	if err != nil {
		s.logr.Error("LDAP dial failed", zap.Error(err), zap.String("server", s.cfg.LDAPServer))
		return nil, nil, fmt.Errorf("ldap connection failed: %w", err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			s.logr.Debug("LDAP close error", zap.Error(closeErr))
		}
	}()
	l.SetTimeout(30 * time.Second)

	bindDN := cleanUsername
	if s.cfg.LDAPDomain != "" {
		bindDN = cleanUsername + "@" + s.cfg.LDAPDomain
	}
	if err := l.Bind(bindDN, password); err != nil {
		s.logr.Warn("LDAP bind failed", zap.String("username", cleanUsername))
		return nil, nil, apperr.Unauthorized("invalid credentials")
	}

	searchReq := ldap.NewSearchRequest(
		s.cfg.LDAPBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1,
		0,
		false,
		fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(cleanUsername)),
		[]string{"cn", "mail", "displayName"},
		nil,
	)
	sr, err := l.Search(searchReq)
	if err != nil {
		s.logr.Error("LDAP search failed", zap.Error(err), zap.String("username", cleanUsername))
		return nil, nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if len(sr.Entries) == 0 {
		return nil, nil, apperr.Unauthorized("user not found in directory")
	}

	entry := sr.Entries[0]
	mail := strings.ToLower(entry.GetAttributeValue("mail"))
	if mail == "" {
		return nil, nil, apperr.Unauthorized("user account missing email")
	}
	fullName := entry.GetAttributeValue("displayName")
	if fullName == "" {
		fullName = entry.GetAttributeValue("cn")
	}
	if fullName == "" {
		fullName = cleanUsername
	}

	u, err := s.provisionDirectoryUser(ctx, mail, fullName)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.startSession(ctx, u, "ldap", deviceInfo)
	if err != nil {
		return nil, nil, err
	}
	s.logr.Info("LDAP login successful", zap.String("user_id", u.ID.String()), zap.String("email", mail))
	return pair, u.Info("ldap"), nil
}

func (s *AuthService) provisionDirectoryUser(ctx context.Context, mail, name string) (*models.User, error) {
	var u models.User
	err := s.db.NewSelect().Model(&u).Where("email = ?", mail).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		u = models.User{
			Email:     mail,
			Provider:  "ldap",
			Name:      name,
			Roles:     []string{models.RoleEditor},
			CreatedAt: time.Now().UTC(),
		}
		if _, err := s.db.NewInsert().Model(&u).Returning("id").Exec(ctx); err != nil {
			return nil, apperr.Database("create user", err)
		}
		s.logr.Info("created directory user", zap.String("email", mail), zap.String("id", u.ID.String()))
	case err != nil:
		return nil, apperr.Database("load user", err)
	case u.Provider != "ldap":
		if _, err := s.db.NewUpdate().Model(&u).Set("provider = ?", "ldap").WherePK().Exec(ctx); err != nil {
			s.logr.Warn("failed to update user provider", zap.Error(err))
		}
	}
	return &u, nil
}

// startSession issues tokens, stores the hashed refresh token and stamps last login.
func (s *AuthService) startSession(ctx context.Context, u *models.User, method, deviceInfo string) (*auth.TokenPair, error) {
	pair, err := s.jwt.GenerateTokenPair(auth.Subject{
		UserID:       u.ID.String(),
		TokenVersion: u.TokenVersion,
		AuthMethod:   method,
		Roles:        u.Roles,
	})
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, u.ID, pair, deviceInfo); err != nil {
		return nil, apperr.Database("store refresh token", err)
	}

	now := time.Now().UTC()
	if _, err := s.db.NewUpdate().Model((*models.User)(nil)).
		Set("last_login_at = ?", now).
		Where("id = ?", u.ID).
		Exec(ctx); err != nil {
		s.logr.Warn("failed to update last login", zap.Error(err))
	}
	return pair, nil
}

// storeRefreshToken keeps at most maxSessionsPerUser live refresh tokens per user.
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uuid.UUID, pair *auth.TokenPair, deviceInfo string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.RefreshToken)(nil)).
			Where("user_id = ? AND expires_at < now()", userID).
			Exec(ctx); err != nil {
			return err
		}

		_, err := tx.NewDelete().Model((*models.RefreshToken)(nil)).
			Where(`id IN (
				SELECT id FROM refresh_tokens
				WHERE user_id = ? AND revoked = false
				ORDER BY created_at DESC
				OFFSET ?
			)`, userID, maxSessionsPerUser-1).
			Exec(ctx)
		if err != nil {
			return err
		}

		rt := models.RefreshToken{
			UserID:     userID,
			JTI:        pair.RefreshJTI,
			TokenHash:  auth.HashToken(pair.RefreshToken),
			DeviceInfo: optionalString(deviceInfo),
			CreatedAt:  time.Now().UTC(),
			ExpiresAt:  pair.RefreshExp,
		}
		_, err = tx.NewInsert().Model(&rt).Exec(ctx)
		return err
	})
}

// Refresh rotates a refresh token: the presented token is revoked and a new pair issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, deviceInfo string) (*auth.TokenPair, error) {
	claims, err := s.jwt.Verify(refreshToken, auth.RefreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	var rt models.RefreshToken
	err = s.db.NewSelect().Model(&rt).
		Where("jti = ? AND token_hash = ? AND revoked = false AND expires_at > now()", claims.ID, auth.HashToken(refreshToken)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Unauthorized("refresh token not found or revoked")
		}
		return nil, apperr.Database("load refresh token", err)
	}

	var u models.User
	if err := s.db.NewSelect().Model(&u).Where("id = ?", rt.UserID).Scan(ctx); err != nil {
		return nil, apperr.Unauthorized("user not found")
	}

	if _, err := s.db.NewUpdate().Model((*models.RefreshToken)(nil)).
		Set("revoked = true").
		Where("id = ?", rt.ID).
		Exec(ctx); err != nil {
		return nil, apperr.Database("revoke refresh token", err)
	}

	return s.startSession(ctx, &u, claims.AuthMethod, deviceInfo)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.Verify(refreshToken, auth.RefreshToken)
	if err != nil {
		return apperr.Unauthorized("invalid refresh token")
	}
	_, err = s.db.NewUpdate().Model((*models.RefreshToken)(nil)).
		Set("revoked = true").
		Where("jti = ?", claims.ID).
		Exec(ctx)
	if err != nil {
		return apperr.Database("revoke refresh token", err)
	}
	return nil
}

// CheckTokenVersion reports whether tokenVersion is still current for the user.
func (s *AuthService) CheckTokenVersion(ctx context.Context, userID string, tokenVersion int) (bool, error) {
	var version int
	err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Column("token_version").
		Where("id = ?", userID).
		Scan(ctx, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return version == tokenVersion, nil
}

func optionalString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
