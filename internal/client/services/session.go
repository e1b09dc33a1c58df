package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/golang-jwt/jwt/v5"
)

// SessionService keeps the bearer token and the search location across
// CLI restarts.
type SessionService interface {
	// Restore loads the saved session and hands its token to the client.
	Restore(ctx context.Context) (*models.Session, error)
	// Login stores token after the server accepted it. When the server
	// cannot be reached the token is kept anyway.
	Login(ctx context.Context, token string) (*models.Session, error)
	// Logout forgets the session and all notifications.
	Logout(ctx context.Context) error
	SetLocation(ctx context.Context, p geo.Point) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type sessionService struct {
	client        client.Client
	db            *sql.DB
	notifications NotificationService
	fallback      geo.Point
}

func NewSessionService(c client.Client, db *sql.DB, notifications NotificationService, defaultLocation geo.Point) SessionService {
	return &sessionService{client: c, db: db, notifications: notifications, fallback: defaultLocation}
}

func (s *sessionService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *sessionService) Restore(ctx context.Context) (*models.Session, error) {
	m, err := s.getMetadataRepo(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading session: %w", err)
	}

	sess := &models.Session{
		Token:    string(m[metadata.KeyToken]),
		UserID:   string(m[metadata.KeyUserID]),
		Location: s.fallback,
	}
	if raw := m[metadata.KeyLocation]; raw != nil {
		var p geo.Point
		if err := json.Unmarshal(raw, &p); err == nil && p.Valid() {
			sess.Location = p
		}
	}

	s.client.SetToken(sess.Token)
	return sess, nil
}

// subject reads the user id from the token without verifying it; the
// server does the verification.
func subject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("malformed token: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		if id, ok := claims["user_id"].(string); ok && id != "" {
			return id, nil
		}
		return "", errors.New("malformed token: no subject")
	}
	return sub, nil
}

func (s *sessionService) Login(ctx context.Context, token string) (*models.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, client.ErrUnauthorized
	}
	userID, err := subject(token)
	if err != nil {
		return nil, err
	}

	s.client.SetToken(token)
	if _, err := s.client.GetProfile(ctx, ""); err != nil && !errors.Is(err, client.ErrUnavailable) {
		s.client.SetToken("")
		return nil, fmt.Errorf("login error: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getMetadataRepo(tx)
		if err := repo.Set(ctx, metadata.KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyUserID, []byte(userID))
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	return s.Restore(ctx)
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.client.SetToken("")
	if err := s.getMetadataRepo(s.db).Clear(ctx); err != nil {
		return err
	}
	return s.notifications.ClearAll(ctx)
}

func (s *sessionService) SetLocation(ctx context.Context, p geo.Point) error {
	if !p.Valid() {
		return fmt.Errorf("invalid location %s", p)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.getMetadataRepo(s.db).Set(ctx, metadata.KeyLocation, raw)
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *sessionService) Close(ctx context.Context) error {
	return s.client.Close()
}
