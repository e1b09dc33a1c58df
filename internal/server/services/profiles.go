package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/repomanager"
)

// DisplayNamer resolves a user id to the name shown next to listings and
// conversations.
type DisplayNamer interface {
	DisplayName(ctx context.Context, userID string) string
}

// ProfileInput is the editable part of a profile.
type ProfileInput struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=20,username"`
	FullName  string `json:"full_name" validate:"max=50"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
}

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger

	mu    sync.RWMutex
	names map[string]string
}

func NewProfileService(db *sql.DB, repomanager repomanager.RepositoryManager, log logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: repomanager,
		log:         log.With("module", "profiles"),
		names:       make(map[string]string),
	}
}

// Get returns the profile of userID. Users without a stored profile get an
// empty one carrying only the id.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).Get(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return &models.Profile{ID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update validates in and stores it as userID's profile.
func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	p, err := s.repomanager.Profiles(s.db).Upsert(ctx, &models.Profile{
		ID:        userID,
		Username:  in.Username,
		FullName:  in.FullName,
		AvatarURL: in.AvatarURL,
		Phone:     in.Phone,
	})
	if err != nil {
		return nil, err
	}

	s.forget(userID)
	return p, nil
}

// DisplayName returns the profile's full name, else its username, else a
// name derived from the id. Results are cached for the life of the process;
// Update invalidates the entry of the edited user.
func (s *ProfileService) DisplayName(ctx context.Context, userID string) string {
	s.mu.RLock()
	name, ok := s.names[userID]
	s.mu.RUnlock()
	if ok {
		return name
	}

	name = ""
	if userID != "" {
		p, err := s.repomanager.Profiles(s.db).Get(ctx, userID)
		switch {
		case err == nil:
			name = ProfileName(p)
		case !errors.Is(err, common.ErrorNotFound):
			s.log.Warn(ctx, "profile lookup failed", "user_id", userID, "error", err)
			// Do not cache: the next lookup may succeed.
			return common.DeriveDisplayName(userID)
		}
	}
	if name == "" {
		name = common.DeriveDisplayName(userID)
	}

	s.remember(userID, name)
	return name
}

// Remember seeds the cache with a name already known to the caller, such as
// one joined into a listing query.
func (s *ProfileService) Remember(userID, name string) {
	if name != "" {
		s.remember(userID, name)
	}
}

func (s *ProfileService) remember(userID, name string) {
	s.mu.Lock()
	s.names[userID] = name
	s.mu.Unlock()
}

func (s *ProfileService) forget(userID string) {
	s.mu.Lock()
	delete(s.names, userID)
	s.mu.Unlock()
}

// ProfileName returns the full name or username of p, or "".
func ProfileName(p *models.Profile) string {
	if p == nil {
		return ""
	}
	if n := strings.TrimSpace(p.FullName); n != "" {
		return n
	}
	return strings.TrimSpace(p.Username)
}
