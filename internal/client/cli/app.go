package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/client/config"
	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/client/services"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	session       services.SessionService
	market        services.MarketService
	chat          services.ChatService
	profiles      services.ProfileService
	notifications services.NotificationService
	reader        *bufio.Reader
	out           io.Writer

	mu       sync.RWMutex
	Mode     Mode
	current  *models.Session
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewJSONLogger(os.Stderr, "warn").With("module", "cli")

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewLocalSwapClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	var mirror io.Writer
	if c.MirrorNotifications {
		mirror = os.Stdout
	}

	ns := services.NewNotificationService(db, mirror)
	return &App{
		config:        c,
		logger:        logger,
		session:       services.NewSessionService(apiClient, db, ns, c.DefaultLocation),
		market:        services.NewMarketService(apiClient),
		chat:          services.NewChatService(apiClient, ns),
		profiles:      services.NewProfileService(apiClient),
		notifications: ns,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		current:       &models.Session{Location: c.DefaultLocation},
	}, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()
	if changed {
		a.printf("\nSwitched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

func (a *App) sessionState() *models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// setSession installs s and resolves the display name shown in the prompt.
func (a *App) setSession(ctx context.Context, s *models.Session) {
	name := ""
	if s.UserID != "" {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		name = a.chat.DisplayName(ctx, s.UserID)
		cancel()
	}
	a.mu.Lock()
	a.current = s
	a.userName = name
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	s := a.sessionState()
	return s != nil && s.LoggedIn()
}

func (a *App) location() geo.Point {
	if s := a.sessionState(); s != nil {
		return s.Location
	}
	return a.config.DefaultLocation
}

// requireLogin prints a hint and reports false when there is no session.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	a.println("Please login first (type 'login')")
	return false
}

// fail prints err in a form meant for the user and returns it.
func (a *App) fail(ctx context.Context, err error) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		a.printf("Invalid %s: %s\n", verr.Field, verr.Message)
	case errors.Is(err, common.ErrorValidation):
		a.printf("Invalid input: %v\n", err)
	case errors.Is(err, client.ErrNotLoggedIn):
		a.println("Please login first (type 'login')")
	case errors.Is(err, client.ErrUnavailable):
		a.println("Server unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized):
		a.println("Session expired or invalid token, please login again")
	case errors.Is(err, common.ErrorNotFound):
		a.println("Not found")
	case errors.Is(err, common.ErrorForbidden):
		a.println("You are not allowed to do that")
	case errors.Is(err, common.ErrSelfConversation):
		a.println("That is your own listing")
	default:
		a.printf("error: %v\n", err)
	}
	a.logger.Debug(ctx, "command failed", "error", err)
	return err
}

// Run restores the previous session, starts the connectivity watcher and
// blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.session.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to LocalSwap CLI (type 'help' for commands)")

	sess, err := a.session.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "cannot restore session", "error", err)
	} else {
		a.setSession(ctx, sess)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	a.mu.RLock()
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	a.mu.RUnlock()
	s = strings.TrimSpace(s)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.session.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
