package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/geo"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

// Login stores a bearer token issued by the identity provider. The token
// may be given as an argument; otherwise it is read without echo.
func (a *App) Login(ctx context.Context, args []string) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		if token, err = getSecret("Paste your access token", a.out); err != nil {
			return a.fail(ctx, err)
		}
	}

	sess, err := a.session.Login(ctx, token)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.setSession(ctx, sess)
	a.println("Login successful")
	return nil
}

// Logout forgets the token, the cached names and all notifications.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.chat.ForgetNames()
	a.setSession(ctx, &models.Session{Location: a.config.DefaultLocation})
	a.println("Logged out")
	return nil
}

func (a *App) Where(_ context.Context, _ []string) error {
	a.printf("Searching around %s\n", a.location())
	return nil
}

// Locate moves the search center and remembers it for the next run.
func (a *App) Locate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.println("Usage: locate <lat> <lng>")
		return nil
	}
	lat, err1 := strconv.ParseFloat(args[0], 64)
	lng, err2 := strconv.ParseFloat(args[1], 64)
	p := geo.Point{Lat: lat, Lng: lng}
	if err1 != nil || err2 != nil || !p.Valid() {
		a.println("Coordinates must be lat in [-90,90] and lng in [-180,180]")
		return nil
	}

	if err := a.session.SetLocation(ctx, p); err != nil {
		return a.fail(ctx, err)
	}

	a.mu.Lock()
	if a.current == nil {
		a.current = &models.Session{}
	}
	a.current.Location = p
	a.mu.Unlock()

	a.printf("Searching around %s\n", p)
	return nil
}
