package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestIsLoggedIn(t *testing.T) {
	assert.False(t, (&App{}).isLoggedIn())
	assert.False(t, (&App{current: &models.Session{}}).isLoggedIn())
	assert.True(t, (&App{current: &models.Session{Token: "t"}}).isLoggedIn())
}

func TestSetMode_PrintsOnlyOnChange(t *testing.T) {
	ta := newTestApp(t, "", false)

	ta.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, ta.mode())
	assert.Contains(t, ta.out.String(), "Switched to online mode")

	before := ta.out.String()
	ta.setMode(ModeOnline)
	assert.Equal(t, before, ta.out.String())

	ta.setMode(ModeOffline)
	assert.Contains(t, ta.out.String(), "Switched to offline mode")
}

func TestGetStatus(t *testing.T) {
	ta := newTestApp(t, "", false)
	assert.Equal(t, "", ta.getStatus())

	ta.setMode(ModeOffline)
	assert.Equal(t, "(offline)", ta.getStatus())

	ta.setSession(context.Background(), &models.Session{Token: "t", UserID: "u1"})
	assert.Equal(t, "(name:u1 offline)", ta.getStatus())
}

func TestFail_MessagesPerError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.NewValidationError("title", "Titolo richiesto"), "Invalid title: Titolo richiesto"},
		{&client.RemoteError{Kind: common.ErrorValidation, Message: "Categoria non valida"}, "Invalid input: Categoria non valida"},
		{client.ErrNotLoggedIn, "Please login first"},
		{client.ErrUnavailable, "Server unavailable"},
		{client.ErrUnauthorized, "Session expired"},
		{fmt.Errorf("x: %w", common.ErrorNotFound), "Not found"},
		{common.ErrorForbidden, "not allowed"},
		{common.ErrSelfConversation, "your own listing"},
		{errors.New("boom"), "error: boom"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			ta := newTestApp(t, "", false)
			assert.Equal(t, tc.err, ta.fail(context.Background(), tc.err))
			assert.Contains(t, ta.out.String(), tc.want)
		})
	}
}

func TestOnlineStatusWatcher(t *testing.T) {
	ta := newTestApp(t, "", false)
	ta.session.pingErr = client.ErrUnavailable

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ta.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return ta.mode() == ModeOffline }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestRun_RestoresSessionAndExits(t *testing.T) {
	captureOutput(t)
	ta := newTestApp(t, "exit\n", true)

	ta.Run(context.Background())

	assert.Contains(t, ta.out.String(), "Welcome to LocalSwap CLI")
	assert.False(t, ta.isLoggedIn())
}
