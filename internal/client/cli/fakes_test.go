package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/client/config"
	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/client/services"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by watch goroutines while the test reads it.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

type fakeSession struct {
	loginErr error
	pingErr  error
	location geo.Point
	logouts  int
}

func (f *fakeSession) Restore(context.Context) (*models.Session, error) {
	return &models.Session{Location: geo.DefaultLocation}, nil
}

func (f *fakeSession) Login(_ context.Context, token string) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Session{Token: token, UserID: "me", Location: geo.DefaultLocation}, nil
}

func (f *fakeSession) Logout(context.Context) error { f.logouts++; return nil }

func (f *fakeSession) SetLocation(_ context.Context, p geo.Point) error {
	f.location = p
	return nil
}

func (f *fakeSession) Ping(context.Context) error  { return f.pingErr }
func (f *fakeSession) Close(context.Context) error { return nil }

type fakeMarket struct {
	nearby    *api.ItemsResponse
	gotCenter geo.Point
	gotRadius int
	item      *api.Item
	err       error
	posted    *api.CreateItemRequest
	uploads   []string
	status    [2]string
	deleted   string
}

func (f *fakeMarket) Catalog(context.Context) (*api.CatalogResponse, error) {
	return &api.CatalogResponse{
		ObjectCategories:  []api.Option{{Value: "elettronica", Label: "Elettronica"}, {Value: "sport", Label: "Sport"}},
		ServiceCategories: []api.Option{{Value: "pet_care", Label: "Pet care"}},
		ObjectTypes:       []api.Option{{Value: "vendo", Label: "Vendo"}, {Value: "regalo", Label: "Regalo"}},
		ServiceTypes:      []api.Option{{Value: "offro", Label: "Offro"}},
	}, nil
}

func (f *fakeMarket) Nearby(_ context.Context, center geo.Point, radius int) (*api.ItemsResponse, error) {
	f.gotCenter, f.gotRadius = center, radius
	return f.nearby, f.err
}

func (f *fakeMarket) Show(context.Context, string) (*api.Item, error) { return f.item, f.err }

func (f *fakeMarket) Post(_ context.Context, req *api.CreateItemRequest) (*api.Item, error) {
	f.posted = req
	if f.err != nil {
		return nil, f.err
	}
	return &api.Item{ID: "new-1", Title: req.Title}, nil
}

func (f *fakeMarket) Mine(context.Context) ([]*api.Item, error) {
	if f.item == nil {
		return nil, f.err
	}
	return []*api.Item{f.item}, f.err
}

func (f *fakeMarket) SetStatus(_ context.Context, id, status string) error {
	f.status = [2]string{id, status}
	return f.err
}

func (f *fakeMarket) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeMarket) Upload(_ context.Context, path string, presigned bool) (string, error) {
	f.uploads = append(f.uploads, path)
	if presigned {
		return "https://cdn/presigned/" + path, nil
	}
	return "https://cdn/" + path, nil
}

type fakeChat struct {
	convs    []*api.Conversation
	messages []*api.Message
	err      error
	sent     string
	stream   []*api.Message
	forgot   bool
}

func (f *fakeChat) Conversations(context.Context) ([]*api.Conversation, error) {
	return f.convs, f.err
}

func (f *fakeChat) Open(context.Context, string) ([]*api.Message, error) { return f.messages, f.err }

func (f *fakeChat) Contact(_ context.Context, itemID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "conv-" + itemID, nil
}

func (f *fakeChat) Send(_ context.Context, conversationID, content string) (*api.Message, error) {
	f.sent = content
	return &api.Message{ConversationID: conversationID, SenderID: "me", Content: content, CreatedAt: now()}, f.err
}

func (f *fakeChat) Watch(ctx context.Context, _, _ string, fn func(*api.Message)) error {
	for _, m := range f.stream {
		fn(m)
	}
	<-ctx.Done()
	return nil
}

func (f *fakeChat) DisplayName(_ context.Context, userID string) string {
	return "name:" + userID
}

func (f *fakeChat) ForgetNames() { f.forgot = true }

type fakeProfiles struct {
	rated *api.RateRequest
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*api.Profile, error) {
	if userID == "" {
		userID = "me"
	}
	return &api.Profile{ID: userID, DisplayName: "name:" + userID, ReputationScore: 4.5, ReputationLabel: "Top Trader", TotalTransactions: 3, SuccessfulTransactions: 2}, nil
}

func (f *fakeProfiles) Rate(_ context.Context, req *api.RateRequest) (*api.RateResponse, error) {
	f.rated = req
	return &api.RateResponse{ReputationScore: 4.2}, nil
}

type testApp struct {
	*App
	out      *syncBuffer
	session  *fakeSession
	market   *fakeMarket
	chat     *fakeChat
	profiles *fakeProfiles
}

func newTestApp(t *testing.T, input string, loggedIn bool) *testApp {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ta := &testApp{
		out:      &syncBuffer{},
		session:  &fakeSession{},
		market:   &fakeMarket{},
		chat:     &fakeChat{},
		profiles: &fakeProfiles{},
	}
	sess := &models.Session{Location: geo.DefaultLocation}
	if loggedIn {
		sess.Token, sess.UserID = "tok", "me"
	}
	ta.App = &App{
		config:        &config.Config{DefaultLocation: geo.DefaultLocation, OnlineCheckInterval: 10 * time.Millisecond},
		logger:        logging.Discard(),
		session:       ta.session,
		market:        ta.market,
		chat:          ta.chat,
		profiles:      ta.profiles,
		notifications: services.NewNotificationService(db, nil),
		reader:        bufio.NewReader(strings.NewReader(input)),
		out:           ta.out,
		current:       sess,
	}
	return ta
}
