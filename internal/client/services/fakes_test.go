package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements only what the tests call; anything else panics on
// the nil embedded interface.
type fakeClient struct {
	client.Client

	token string

	profileErr error
	profiles   map[string]*api.Profile
	profileHit int

	catalogCalls int

	gotCenter geo.Point
	gotRadius int

	uploaded  []byte
	presigned *api.PresignResponse

	messages    []*api.Message
	markReadErr error
	markedRead  string
	sent        string
	convs       []*api.Conversation
	stream      []*api.Message
	watchErr    error
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) GetProfile(_ context.Context, userID string) (*api.Profile, error) {
	f.profileHit++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return &api.Profile{ID: userID}, nil
}

func (f *fakeClient) Catalog(context.Context) (*api.CatalogResponse, error) {
	f.catalogCalls++
	return &api.CatalogResponse{ObjectCategories: []api.Option{{Value: "elettronica", Label: "Elettronica"}}}, nil
}

func (f *fakeClient) Nearby(_ context.Context, center geo.Point, radius int) (*api.ItemsResponse, error) {
	f.gotCenter, f.gotRadius = center, radius
	return &api.ItemsResponse{Items: []*api.Item{{ID: "i1"}}, Radius: radius}, nil
}

func (f *fakeClient) UploadImage(_ context.Context, filename, contentType string, data []byte) (string, error) {
	f.uploaded = data
	return "https://cdn/" + filename, nil
}

func (f *fakeClient) PresignImage(context.Context, string, string) (*api.PresignResponse, error) {
	return f.presigned, nil
}

func (f *fakeClient) ListConversations(context.Context) ([]*api.Conversation, error) {
	return f.convs, nil
}

func (f *fakeClient) GetOrCreateConversation(_ context.Context, itemID string) (string, error) {
	return "conv-" + itemID, nil
}

func (f *fakeClient) GetMessages(context.Context, string) ([]*api.Message, error) {
	return f.messages, nil
}

func (f *fakeClient) MarkRead(_ context.Context, conversationID string) (int64, error) {
	f.markedRead = conversationID
	return 1, f.markReadErr
}

func (f *fakeClient) SendMessage(_ context.Context, conversationID, content string) (*api.Message, error) {
	f.sent = content
	return &api.Message{ConversationID: conversationID, Content: content}, nil
}

func (f *fakeClient) Watch(ctx context.Context, conversationID string, fn func(*api.Message)) error {
	for _, m := range f.stream {
		fn(m)
	}
	if f.watchErr != nil {
		return f.watchErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeClient) RateUser(_ context.Context, req *api.RateRequest) (*api.RateResponse, error) {
	return &api.RateResponse{Rating: &api.Rating{RatedUserID: req.RatedUserID, Rating: req.Rating}, ReputationScore: 4}, nil
}
