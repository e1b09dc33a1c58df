package httpapi

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/realtime"
	"github.com/dmitrijs2005/localswap/internal/server/services"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
)

type fakeItems struct {
	nearby    []*models.NearbyItem
	gotCenter geo.Point
	item      *models.Item
	err       error
	created   services.CreateItemInput
	status    models.ItemStatus
	deletedBy string
}

func (f *fakeItems) Create(_ context.Context, ownerID string, in services.CreateItemInput) (*models.Item, error) {
	f.created = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Item{ID: "new", UserID: ownerID, Title: in.Title, Kind: in.Kind}, nil
}

func (f *fakeItems) EffectiveRadius(r int) int {
	if r <= 0 {
		return 500
	}
	return r
}

func (f *fakeItems) Nearby(_ context.Context, center geo.Point, _ int) ([]*models.NearbyItem, error) {
	f.gotCenter = center
	return f.nearby, f.err
}

func (f *fakeItems) ListByOwner(context.Context, string) ([]*models.Item, error) {
	if f.item == nil {
		return nil, f.err
	}
	return []*models.Item{f.item}, f.err
}

func (f *fakeItems) Get(context.Context, string) (*models.Item, error) {
	return f.item, f.err
}

func (f *fakeItems) UpdateStatus(_ context.Context, _, _ string, status models.ItemStatus) error {
	f.status = status
	return f.err
}

func (f *fakeItems) Delete(_ context.Context, ownerID, _ string) error {
	f.deletedBy = ownerID
	return f.err
}

type fakeImages struct {
	url      string
	gotName  string
	gotBytes int
	err      error
}

func (f *fakeImages) Upload(_ context.Context, _, filename, _ string, data []byte) (string, error) {
	f.gotName, f.gotBytes = filename, len(data)
	return f.url, f.err
}

func (f *fakeImages) PresignUpload(_ context.Context, filename, _ string) (*services.PresignedUpload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.PresignedUpload{UploadURL: "https://signed/" + filename, PublicURL: f.url, Key: "items/" + filename}, nil
}

func (f *fakeImages) Delete(context.Context, string) error {
	return f.err
}

type fakeChat struct {
	hub      *realtime.Hub
	list     []*models.ConversationSummary
	messages []*models.Message
	convID   string
	marked   int64
	err      error
}

func (f *fakeChat) ListConversations(context.Context, string) ([]*models.ConversationSummary, error) {
	return f.list, f.err
}

func (f *fakeChat) GetOrCreateConversation(context.Context, string, string) (string, error) {
	return f.convID, f.err
}

func (f *fakeChat) GetMessages(context.Context, string, string) ([]*models.Message, error) {
	return f.messages, f.err
}

func (f *fakeChat) SendMessage(_ context.Context, conversationID, senderID, content string) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{ID: "m1", ConversationID: conversationID, SenderID: senderID, Content: content, Type: models.MessageText}, nil
}

func (f *fakeChat) MarkRead(context.Context, string, string) (int64, error) {
	return f.marked, f.err
}

func (f *fakeChat) Subscribe(_ context.Context, conversationID, _ string) (*realtime.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hub.Subscribe(conversationID), nil
}

type fakeProfiles struct {
	gotID string
	err   error
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*models.Profile, error) {
	f.gotID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Profile{ID: userID, ReputationScore: 4.5, TotalTransactions: 2}, nil
}

func (f *fakeProfiles) Update(_ context.Context, userID string, in services.ProfileInput) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Profile{ID: userID, Username: in.Username}, nil
}

func (f *fakeProfiles) DisplayName(_ context.Context, userID string) string {
	return "name:" + userID
}

type fakeRatings struct {
	err error
}

func (f *fakeRatings) Rate(_ context.Context, raterID string, in services.RatingInput) (*models.Rating, float64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return &models.Rating{ID: "r1", RaterUserID: raterID, RatedUserID: in.RatedUserID, Rating: in.Rating}, 4.2, nil
}

type fakes struct {
	items    *fakeItems
	images   *fakeImages
	chat     *fakeChat
	profiles *fakeProfiles
	ratings  *fakeRatings
}

func newFakes() *fakes {
	return &fakes{
		items:    &fakeItems{},
		images:   &fakeImages{url: "http://cdn/items/a.jpg"},
		chat:     &fakeChat{hub: realtime.NewHub(logging.Discard(), 4)},
		profiles: &fakeProfiles{},
		ratings:  &fakeRatings{},
	}
}

func (f *fakes) services() transport.Services {
	return transport.Services{
		Items:    f.items,
		Images:   f.images,
		Chat:     f.chat,
		Profiles: f.profiles,
		Ratings:  f.ratings,
	}
}
