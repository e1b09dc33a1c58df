package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/conversations"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/items"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/messages"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/ratings"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- items ---

type fakeItems struct {
	byID      map[string]*models.Item
	created   *models.Item
	createErr error
	getErr    error
	viewsErr  error
	box       []*models.NearbyItem
	boxErr    error
	gotBox    geo.Box
	gotCenter geo.Point
	owned     []*models.Item
	statusErr error
	deleteOut *models.Item
	deleteErr error
	views     int
}

func (f *fakeItems) Create(_ context.Context, it *models.Item) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *it
	cp.ID = "item-1"
	f.created = &cp
	return &cp, nil
}

func (f *fakeItems) GetByID(_ context.Context, id string) (*models.Item, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	it, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItems) IncrementViews(context.Context, string) error {
	if f.viewsErr != nil {
		return f.viewsErr
	}
	f.views++
	return nil
}

func (f *fakeItems) ListActiveInBox(_ context.Context, center geo.Point, box geo.Box, _ int) ([]*models.NearbyItem, error) {
	f.gotCenter = center
	f.gotBox = box
	return f.box, f.boxErr
}

func (f *fakeItems) ListByOwner(context.Context, string) ([]*models.Item, error) {
	return f.owned, nil
}

func (f *fakeItems) UpdateStatus(context.Context, string, string, models.ItemStatus) error {
	return f.statusErr
}

func (f *fakeItems) Delete(context.Context, string, string) (*models.Item, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}

// --- conversations ---

type fakeConversations struct {
	byID   map[string]*models.Conversation
	getErr error
	// finds answers successive Find calls; a nil entry means not found.
	finds     []*models.Conversation
	findCalls int
	createOut *models.Conversation
	createErr error
	rows      []*models.ConversationRow
	listErr   error
}

func (f *fakeConversations) Find(context.Context, string, string, string) (*models.Conversation, error) {
	i := f.findCalls
	f.findCalls++
	if i < len(f.finds) && f.finds[i] != nil {
		return f.finds[i], nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeConversations) Create(_ context.Context, c *models.Conversation) (*models.Conversation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	cp := *c
	cp.ID = "conv-new"
	return &cp, nil
}

func (f *fakeConversations) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeConversations) ListForUser(context.Context, string) ([]*models.ConversationRow, error) {
	return f.rows, f.listErr
}

// --- messages ---

type fakeMessages struct {
	list      []*models.Message
	listErr   error
	created   *models.Message
	createErr error
	marked    int64
	markErr   error
}

func (f *fakeMessages) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *m
	cp.ID = "msg-1"
	f.created = &cp
	return &cp, nil
}

func (f *fakeMessages) ListByConversation(context.Context, string) ([]*models.Message, error) {
	return f.list, f.listErr
}

func (f *fakeMessages) MarkRead(context.Context, string, string, time.Time) (int64, error) {
	return f.marked, f.markErr
}

// --- profiles ---

type fakeProfiles struct {
	mu        sync.Mutex
	byID      map[string]*models.Profile
	getErr    error
	getCalls  int
	upserted  *models.Profile
	upsertErr error
	score     float64
	scoreErr  error
}

func (f *fakeProfiles) Get(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *models.Profile) (*models.Profile, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = p
	return p, nil
}

func (f *fakeProfiles) RefreshReputation(context.Context, string) (float64, error) {
	return f.score, f.scoreErr
}

// --- ratings ---

type fakeRatings struct {
	created   *models.Rating
	createErr error
	list      []*models.Rating
}

func (f *fakeRatings) Create(_ context.Context, r *models.Rating) (*models.Rating, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *r
	cp.ID = "rating-1"
	f.created = &cp
	return &cp, nil
}

func (f *fakeRatings) ListForUser(context.Context, string) ([]*models.Rating, error) {
	return f.list, nil
}

// --- manager ---

type fakeRepoManager struct {
	items         *fakeItems
	conversations *fakeConversations
	messages      *fakeMessages
	profiles      *fakeProfiles
	ratings       *fakeRatings
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		items:         &fakeItems{byID: map[string]*models.Item{}},
		conversations: &fakeConversations{byID: map[string]*models.Conversation{}},
		messages:      &fakeMessages{},
		profiles:      &fakeProfiles{byID: map[string]*models.Profile{}},
		ratings:       &fakeRatings{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *fakeRepoManager) Items(dbx.DBTX) items.Repository {
	return m.items
}

func (m *fakeRepoManager) Conversations(dbx.DBTX) conversations.Repository {
	return m.conversations
}

func (m *fakeRepoManager) Messages(dbx.DBTX) messages.Repository {
	return m.messages
}

func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository {
	return m.profiles
}

func (m *fakeRepoManager) Ratings(dbx.DBTX) ratings.Repository {
	return m.ratings
}

// staticNames resolves every id to "name:<id>".
type staticNames struct{}

func (staticNames) DisplayName(_ context.Context, id string) string { return "name:" + id }

type fakeImages struct {
	deleted []string
	err     error
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.err
}
