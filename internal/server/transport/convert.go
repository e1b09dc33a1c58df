package transport

import (
	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/services"
)

func ToItem(it *models.Item) *api.Item {
	urls := it.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return &api.Item{
		ID:          it.ID,
		UserID:      it.UserID,
		Title:       it.Title,
		Description: it.Description,
		Kind:        string(it.Kind),
		Category:    it.Category,
		Type:        it.Type,
		Price:       it.Price,
		Currency:    it.Currency,
		Lat:         it.Lat,
		Lng:         it.Lng,
		AddressHint: it.AddressHint,
		ImageURLs:   urls,
		Status:      string(it.Status),
		ExpiresAt:   it.ExpiresAt,
		ViewsCount:  it.ViewsCount,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func ToNearbyItem(it *models.NearbyItem) *api.Item {
	out := ToItem(&it.Item)
	d := it.DistanceMeters
	out.DistanceMeters = &d
	out.Distance = geo.FormatDistance(d)
	out.OwnerName = it.OwnerName
	return out
}

func ToItems(items []*models.Item) []*api.Item {
	out := make([]*api.Item, 0, len(items))
	for _, it := range items {
		out = append(out, ToItem(it))
	}
	return out
}

func ToNearbyItems(items []*models.NearbyItem) []*api.Item {
	out := make([]*api.Item, 0, len(items))
	for _, it := range items {
		out = append(out, ToNearbyItem(it))
	}
	return out
}

func ToConversations(cs []*models.ConversationSummary) []*api.Conversation {
	out := make([]*api.Conversation, 0, len(cs))
	for _, c := range cs {
		out = append(out, &api.Conversation{
			ID:              c.ID,
			ItemID:          c.ItemID,
			ItemTitle:       c.ItemTitle,
			OtherUserID:     c.OtherUserID,
			OtherUserName:   c.OtherUserName,
			LastMessage:     c.LastMessage,
			LastMessageTime: c.LastMessageTime,
			UnreadCount:     c.UnreadCount,
		})
	}
	return out
}

func ToMessage(m *models.Message) *api.Message {
	return &api.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		MessageType:    m.Type,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

func ToMessages(ms []*models.Message) []*api.Message {
	out := make([]*api.Message, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMessage(m))
	}
	return out
}

func ToProfile(p *models.Profile, displayName string) *api.Profile {
	return &api.Profile{
		ID:                     p.ID,
		Username:               p.Username,
		FullName:               p.FullName,
		DisplayName:            displayName,
		AvatarURL:              p.AvatarURL,
		Phone:                  p.Phone,
		ReputationScore:        p.ReputationScore,
		ReputationLabel:        models.ReputationLabel(p.ReputationScore),
		TotalTransactions:      p.TotalTransactions,
		SuccessfulTransactions: p.SuccessfulTransactions,
		CreatedAt:              p.CreatedAt,
	}
}

func ToRating(r *models.Rating) *api.Rating {
	return &api.Rating{
		ID:              r.ID,
		RatedUserID:     r.RatedUserID,
		RaterUserID:     r.RaterUserID,
		Rating:          r.Rating,
		Comment:         r.Comment,
		TransactionType: r.TransactionType,
		ItemID:          r.ItemID,
		CreatedAt:       r.CreatedAt,
	}
}

func ToPresign(p *services.PresignedUpload) *api.PresignResponse {
	return &api.PresignResponse{
		UploadURL: p.UploadURL,
		PublicURL: p.PublicURL,
		Key:       p.Key,
		ExpiresAt: p.ExpiresAt,
	}
}

func FromCreateItem(r *api.CreateItemRequest) services.CreateItemInput {
	return services.CreateItemInput{
		Title:       r.Title,
		Description: r.Description,
		Kind:        models.Kind(r.Kind),
		Category:    r.Category,
		Type:        r.Type,
		Price:       r.Price,
		Lat:         r.Lat,
		Lng:         r.Lng,
		AddressHint: r.AddressHint,
		ImageURLs:   r.ImageURLs,
		ExpiresAt:   r.ExpiresAt,
	}
}

func FromUpdateProfile(r *api.UpdateProfileRequest) services.ProfileInput {
	return services.ProfileInput{
		Username:  r.Username,
		FullName:  r.FullName,
		AvatarURL: r.AvatarURL,
		Phone:     r.Phone,
	}
}

func FromRate(r *api.RateRequest) services.RatingInput {
	return services.RatingInput{
		RatedUserID:     r.RatedUserID,
		Rating:          r.Rating,
		Comment:         r.Comment,
		TransactionType: r.TransactionType,
		ItemID:          r.ItemID,
	}
}

func toOptions(opts []models.Option) []api.Option {
	out := make([]api.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, api.Option{Value: o.Value, Label: o.Label})
	}
	return out
}

// Catalog lists the categories and types of both listing kinds.
func Catalog() *api.CatalogResponse {
	return &api.CatalogResponse{
		ObjectCategories:  toOptions(models.CategoriesForKind(models.KindObject)),
		ServiceCategories: toOptions(models.CategoriesForKind(models.KindService)),
		ObjectTypes:       toOptions(models.TypesForKind(models.KindObject)),
		ServiceTypes:      toOptions(models.TypesForKind(models.KindService)),
	}
}
