package grpc

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus converts a service error to a gRPC status, logging the ones
// clients only see as internal.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	_, code, msg, _ := transport.Describe(err)
	if code == codes.Internal {
		s.logger.Error(ctx, "request failed", "method", method, "error", err)
	}
	return status.Error(code, msg)
}

func (s *GRPCServer) userID(ctx context.Context) (string, error) {
	id, ok := transport.UserID(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthorized")
	}
	return id, nil
}

func (s *GRPCServer) Catalog(ctx context.Context, req *api.Empty) (*api.CatalogResponse, error) {
	return transport.Catalog(), nil
}

func (s *GRPCServer) NearbyItems(ctx context.Context, req *api.NearbyRequest) (*api.ItemsResponse, error) {

	items, err := s.services.Items.Nearby(ctx, geo.Point{Lat: req.Lat, Lng: req.Lng}, req.Radius)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodNearbyItems, err)
	}

	return &api.ItemsResponse{
		Items:  transport.ToNearbyItems(items),
		Radius: s.services.Items.EffectiveRadius(req.Radius),
	}, nil
}

func (s *GRPCServer) GetItem(ctx context.Context, req *api.ItemRequest) (*api.Item, error) {

	item, err := s.services.Items.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetItem, err)
	}

	return transport.ToItem(item), nil
}

func (s *GRPCServer) CreateItem(ctx context.Context, req *api.CreateItemRequest) (*api.Item, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Items.Create(ctx, userID, transport.FromCreateItem(req))
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCreateItem, err)
	}

	return transport.ToItem(item), nil
}

func (s *GRPCServer) MyItems(ctx context.Context, req *api.Empty) (*api.ItemsResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Items.ListByOwner(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodMyItems, err)
	}

	return &api.ItemsResponse{Items: transport.ToItems(items)}, nil
}

func (s *GRPCServer) UpdateItemStatus(ctx context.Context, req *api.UpdateStatusRequest) (*api.Empty, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Items.UpdateStatus(ctx, userID, req.ID, models.ItemStatus(req.Status)); err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateItemStatus, err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) DeleteItem(ctx context.Context, req *api.ItemRequest) (*api.Empty, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Items.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteItem, err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) UploadImage(ctx context.Context, req *api.UploadImageRequest) (*api.ImageResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.services.Images.Upload(ctx, userID, req.Filename, req.ContentType, req.Data)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUploadImage, err)
	}

	return &api.ImageResponse{URL: url}, nil
}

func (s *GRPCServer) PresignImage(ctx context.Context, req *api.PresignRequest) (*api.PresignResponse, error) {
	if _, err := s.userID(ctx); err != nil {
		return nil, err
	}

	p, err := s.services.Images.PresignUpload(ctx, req.Filename, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodPresignImage, err)
	}

	return transport.ToPresign(p), nil
}

func (s *GRPCServer) DeleteImage(ctx context.Context, req *api.DeleteImageRequest) (*api.Empty, error) {
	if _, err := s.userID(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Images.Delete(ctx, req.URL); err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteImage, err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) ListConversations(ctx context.Context, req *api.Empty) (*api.ConversationsResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.services.Chat.ListConversations(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListConversations, err)
	}

	return &api.ConversationsResponse{Conversations: transport.ToConversations(list)}, nil
}

func (s *GRPCServer) GetOrCreateConversation(ctx context.Context, req *api.ConversationRequest) (*api.ConversationResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.services.Chat.GetOrCreateConversation(ctx, req.ItemID, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetOrCreateConversation, err)
	}

	return &api.ConversationResponse{ID: id}, nil
}

func (s *GRPCServer) GetMessages(ctx context.Context, req *api.MessagesRequest) (*api.MessagesResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	msgs, err := s.services.Chat.GetMessages(ctx, req.ConversationID, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetMessages, err)
	}

	return &api.MessagesResponse{Messages: transport.ToMessages(msgs)}, nil
}

func (s *GRPCServer) SendMessage(ctx context.Context, req *api.SendMessageRequest) (*api.Message, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	m, err := s.services.Chat.SendMessage(ctx, req.ConversationID, userID, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodSendMessage, err)
	}

	return transport.ToMessage(m), nil
}

func (s *GRPCServer) MarkRead(ctx context.Context, req *api.MessagesRequest) (*api.MarkReadResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Chat.MarkRead(ctx, req.ConversationID, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodMarkRead, err)
	}

	return &api.MarkReadResponse{Updated: n}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.ProfileRequest) (*api.Profile, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if req.UserID != "" {
		userID = req.UserID
	}

	p, err := s.services.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetProfile, err)
	}

	return transport.ToProfile(p, s.services.Profiles.DisplayName(ctx, userID)), nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Profile, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Profiles.Update(ctx, userID, transport.FromUpdateProfile(req))
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateProfile, err)
	}

	return transport.ToProfile(p, s.services.Profiles.DisplayName(ctx, userID)), nil
}

func (s *GRPCServer) RateUser(ctx context.Context, req *api.RateRequest) (*api.RateResponse, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	r, score, err := s.services.Ratings.Rate(ctx, userID, transport.FromRate(req))
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRateUser, err)
	}

	return &api.RateResponse{Rating: transport.ToRating(r), ReputationScore: score}, nil
}

// SubscribeMessages streams new messages of a conversation until the client
// goes away or the server stops.
func (s *GRPCServer) SubscribeMessages(req *api.MessagesRequest, stream grpc.ServerStreamingServer[api.Message]) error {
	ctx := stream.Context()
	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}

	sub, err := s.services.Chat.Subscribe(ctx, req.ConversationID, userID)
	if err != nil {
		return s.toStatus(ctx, api.MethodSubscribeMessages, err)
	}
	defer sub.Close()

	s.logger.Debug(ctx, "subscriber attached", "conversation_id", req.ConversationID, "user_id", userID)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopping:
			return status.Error(codes.Unavailable, "server is shutting down")
		case m, ok := <-sub.C:
			if !ok {
				return nil
			}
			if err := stream.Send(transport.ToMessage(m)); err != nil {
				return err
			}
		}
	}
}
