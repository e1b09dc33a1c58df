package client

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.LocalSwapClient
	health      healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

func NewLocalSwapClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(c.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallSendMsgSize(api.MaxMessageSize)),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithStreamInterceptor(c.streamAccessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	c.conn = conn
	c.client = api.NewLocalSwapClient(conn)
	c.health = healthpb.NewHealthClient(conn)
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *GRPCClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func withAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, c.token()), method, req, reply, cc, opts...)
}

func (c *GRPCClient) streamAccessTokenInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	return streamer(withAccessToken(ctx, c.token()), desc, cc, method, opts...)
}

// Ping asks the health service whether the server is serving.
func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Catalog(ctx context.Context) (*api.CatalogResponse, error) {
	resp, err := c.client.Catalog(ctx, &api.Empty{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) Nearby(ctx context.Context, center geo.Point, radius int) (*api.ItemsResponse, error) {
	resp, err := c.client.NearbyItems(ctx, &api.NearbyRequest{Lat: center.Lat, Lng: center.Lng, Radius: radius})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) GetItem(ctx context.Context, id string) (*api.Item, error) {
	resp, err := c.client.GetItem(ctx, &api.ItemRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) CreateItem(ctx context.Context, req *api.CreateItemRequest) (*api.Item, error) {
	resp, err := c.client.CreateItem(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) MyItems(ctx context.Context) ([]*api.Item, error) {
	resp, err := c.client.MyItems(ctx, &api.Empty{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Items, nil
}

func (c *GRPCClient) UpdateItemStatus(ctx context.Context, id, status string) error {
	_, err := c.client.UpdateItemStatus(ctx, &api.UpdateStatusRequest{ID: id, Status: status})
	return mapError(err)
}

func (c *GRPCClient) DeleteItem(ctx context.Context, id string) error {
	_, err := c.client.DeleteItem(ctx, &api.ItemRequest{ID: id})
	return mapError(err)
}

func (c *GRPCClient) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	resp, err := c.client.UploadImage(ctx, &api.UploadImageRequest{Filename: filename, ContentType: contentType, Data: data})
	if err != nil {
		return "", mapError(err)
	}
	return resp.URL, nil
}

func (c *GRPCClient) PresignImage(ctx context.Context, filename, contentType string) (*api.PresignResponse, error) {
	resp, err := c.client.PresignImage(ctx, &api.PresignRequest{Filename: filename, ContentType: contentType})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) ListConversations(ctx context.Context) ([]*api.Conversation, error) {
	resp, err := c.client.ListConversations(ctx, &api.Empty{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Conversations, nil
}

func (c *GRPCClient) GetOrCreateConversation(ctx context.Context, itemID string) (string, error) {
	resp, err := c.client.GetOrCreateConversation(ctx, &api.ConversationRequest{ItemID: itemID})
	if err != nil {
		return "", mapError(err)
	}
	return resp.ID, nil
}

func (c *GRPCClient) GetMessages(ctx context.Context, conversationID string) ([]*api.Message, error) {
	resp, err := c.client.GetMessages(ctx, &api.MessagesRequest{ConversationID: conversationID})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Messages, nil
}

func (c *GRPCClient) SendMessage(ctx context.Context, conversationID, content string) (*api.Message, error) {
	resp, err := c.client.SendMessage(ctx, &api.SendMessageRequest{ConversationID: conversationID, Content: content})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) MarkRead(ctx context.Context, conversationID string) (int64, error) {
	resp, err := c.client.MarkRead(ctx, &api.MessagesRequest{ConversationID: conversationID})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Updated, nil
}

func (c *GRPCClient) Watch(ctx context.Context, conversationID string, fn func(*api.Message)) error {
	stream, err := c.client.SubscribeMessages(ctx, &api.MessagesRequest{ConversationID: conversationID})
	if err != nil {
		return mapError(err)
	}
	for {
		m, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return mapError(err)
		}
		fn(m)
	}
}

func (c *GRPCClient) GetProfile(ctx context.Context, userID string) (*api.Profile, error) {
	resp, err := c.client.GetProfile(ctx, &api.ProfileRequest{UserID: userID})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) RateUser(ctx context.Context, req *api.RateRequest) (*api.RateResponse, error) {
	resp, err := c.client.RateUser(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}
