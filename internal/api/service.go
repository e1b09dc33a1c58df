package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "localswap.v1.LocalSwap"

// Method names.
const (
	MethodCatalog                 = "Catalog"
	MethodNearbyItems             = "NearbyItems"
	MethodGetItem                 = "GetItem"
	MethodCreateItem              = "CreateItem"
	MethodMyItems                 = "MyItems"
	MethodUpdateItemStatus        = "UpdateItemStatus"
	MethodDeleteItem              = "DeleteItem"
	MethodUploadImage             = "UploadImage"
	MethodPresignImage            = "PresignImage"
	MethodDeleteImage             = "DeleteImage"
	MethodListConversations       = "ListConversations"
	MethodGetOrCreateConversation = "GetOrCreateConversation"
	MethodGetMessages             = "GetMessages"
	MethodSendMessage             = "SendMessage"
	MethodMarkRead                = "MarkRead"
	MethodGetProfile              = "GetProfile"
	MethodUpdateProfile           = "UpdateProfile"
	MethodRateUser                = "RateUser"
	MethodSubscribeMessages       = "SubscribeMessages"
)

// FullMethod returns the gRPC path of method, e.g. "/localswap.v1.LocalSwap/GetItem".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// LocalSwapServer is implemented by the gRPC transport.
type LocalSwapServer interface {
	Catalog(context.Context, *Empty) (*CatalogResponse, error)
	NearbyItems(context.Context, *NearbyRequest) (*ItemsResponse, error)
	GetItem(context.Context, *ItemRequest) (*Item, error)
	CreateItem(context.Context, *CreateItemRequest) (*Item, error)
	MyItems(context.Context, *Empty) (*ItemsResponse, error)
	UpdateItemStatus(context.Context, *UpdateStatusRequest) (*Empty, error)
	DeleteItem(context.Context, *ItemRequest) (*Empty, error)
	UploadImage(context.Context, *UploadImageRequest) (*ImageResponse, error)
	PresignImage(context.Context, *PresignRequest) (*PresignResponse, error)
	DeleteImage(context.Context, *DeleteImageRequest) (*Empty, error)
	ListConversations(context.Context, *Empty) (*ConversationsResponse, error)
	GetOrCreateConversation(context.Context, *ConversationRequest) (*ConversationResponse, error)
	GetMessages(context.Context, *MessagesRequest) (*MessagesResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*Message, error)
	MarkRead(context.Context, *MessagesRequest) (*MarkReadResponse, error)
	GetProfile(context.Context, *ProfileRequest) (*Profile, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error)
	RateUser(context.Context, *RateRequest) (*RateResponse, error)
	SubscribeMessages(*MessagesRequest, grpc.ServerStreamingServer[Message]) error
}

// unary builds the method descriptor of a request/response call.
func unary[Req, Resp any](name string, call func(LocalSwapServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LocalSwapServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LocalSwapServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func subscribeMessagesHandler(srv any, stream grpc.ServerStream) error {
	in := new(MessagesRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LocalSwapServer).SubscribeMessages(in, &grpc.GenericServerStream[MessagesRequest, Message]{ServerStream: stream})
}

// LocalSwap_ServiceDesc describes the service to grpc.Server.
var LocalSwap_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LocalSwapServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCatalog, LocalSwapServer.Catalog),
		unary(MethodNearbyItems, LocalSwapServer.NearbyItems),
		unary(MethodGetItem, LocalSwapServer.GetItem),
		unary(MethodCreateItem, LocalSwapServer.CreateItem),
		unary(MethodMyItems, LocalSwapServer.MyItems),
		unary(MethodUpdateItemStatus, LocalSwapServer.UpdateItemStatus),
		unary(MethodDeleteItem, LocalSwapServer.DeleteItem),
		unary(MethodUploadImage, LocalSwapServer.UploadImage),
		unary(MethodPresignImage, LocalSwapServer.PresignImage),
		unary(MethodDeleteImage, LocalSwapServer.DeleteImage),
		unary(MethodListConversations, LocalSwapServer.ListConversations),
		unary(MethodGetOrCreateConversation, LocalSwapServer.GetOrCreateConversation),
		unary(MethodGetMessages, LocalSwapServer.GetMessages),
		unary(MethodSendMessage, LocalSwapServer.SendMessage),
		unary(MethodMarkRead, LocalSwapServer.MarkRead),
		unary(MethodGetProfile, LocalSwapServer.GetProfile),
		unary(MethodUpdateProfile, LocalSwapServer.UpdateProfile),
		unary(MethodRateUser, LocalSwapServer.RateUser),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    MethodSubscribeMessages,
			Handler:       subscribeMessagesHandler,
			ServerStreams: true,
		},
	},
	Metadata: "localswap/v1/localswap.json",
}

func RegisterLocalSwapServer(s grpc.ServiceRegistrar, srv LocalSwapServer) {
	s.RegisterService(&LocalSwap_ServiceDesc, srv)
}

// LocalSwapClient is the client side of the service.
type LocalSwapClient interface {
	Catalog(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CatalogResponse, error)
	NearbyItems(ctx context.Context, in *NearbyRequest, opts ...grpc.CallOption) (*ItemsResponse, error)
	GetItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Item, error)
	CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error)
	MyItems(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ItemsResponse, error)
	UpdateItemStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Empty, error)
	UploadImage(ctx context.Context, in *UploadImageRequest, opts ...grpc.CallOption) (*ImageResponse, error)
	PresignImage(ctx context.Context, in *PresignRequest, opts ...grpc.CallOption) (*PresignResponse, error)
	DeleteImage(ctx context.Context, in *DeleteImageRequest, opts ...grpc.CallOption) (*Empty, error)
	ListConversations(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ConversationsResponse, error)
	GetOrCreateConversation(ctx context.Context, in *ConversationRequest, opts ...grpc.CallOption) (*ConversationResponse, error)
	GetMessages(ctx context.Context, in *MessagesRequest, opts ...grpc.CallOption) (*MessagesResponse, error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error)
	MarkRead(ctx context.Context, in *MessagesRequest, opts ...grpc.CallOption) (*MarkReadResponse, error)
	GetProfile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	RateUser(ctx context.Context, in *RateRequest, opts ...grpc.CallOption) (*RateResponse, error)
	SubscribeMessages(ctx context.Context, in *MessagesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Message], error)
}

type localSwapClient struct {
	cc grpc.ClientConnInterface
}

// NewLocalSwapClient returns a client that sends every call with the JSON codec.
func NewLocalSwapClient(cc grpc.ClientConnInterface) LocalSwapClient {
	return &localSwapClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *localSwapClient) Catalog(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CatalogResponse, error) {
	return invoke[CatalogResponse](ctx, c.cc, MethodCatalog, in, opts)
}

func (c *localSwapClient) NearbyItems(ctx context.Context, in *NearbyRequest, opts ...grpc.CallOption) (*ItemsResponse, error) {
	return invoke[ItemsResponse](ctx, c.cc, MethodNearbyItems, in, opts)
}

func (c *localSwapClient) GetItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, MethodGetItem, in, opts)
}

func (c *localSwapClient) CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, MethodCreateItem, in, opts)
}

func (c *localSwapClient) MyItems(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ItemsResponse, error) {
	return invoke[ItemsResponse](ctx, c.cc, MethodMyItems, in, opts)
}

func (c *localSwapClient) UpdateItemStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodUpdateItemStatus, in, opts)
}

func (c *localSwapClient) DeleteItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteItem, in, opts)
}

func (c *localSwapClient) UploadImage(ctx context.Context, in *UploadImageRequest, opts ...grpc.CallOption) (*ImageResponse, error) {
	return invoke[ImageResponse](ctx, c.cc, MethodUploadImage, in, opts)
}

func (c *localSwapClient) PresignImage(ctx context.Context, in *PresignRequest, opts ...grpc.CallOption) (*PresignResponse, error) {
	return invoke[PresignResponse](ctx, c.cc, MethodPresignImage, in, opts)
}

func (c *localSwapClient) DeleteImage(ctx context.Context, in *DeleteImageRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteImage, in, opts)
}

func (c *localSwapClient) ListConversations(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ConversationsResponse, error) {
	return invoke[ConversationsResponse](ctx, c.cc, MethodListConversations, in, opts)
}

func (c *localSwapClient) GetOrCreateConversation(ctx context.Context, in *ConversationRequest, opts ...grpc.CallOption) (*ConversationResponse, error) {
	return invoke[ConversationResponse](ctx, c.cc, MethodGetOrCreateConversation, in, opts)
}

func (c *localSwapClient) GetMessages(ctx context.Context, in *MessagesRequest, opts ...grpc.CallOption) (*MessagesResponse, error) {
	return invoke[MessagesResponse](ctx, c.cc, MethodGetMessages, in, opts)
}

func (c *localSwapClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*Message, error) {
	return invoke[Message](ctx, c.cc, MethodSendMessage, in, opts)
}

func (c *localSwapClient) MarkRead(ctx context.Context, in *MessagesRequest, opts ...grpc.CallOption) (*MarkReadResponse, error) {
	return invoke[MarkReadResponse](ctx, c.cc, MethodMarkRead, in, opts)
}

func (c *localSwapClient) GetProfile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *localSwapClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *localSwapClient) RateUser(ctx context.Context, in *RateRequest, opts ...grpc.CallOption) (*RateResponse, error) {
	return invoke[RateResponse](ctx, c.cc, MethodRateUser, in, opts)
}

func (c *localSwapClient) SubscribeMessages(ctx context.Context, in *MessagesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Message], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &LocalSwap_ServiceDesc.Streams[0], FullMethod(MethodSubscribeMessages), opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[MessagesRequest, Message]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
