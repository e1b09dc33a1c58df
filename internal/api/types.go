package api

import "time"

type Empty struct{}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CatalogResponse lists the categories and listing types of each kind.
type CatalogResponse struct {
	ObjectCategories  []Option `json:"object_categories"`
	ServiceCategories []Option `json:"service_categories"`
	ObjectTypes       []Option `json:"object_types"`
	ServiceTypes      []Option `json:"service_types"`
}

type Item struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Kind        string     `json:"kind"`
	Category    string     `json:"category"`
	Type        string     `json:"type"`
	Price       *float64   `json:"price,omitempty"`
	Currency    string     `json:"currency"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	AddressHint string     `json:"address_hint,omitempty"`
	ImageURLs   []string   `json:"image_urls"`
	Status      string     `json:"status"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ViewsCount  int64      `json:"views_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Set on search results only.
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	Distance       string   `json:"distance,omitempty"`
	OwnerName      string   `json:"owner_name,omitempty"`
}

type ItemsResponse struct {
	Items  []*Item `json:"items"`
	Radius int     `json:"radius,omitempty"`
}

type NearbyRequest struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius int     `json:"radius"`
}

type ItemRequest struct {
	ID string `json:"id"`
}

type CreateItemRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Kind        string     `json:"kind"`
	Category    string     `json:"category"`
	Type        string     `json:"type"`
	Price       *float64   `json:"price,omitempty"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	AddressHint string     `json:"address_hint,omitempty"`
	ImageURLs   []string   `json:"image_urls,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type UpdateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UploadImageRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type ImageResponse struct {
	URL string `json:"url"`
}

type PresignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type PresignResponse struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DeleteImageRequest struct {
	URL string `json:"url"`
}

type Conversation struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	ItemTitle       string    `json:"item_title"`
	OtherUserID     string    `json:"other_user_id"`
	OtherUserName   string    `json:"other_user_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

type ConversationsResponse struct {
	Conversations []*Conversation `json:"conversations"`
}

type ConversationRequest struct {
	ItemID string `json:"item_id"`
}

type ConversationResponse struct {
	ID string `json:"id"`
}

type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Content        string     `json:"content"`
	MessageType    string     `json:"message_type"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type MessagesRequest struct {
	ConversationID string `json:"conversation_id"`
}

type MessagesResponse struct {
	Messages []*Message `json:"messages"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type Profile struct {
	ID                     string    `json:"id"`
	Username               string    `json:"username,omitempty"`
	FullName               string    `json:"full_name,omitempty"`
	DisplayName            string    `json:"display_name"`
	AvatarURL              string    `json:"avatar_url,omitempty"`
	Phone                  string    `json:"phone,omitempty"`
	ReputationScore        float64   `json:"reputation_score"`
	ReputationLabel        string    `json:"reputation_label"`
	TotalTransactions      int       `json:"total_transactions"`
	SuccessfulTransactions int       `json:"successful_transactions"`
	CreatedAt              time.Time `json:"created_at,omitzero"`
}

// ProfileRequest selects a profile; an empty UserID means the caller's own.
type ProfileRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Phone     string `json:"phone"`
}

type Rating struct {
	ID              string    `json:"id"`
	RatedUserID     string    `json:"rated_user_id"`
	RaterUserID     string    `json:"rater_user_id"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment,omitempty"`
	TransactionType string    `json:"transaction_type"`
	ItemID          string    `json:"item_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type RateRequest struct {
	RatedUserID     string `json:"rated_user_id"`
	Rating          int    `json:"rating"`
	Comment         string `json:"comment,omitempty"`
	TransactionType string `json:"transaction_type"`
	ItemID          string `json:"item_id,omitempty"`
}

type RateResponse struct {
	Rating          *Rating `json:"rating"`
	ReputationScore float64 `json:"reputation_score"`
}

type TestTokenRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ErrorResponse is the body of every failed HTTP call.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
