package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/auth"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/services"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *HTTPServer) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) issueTestToken(c *gin.Context) {
	var req api.TestTokenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.badRequest(c, "invalid request body")
			return
		}
	}
	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}

	token, err := auth.GenerateToken(req.UserID, req.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "test token issued", "user_id", req.UserID)
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, ExpiresAt: time.Now().Add(s.tokenValidity)})
}

func (s *HTTPServer) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, transport.Catalog())
}

type nearbyQuery struct {
	Lat    *float64 `form:"lat" binding:"required"`
	Lng    *float64 `form:"lng" binding:"required"`
	Radius int      `form:"radius"`
}

func (s *HTTPServer) nearbyItems(c *gin.Context) {
	var q nearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, "lat e lng sono obbligatori")
		return
	}

	items, err := s.services.Items.Nearby(c.Request.Context(), geo.Point{Lat: *q.Lat, Lng: *q.Lng}, q.Radius)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.ItemsResponse{
		Items:  transport.ToNearbyItems(items),
		Radius: s.services.Items.EffectiveRadius(q.Radius),
	})
}

func (s *HTTPServer) getItem(c *gin.Context) {
	item, err := s.services.Items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transport.ToItem(item))
}

func (s *HTTPServer) createItem(c *gin.Context) {
	var req api.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	item, err := s.services.Items.Create(c.Request.Context(), currentUser(c), transport.FromCreateItem(&req))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, transport.ToItem(item))
}

func (s *HTTPServer) myItems(c *gin.Context) {
	items, err := s.services.Items.ListByOwner(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ItemsResponse{Items: transport.ToItems(items)})
}

type statusBody struct {
	Status string `json:"status" binding:"required"`
}

func (s *HTTPServer) updateItemStatus(c *gin.Context) {
	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, "status richiesto")
		return
	}

	err := s.services.Items.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("id"), models.ItemStatus(body.Status))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) deleteItem(c *gin.Context) {
	if err := s.services.Items.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadImage accepts a multipart form with the photo in the "image" field.
func (s *HTTPServer) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		s.badRequest(c, "campo image mancante")
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer f.Close()

	// one byte over the limit is enough for the service to reject it
	data, err := io.ReadAll(io.LimitReader(f, services.MaxImageSize+1))
	if err != nil {
		s.fail(c, err)
		return
	}

	url, err := s.services.Images.Upload(c.Request.Context(), currentUser(c), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.ImageResponse{URL: url})
}

func (s *HTTPServer) presignImage(c *gin.Context) {
	var req api.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	p, err := s.services.Images.PresignUpload(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transport.ToPresign(p))
}

func (s *HTTPServer) deleteImage(c *gin.Context) {
	var req api.DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		s.badRequest(c, "url richiesto")
		return
	}

	if err := s.services.Images.Delete(c.Request.Context(), req.URL); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) listConversations(c *gin.Context) {
	list, err := s.services.Chat.ListConversations(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ConversationsResponse{Conversations: transport.ToConversations(list)})
}

func (s *HTTPServer) getOrCreateConversation(c *gin.Context) {
	var req api.ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		s.badRequest(c, "item_id richiesto")
		return
	}

	id, err := s.services.Chat.GetOrCreateConversation(c.Request.Context(), req.ItemID, currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ConversationResponse{ID: id})
}

func (s *HTTPServer) getMessages(c *gin.Context) {
	msgs, err := s.services.Chat.GetMessages(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessagesResponse{Messages: transport.ToMessages(msgs)})
}

type messageBody struct {
	Content string `json:"content"`
}

func (s *HTTPServer) sendMessage(c *gin.Context) {
	var body messageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	m, err := s.services.Chat.SendMessage(c.Request.Context(), c.Param("id"), currentUser(c), body.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, transport.ToMessage(m))
}

func (s *HTTPServer) markRead(c *gin.Context) {
	n, err := s.services.Chat.MarkRead(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MarkReadResponse{Updated: n})
}

// getProfile serves both the caller's profile and /profiles/:id.
func (s *HTTPServer) getProfile(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		userID = currentUser(c)
	}

	p, err := s.services.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transport.ToProfile(p, s.services.Profiles.DisplayName(c.Request.Context(), userID)))
}

func (s *HTTPServer) updateProfile(c *gin.Context) {
	var req api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	userID := currentUser(c)
	p, err := s.services.Profiles.Update(c.Request.Context(), userID, transport.FromUpdateProfile(&req))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transport.ToProfile(p, s.services.Profiles.DisplayName(c.Request.Context(), userID)))
}

func (s *HTTPServer) rateUser(c *gin.Context) {
	var req api.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body")
		return
	}

	r, score, err := s.services.Ratings.Rate(c.Request.Context(), currentUser(c), transport.FromRate(&req))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.RateResponse{Rating: transport.ToRating(r), ReputationScore: score})
}
