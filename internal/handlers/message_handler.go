package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// MessageHandler handles direct messages and the conversation list.
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.GetMessages)
	g.POST("/messages", h.SendMessage)
	g.PATCH("/messages/:id/read", h.MarkRead)
}

// conversationGroup is one correspondent's slot built during the grouping
// scan, before profiles are attached.
type conversationGroup struct {
	PartnerID   uint
	LastMessage models.Message
	UnreadCount int
}

// groupConversations folds a newest-first message log into one group per
// correspondent. The first message seen for a correspondent is the latest
// exchanged with them; unread counts cover messages they sent that the
// viewer has not read.
func groupConversations(userID uint, messages []models.Message) []conversationGroup {
	groups := make([]conversationGroup, 0)
	index := make(map[uint]int)

	for _, msg := range messages {
		partnerID := msg.ToUserID
		if msg.ToUserID == userID {
			partnerID = msg.FromUserID
		}

		i, ok := index[partnerID]
		if !ok {
			i = len(groups)
			index[partnerID] = i
			groups = append(groups, conversationGroup{
				PartnerID:   partnerID,
				LastMessage: msg,
			})
		}

		if msg.FromUserID == partnerID && msg.ToUserID == userID && !msg.Read {
			groups[i].UnreadCount++
		}
	}
	return groups
}

// GetMessages returns either the bilateral thread with ?with_user_id= or the
// grouped conversation list.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	if withParam := c.QueryParam("with_user_id"); withParam != "" {
		return h.getThread(c, actorID, withParam)
	}

	messages, err := h.messageRepository.GetMessagesForUser(actorID)
	if err != nil {
		return err
	}

	groups := groupConversations(actorID, messages)

	partnerIDs := make([]uint, len(groups))
	for i, g := range groups {
		partnerIDs[i] = g.PartnerID
	}
	partners, err := h.userRepository.GetUsersByIDs(partnerIDs)
	if err != nil {
		return err
	}
	partnerMap := make(map[uint]models.UserCompact, len(partners))
	for i := range partners {
		partnerMap[partners[i].ID] = partners[i].ToCompact()
	}

	summaries := make([]models.ConversationSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, models.ConversationSummary{
			Partner:     partnerMap[g.PartnerID],
			LastMessage: g.LastMessage,
			UnreadCount: g.UnreadCount,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"conversations": summaries})
}

func (h *MessageHandler) getThread(c echo.Context, actorID uint, withParam string) error {
	partnerID, err := strconv.ParseUint(withParam, 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid with_user_id")
	}

	partner, err := h.userRepository.GetUserByID(uint(partnerID))
	if err != nil {
		return err
	}

	messages, err := h.messageRepository.GetThread(actorID, uint(partnerID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"partner":  partner.ToCompact(),
		"messages": messages,
	})
}

// SendMessage creates a message to another user. Messaging yourself is
// rejected.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(req.ToUserID); err != nil {
		return err
	}
	if req.ToUserID == actorID {
		return apperrors.New(apperrors.Forbidden, "cannot send a message to yourself")
	}

	message := &models.Message{
		FromUserID: actorID,
		ToUserID:   req.ToUserID,
		Content:    req.Content,
	}
	if err := h.messageRepository.CreateMessage(message); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, message)
}

// MarkRead flags a received message as read. Only the recipient may do this;
// the sender gets NotFound.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	actorID := currentUserID(c)
	if actorID == 0 {
		return apperrors.New(apperrors.Unauthorized, "user not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message ID")
	}

	message, err := h.messageRepository.MarkRead(uint(id), actorID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, message)
}
