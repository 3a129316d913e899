package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhosasa/Real-State/internal/models"
)

// IChatService is the rule-based assistant. It matches keywords, builds a
// filter set and calls the query facade; it performs no language
// understanding beyond that.
type IChatService interface {
	ProcessMessage(ctx context.Context, text string) ([]models.ChatMessage, error)
}

// chatService implements IChatService on top of the property facade.
type chatService struct {
	properties IPropertyService
}

// NewChatService creates a new ChatService.
func NewChatService(properties IPropertyService) IChatService {
	return &chatService{properties: properties}
}

// chatReplyLimit caps how many listings a single reply carries.
const chatReplyLimit = 3

var frustrationKeywords = []string{
	"frustrated", "annoyed", "angry", "urgent help", "not working",
	"problem", "error", "bad", "terrible", "horrible", "useless",
}

var searchKeywords = []string{
	"looking for", "i want", "i need", "searching", "find me", "show me",
}

var bedroomPattern = regexp.MustCompile(`(?i)(\d+)\s*(bed|bedroom|room)`)

var maxPricePattern = regexp.MustCompile(`(?i)(?:under|below|up to|max)\s*\$?\s*([\d,]+)`)

// knownCities are the markets the assistant recognizes in free text.
var knownCities = []string{"new york", "los angeles", "chicago", "miami", "san francisco"}

func botMessage(text string, msgType models.ChatMessageType, data []models.Property) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    models.ChatSenderBot,
		Timestamp: time.Now().UTC(),
		Type:      msgType,
		Data:      data,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ProcessMessage produces the bot's replies to one user message.
func (s *chatService) ProcessMessage(ctx context.Context, text string) ([]models.ChatMessage, error) {
	lower := strings.ToLower(text)

	if containsAny(lower, frustrationKeywords) {
		return []models.ChatMessage{botMessage(
			"I understand your frustration. Let me connect you with one of our specialized agents who can help you personally. Meanwhile, can you tell me what kind of property you are looking for?",
			models.ChatMessageAction, nil,
		)}, nil
	}

	if containsAny(lower, searchKeywords) {
		filters := extractFilters(text, lower)
		properties, err := s.properties.GetProperties(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("chat search failed: %w", err)
		}

		if len(properties) == 0 {
			return []models.ChatMessage{botMessage(
				"I could not find properties matching those exact criteria. Try widening the price range or looking at nearby zones.",
				models.ChatMessageText, nil,
			)}, nil
		}

		if len(properties) > chatReplyLimit {
			properties = properties[:chatReplyLimit]
		}
		return []models.ChatMessage{
			botMessage(
				fmt.Sprintf("Great news! I found %d properties that might interest you. Here are some options:", len(properties)),
				models.ChatMessageText, nil,
			),
			botMessage("", models.ChatMessageProperties, properties),
		}, nil
	}

	if strings.Contains(lower, "price") || strings.Contains(lower, "market") {
		return []models.ChatMessage{botMessage(
			"Prices vary a lot by city and zone. Tell me where you want to live and your budget, and I will show you what is available.",
			models.ChatMessageText, nil,
		)}, nil
	}

	if strings.Contains(lower, "hello") || strings.Contains(lower, "hi ") || lower == "hi" {
		return []models.ChatMessage{botMessage(
			"Hello! I am your real-estate assistant. I can help you find properties, answer market questions or give you tips. What are you looking for?",
			models.ChatMessageText, nil,
		)}, nil
	}

	return []models.ChatMessage{botMessage(
		"I can help you search for properties. Try something like: \"I am looking for a 2 bedroom apartment for rent in New York under $5000\".",
		models.ChatMessageText, nil,
	)}, nil
}

// extractFilters mines the message for the filter dimensions the assistant
// understands: property type, operation, bedrooms, city and a price cap.
func extractFilters(original, lower string) models.SearchFilters {
	var filters models.SearchFilters

	switch {
	case strings.Contains(lower, "house"):
		t := models.PropertyTypeHouse
		filters.Type = &t
	case strings.Contains(lower, "apartment") || strings.Contains(lower, "flat") || strings.Contains(lower, "condo"):
		t := models.PropertyTypeApartment
		filters.Type = &t
	case strings.Contains(lower, "office"):
		t := models.PropertyTypeOffice
		filters.Type = &t
	case strings.Contains(lower, "land") || strings.Contains(lower, "lot"):
		t := models.PropertyTypeLand
		filters.Type = &t
	}

	switch {
	case strings.Contains(lower, "buy") || strings.Contains(lower, "sale") || strings.Contains(lower, "purchase"):
		op := models.OperationSale
		filters.Operation = &op
	case strings.Contains(lower, "rent"):
		op := models.OperationRent
		filters.Operation = &op
	}

	if m := bedroomPattern.FindStringSubmatch(original); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.MinBedrooms = &n
		}
	}

	if m := maxPricePattern.FindStringSubmatch(original); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &v
		}
	}

	for _, city := range knownCities {
		if strings.Contains(lower, city) {
			c := city
			filters.City = &c
			break
		}
	}

	return filters
}
