package bot

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ozanguner/hybrid-recommender/internal/models"
	"github.com/ozanguner/hybrid-recommender/internal/recommender"
)

// Bot is the Telegram shopping surface. Any plain message is treated as a
// product id to add to the cart; commands manage the cart itself. Each
// chat owns its own cart, the engine context is shared and read-only.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *recommender.Engine
	logger *zap.Logger

	mu    sync.Mutex
	carts map[int64]*models.Cart
}

func New(token string, engine *recommender.Engine, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:    api,
		engine: engine,
		logger: logger,
		carts:  make(map[int64]*models.Cart),
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	productID := strings.TrimSpace(message.Text)
	if productID == "" {
		return
	}

	b.handleAddProduct(message.Chat.ID, productID)
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "cart":
		b.handleViewCart(message)
	case "clear":
		b.handleClearCart(message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Welcome! 🛒
Send me a product code and I'll add it to your cart and suggest ten
products you might also like, based on what other shoppers bought.

Use /help to see all available commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start a shopping session
/help - Show this help message
/cart - Show your cart
/clear - Empty your cart

Send any product code as a plain message to add it to your cart and get
recommendations.`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleAddProduct(chatID int64, productID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cart := b.cart(chatID)
	recs, err := b.engine.Recommend(productID, cart)
	switch {
	case errors.Is(err, recommender.ErrInvalidProduct):
		b.sendMessage(chatID, "I don't know that product code. Please check it and try again.")
		return
	case errors.Is(err, recommender.ErrInsufficientCandidates):
		b.logger.Warn("Not enough candidates to recommend",
			zap.String("product_id", productID),
			zap.String("session_id", cart.SessionID))
		b.sendMessage(chatID, fmt.Sprintf("Added to cart: %s\nNo recommendations available for this product yet.",
			b.engine.ProductLabel(productID)))
		return
	case err != nil:
		b.logger.Error("Recommendation failed",
			zap.Error(err),
			zap.String("product_id", productID),
			zap.String("session_id", cart.SessionID))
		b.sendErrorMessage(chatID, "Sorry, something went wrong. Please try again.")
		return
	}

	var reply strings.Builder
	fmt.Fprintf(&reply, "Added to cart: %s\n\nYou might also like:\n", b.engine.ProductLabel(productID))
	for i, rec := range recs {
		fmt.Fprintf(&reply, "%d. %s\n", i+1, b.engine.ProductLabel(rec))
	}
	b.sendMessage(chatID, reply.String())
}

func (b *Bot) handleViewCart(message *tgbotapi.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cart := b.cart(message.Chat.ID)
	items := cart.View()
	if len(items) == 0 {
		b.sendMessage(message.Chat.ID, "Your cart is empty.")
		return
	}

	var reply strings.Builder
	reply.WriteString("Your cart:\n")
	for i, item := range items {
		fmt.Fprintf(&reply, "%d. %s\n", i+1, b.engine.ProductLabel(item))
	}
	b.sendMessage(message.Chat.ID, reply.String())
}

func (b *Bot) handleClearCart(message *tgbotapi.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cart(message.Chat.ID).Clear()
	b.sendMessage(message.Chat.ID, "Your cart has been cleared.")
}

// cart returns the chat's cart, creating one on first use. Callers must
// hold b.mu.
func (b *Bot) cart(chatID int64) *models.Cart {
	cart, ok := b.carts[chatID]
	if !ok {
		cart = models.NewCart(uuid.New().String())
		b.carts[chatID] = cart
		b.logger.Info("Started shopping session",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", cart.SessionID))
	}
	return cart
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.sendMessage(chatID, "❌ "+text)
}
