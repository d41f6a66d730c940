package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/pricing"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Catalog is the part of catalog.Service the bot uses.
type Catalog interface {
	ListProducts(ctx context.Context) ([]products.Product, error)
	GetProduct(ctx context.Context, id int64) (*products.Product, error)
	ListMaterials(ctx context.Context) ([]materials.Material, error)
	GetMaterial(ctx context.Context, id int64) (*materials.Material, error)
	UpdateMaterial(ctx context.Context, id int64, in materials.Input) error
}

type Pricer interface {
	RecalculateAll(ctx context.Context) (pricing.Result, error)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api       *tgbotapi.BotAPI
	out       sender
	fetch     func(fileID string) ([]byte, error)
	log       *slog.Logger
	adminChat int64
	catalog   Catalog
	pricing   Pricer
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, adminChatID int64, catalog Catalog, pricer Pricer) *Bot {
	b := &Bot{
		api: api, out: api, log: log.With("component", "bot"),
		adminChat: adminChatID, catalog: catalog, pricing: pricer,
	}
	b.fetch = b.downloadTelegramFile
	return b
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd.Message)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if msg.Chat.ID != b.adminChat {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Доступ только для администратора."))
		return
	}
	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg.Chat.ID, msg.Command(), msg.CommandArguments())
	case msg.Document != nil:
		b.handleDocument(ctx, msg.Chat.ID, msg.Document)
	default:
		if cmd, ok := buttonCommands[msg.Text]; ok {
			b.handleCommand(ctx, msg.Chat.ID, cmd, "")
			return
		}
		b.send(tgbotapi.NewMessage(msg.Chat.ID, helpText))
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.out.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

// sendText splits long text so every part fits in one Telegram message.
func (b *Bot) sendText(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageLen) {
		b.send(tgbotapi.NewMessage(chatID, part))
	}
}

// downloadTelegramFile скачивает файл по FileID через Telegram API.
func (b *Bot) downloadTelegramFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
