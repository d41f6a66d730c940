package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/export"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Команды:
/products — список товаров
/product <id> — карточка товара
/materials — список материалов
/material <id> — карточка материала
/recalc — пересчитать минимальную стоимость товаров
/export — выгрузка каталога в Excel

Чтобы обновить цены материалов, пришлите выгрузку с исправленной колонкой unit_price.`

func (b *Bot) handleCommand(ctx context.Context, chatID int64, cmd, args string) {
	switch cmd {
	case "start", "help":
		m := tgbotapi.NewMessage(chatID, helpText)
		m.ReplyMarkup = adminReplyKeyboard()
		b.send(m)

	case "products":
		list, err := b.catalog.ListProducts(ctx)
		if err != nil {
			b.fail(chatID, "Ошибка загрузки товаров", err)
			return
		}
		b.sendText(chatID, formatProducts(list))

	case "product":
		id, ok := parseID(args)
		if !ok {
			b.send(tgbotapi.NewMessage(chatID, "Укажите id: /product 12"))
			return
		}
		p, err := b.catalog.GetProduct(ctx, id)
		if err != nil {
			b.fail(chatID, "Ошибка загрузки товара", err)
			return
		}
		if p == nil {
			b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Товар #%d не найден.", id)))
			return
		}
		b.send(tgbotapi.NewMessage(chatID, formatProduct(*p)))

	case "materials":
		list, err := b.catalog.ListMaterials(ctx)
		if err != nil {
			b.fail(chatID, "Ошибка загрузки материалов", err)
			return
		}
		b.sendText(chatID, formatMaterials(list))

	case "material":
		id, ok := parseID(args)
		if !ok {
			b.send(tgbotapi.NewMessage(chatID, "Укажите id: /material 3"))
			return
		}
		m, err := b.catalog.GetMaterial(ctx, id)
		if err != nil {
			b.fail(chatID, "Ошибка загрузки материала", err)
			return
		}
		if m == nil {
			b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Материал #%d не найден.", id)))
			return
		}
		b.send(tgbotapi.NewMessage(chatID, formatMaterial(*m)))

	case "recalc":
		res, err := b.pricing.RecalculateAll(ctx)
		if err != nil {
			b.fail(chatID, "Пересчёт не выполнен, изменения отменены", err)
			return
		}
		b.send(tgbotapi.NewMessage(chatID, formatRecalc(res)))

	case "export":
		b.handleExport(ctx, chatID)

	default:
		b.send(tgbotapi.NewMessage(chatID, helpText))
	}
}

func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	prods, err := b.catalog.ListProducts(ctx)
	if err != nil {
		b.fail(chatID, "Ошибка загрузки товаров", err)
		return
	}
	mats, err := b.catalog.ListMaterials(ctx)
	if err != nil {
		b.fail(chatID, "Ошибка загрузки материалов", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCatalog(&buf, prods, mats); err != nil {
		b.fail(chatID, "Ошибка формирования файла", err)
		return
	}

	name := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("Товаров: %d, материалов: %d", len(prods), len(mats))
	b.send(doc)
}

// handleDocument reads an edited export and applies the unit_price column.
// Each material is updated through the catalog, so invalid prices are rejected
// row by row.
func (b *Bot) handleDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) {
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		b.send(tgbotapi.NewMessage(chatID, "Нужен файл .xlsx из выгрузки каталога."))
		return
	}
	data, err := b.fetch(doc.FileID)
	if err != nil {
		b.fail(chatID, "Не удалось скачать файл", err)
		return
	}
	ups, bad, err := export.ReadMaterialPrices(bytes.NewReader(data))
	if err != nil {
		b.fail(chatID, "Не удалось прочитать Excel-файл", err)
		return
	}

	var rep importReport
	for _, le := range bad {
		rep.problems = append(rep.problems, fmt.Sprintf("строка %d: %s", le.Line, le.Reason))
	}
	for _, up := range ups {
		m, err := b.catalog.GetMaterial(ctx, up.MaterialID)
		if err != nil {
			b.fail(chatID, "Импорт прерван", err)
			return
		}
		if m == nil {
			rep.problems = append(rep.problems, fmt.Sprintf("строка %d: материал #%d не найден", up.Line, up.MaterialID))
			continue
		}
		if m.UnitPrice.Equal(up.UnitPrice) {
			rep.unchanged++
			continue
		}
		in := m.Input()
		in.UnitPrice = up.UnitPrice
		err = b.catalog.UpdateMaterial(ctx, m.ID, in)
		var ve *errs.ValidationError
		switch {
		case err == nil:
			rep.updated++
		case errors.As(err, &ve):
			rep.problems = append(rep.problems, fmt.Sprintf("строка %d: %s", up.Line, ve.Error()))
		default:
			b.fail(chatID, "Импорт прерван", err)
			return
		}
	}
	b.sendText(chatID, rep.String())
}

func (b *Bot) fail(chatID int64, text string, err error) {
	b.log.Error(text, "chat_id", chatID, "err", err)
	b.send(tgbotapi.NewMessage(chatID, text+"."))
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil && id > 0
}
