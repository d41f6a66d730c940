package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	btnProducts  = "Товары"
	btnMaterials = "Материалы"
	btnRecalc    = "Пересчитать цены"
	btnExport    = "Выгрузка в Excel"
)

var buttonCommands = map[string]string{
	btnProducts:  "products",
	btnMaterials: "materials",
	btnRecalc:    "recalc",
	btnExport:    "export",
}

// adminReplyKeyboard Нижняя панель для админа
func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnProducts), tgbotapi.NewKeyboardButton(btnMaterials)},
			{tgbotapi.NewKeyboardButton(btnRecalc)},
			{tgbotapi.NewKeyboardButton(btnExport)},
		},
	}
}
