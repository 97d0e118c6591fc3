package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const (
	buttonAlerts    = "🚨 Alerts"
	buttonRatios    = "🧮 Ratios"
	buttonChecklist = "📋 Checklist"
	buttonSwitchOrg = "🏢 Switch organization"
)

func createMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonAlerts),
			tgbotapi.NewKeyboardButton(buttonRatios),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonChecklist),
			tgbotapi.NewKeyboardButton(buttonSwitchOrg),
		),
	)
}
