package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/dialog"
)

const scheduleOptionsLabel = "📅 Schedule Options"

// mainMenuKeyboard is the persistent reply keyboard with the single
// entry point into the schedule menus.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(scheduleOptionsLabel),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// inlineKeyboard renders options as inline buttons, one per row, with
// the option token as callback data.
func inlineKeyboard(opts []dialog.Option) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Token),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// replyKeyboard renders a large option set (time slots, durations) as
// a reply keyboard, two buttons per row. Taps arrive back as plain
// text, which the dialog machine validates against the option set.
func replyKeyboard(opts []dialog.Option) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(opts); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(opts[i].Label)}
		if i+1 < len(opts) {
			row = append(row, tgbotapi.NewKeyboardButton(opts[i+1].Label))
		}
		rows = append(rows, row)
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// selectionArrivesAsText reports whether this option set is presented
// as a reply keyboard, meaning the selection comes back as a text
// message rather than a callback. Only self-representing sets (label
// equals token: time slots, durations) can round-trip that way.
func selectionArrivesAsText(opts []dialog.Option) bool {
	if len(opts) < 12 {
		return false
	}
	for _, o := range opts {
		if o.Label != o.Token {
			return false
		}
	}
	return true
}
