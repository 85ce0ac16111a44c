// Package telegram adapts Telegram updates to dialog events and dialog
// replies back to messages, keyboards and file uploads. Everything the
// dialog core knows about the chat goes through this boundary.
package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/dialog"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/editor"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/export"
)

// Router wires Telegram updates into the dialog machine.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	machine *dialog.Machine
	editor  *editor.Editor
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, machine *dialog.Machine, ed *editor.Editor) *Router {
	return &Router{bot: bot, log: log, machine: machine, editor: ed}
}

// HandleUpdate routes a single update. Updates are handled one at a
// time by the app loop, which serializes events per process; the
// transport delivers a user's updates in order.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.sendReply(ctx, chatID, r.machine.Start(ctx, chatID), true)
		case text == scheduleOptionsLabel:
			r.sendReply(ctx, chatID, r.machine.Handle(ctx, chatID, dialog.Select(dialog.TokMenu)), false)
		default:
			r.sendReply(ctx, chatID, r.machine.Handle(ctx, chatID, dialog.Text(text)), false)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		chatID := cb.Message.Chat.ID
		_, _ = r.bot.Request(tgbotapi.NewCallback(cb.ID, ""))
		r.sendReply(ctx, chatID, r.machine.Handle(ctx, chatID, dialog.Select(cb.Data)), false)
		return
	}
}

// sendReply renders one dialog reply. withMenu additionally restores
// the persistent reply keyboard (used on /start).
func (r *Router) sendReply(ctx context.Context, chatID int64, reply dialog.Reply, withMenu bool) {
	if reply.IsZero() {
		return
	}

	if reply.Text != "" || len(reply.Options) > 0 {
		text := reply.Text
		if text == "" {
			text = "…"
		}
		msg := tgbotapi.NewMessage(chatID, text)
		switch {
		case len(reply.Options) > 0 && selectionArrivesAsText(reply.Options):
			msg.ReplyMarkup = replyKeyboard(reply.Options)
		case len(reply.Options) > 0:
			msg.ReplyMarkup = inlineKeyboard(reply.Options)
		case withMenu:
			msg.ReplyMarkup = mainMenuKeyboard()
		}
		if _, err := r.bot.Send(msg); err != nil {
			r.log.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
	}

	if reply.Export {
		r.sendExports(ctx, chatID)
	}
}

// sendExports builds the grid once and delivers all three renderings.
func (r *Router) sendExports(ctx context.Context, chatID int64) {
	entries, err := r.editor.List(ctx, chatID, true)
	if err != nil {
		r.log.Error("export list failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, "Jadvalni eksport qilishda xatolik yuz berdi.")
		return
	}
	grid := domain.BuildGrid(entries)

	png, err := export.Image(grid)
	if err != nil {
		r.log.Error("image render failed", zap.Error(err))
	} else {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "schedule.png", Bytes: png})
		photo.Caption = "Jadval rasmi"
		if _, err := r.bot.Send(photo); err != nil {
			r.log.Error("send photo failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
	}

	pdf, err := export.PDF(grid)
	if err != nil {
		r.log.Error("pdf render failed", zap.Error(err))
	} else {
		r.sendDocument(chatID, "schedule.pdf", pdf, "Jadval PDF")
	}

	xlsx, err := export.XLSX(grid)
	if err != nil {
		r.log.Error("xlsx render failed", zap.Error(err))
	} else {
		r.sendDocument(chatID, "schedule.xlsx", xlsx, "Jadval Excel")
	}
}

func (r *Router) sendDocument(chatID int64, name string, data []byte, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := r.bot.Send(doc); err != nil {
		r.log.Error("send document failed", zap.Int64("chatID", chatID), zap.String("name", name), zap.Error(err))
	}
}

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}
