// Package dialog holds the per-user conversation state machine that
// drives the add/edit/delete activity flows. The machine consumes
// abstract events and answers with transport-agnostic replies; only a
// terminal transition ever mutates persistent state, via the editor.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/editor"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/prayer"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/store"
)

// Selection tokens. Tokens that target one entry carry its id.
const (
	TokEligibleYes = "ELIGIBLE_YES"
	TokEligibleNo  = "ELIGIBLE_NO"
	TokMenu        = "SCHEDULE_MENU"
	TokBuild       = "BUILD_SCHEDULE"
	TokEditMenu    = "EDIT_SCHEDULE"
	TokDeleteAll   = "DELETE_SCHEDULE"
	TokExport      = "EXPORT_SCHEDULE"
	TokAdd         = "ADD_ACTIVITY"
	TokEditList    = "EDIT_ACTIVITY"
	TokDeleteList  = "DELETE_ACTIVITY"
	TokBack        = "GO_BACK"
	TokFreqDone    = "FREQ_DONE"

	TokFieldTime      = "EDIT_START_TIME"
	TokFieldDuration  = "EDIT_DURATION"
	TokFieldName      = "EDIT_NAME"
	TokFieldFrequency = "EDIT_FREQUENCY"

	prefixFreq   = "FREQ_"
	prefixShow   = "SHOW_ACT_"
	prefixEdit   = "EDIT_ACT_"
	prefixDelete = "DELETE_ACT_"
)

func freqToken(day string) string { return prefixFreq + strings.ToUpper(day) }
func showToken(id int64) string   { return prefixShow + strconv.FormatInt(id, 10) }
func editToken(id int64) string   { return prefixEdit + strconv.FormatInt(id, 10) }
func deleteToken(id int64) string { return prefixDelete + strconv.FormatInt(id, 10) }

func parseIDToken(token, prefix string) (int64, bool) {
	if !strings.HasPrefix(token, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(token, prefix), 10, 64)
	return id, err == nil
}

// Machine routes events against per-user dialog state.
type Machine struct {
	repo     store.Repo
	editor   *editor.Editor
	source   prayer.Source
	sessions *Sessions
	log      *zap.Logger
}

func NewMachine(repo store.Repo, ed *editor.Editor, src prayer.Source, sessions *Sessions, log *zap.Logger) *Machine {
	return &Machine{repo: repo, editor: ed, source: src, sessions: sessions, log: log}
}

// Start handles the first interaction. Unknown users get the
// eligibility question; known users get the menu or the refusal,
// depending on the recorded flag.
func (m *Machine) Start(ctx context.Context, chatID int64) Reply {
	u, err := m.repo.GetUser(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.sessions.begin(chatID, StateAwaitEligibility)
			return Reply{Text: textAskEligibility, Options: eligibilityOptions()}
		}
		m.log.Error("get user failed", zap.Int64("chatID", chatID), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	if !u.IsEligible {
		return Reply{Text: textNotEligible}
	}
	return Reply{Text: textWelcomeBack, Options: menuOptions()}
}

// Handle advances the machine by one event and returns what to say.
func (m *Machine) Handle(ctx context.Context, chatID int64, ev Event) Reply {
	if ev.IsText {
		return m.handleText(ctx, chatID, strings.TrimSpace(ev.Text))
	}
	return m.handleSelect(ctx, chatID, ev.Token)
}

// --- Selection events ---

func (m *Machine) handleSelect(ctx context.Context, chatID int64, token string) Reply {
	switch token {
	case TokEligibleYes:
		return m.recordEligibility(ctx, chatID, true)
	case TokEligibleNo:
		return m.recordEligibility(ctx, chatID, false)
	case TokMenu, TokBack:
		m.sessions.clear(chatID)
		return m.gated(ctx, chatID, func() Reply {
			return Reply{Text: textChooseOption, Options: menuOptions()}
		})
	case TokBuild:
		m.sessions.clear(chatID)
		return m.gated(ctx, chatID, func() Reply {
			return m.buildSchedule(ctx, chatID)
		})
	case TokEditMenu:
		m.sessions.clear(chatID)
		return m.gated(ctx, chatID, func() Reply {
			return m.editMenu(ctx, chatID)
		})
	case TokDeleteAll:
		m.sessions.clear(chatID)
		return m.gated(ctx, chatID, func() Reply {
			if err := m.editor.DeleteAll(ctx, chatID); err != nil {
				m.log.Error("delete schedule failed", zap.Int64("chatID", chatID), zap.Error(err))
				return Reply{Text: textGenericError}
			}
			return Reply{Text: textDeleted, Options: menuOptions()}
		})
	case TokExport:
		m.sessions.clear(chatID)
		return m.gated(ctx, chatID, func() Reply {
			return m.export(ctx, chatID)
		})
	case TokAdd:
		m.sessions.begin(chatID, StateAwaitTime)
		return Reply{Text: textAskTime, Options: timeOptions()}
	case TokEditList:
		m.sessions.clear(chatID)
		return m.listEntries(ctx, chatID, showToken, textPickActivity)
	case TokDeleteList:
		m.sessions.clear(chatID)
		return m.listEntries(ctx, chatID, deleteToken, textPickActivity)
	case TokFreqDone:
		return m.finishFrequency(ctx, chatID)
	case TokFieldTime, TokFieldDuration, TokFieldName, TokFieldFrequency:
		return m.chooseField(chatID, token)
	}

	if day := domain.CanonWeekday(strings.TrimPrefix(token, prefixFreq)); day != "" && strings.HasPrefix(token, prefixFreq) {
		return m.accumulateWeekday(chatID, day)
	}
	if id, ok := parseIDToken(token, prefixShow); ok {
		return m.showEntry(ctx, chatID, id)
	}
	if id, ok := parseIDToken(token, prefixEdit); ok {
		return m.beginEdit(ctx, chatID, id)
	}
	if id, ok := parseIDToken(token, prefixDelete); ok {
		return m.deleteEntry(ctx, chatID, id)
	}

	// Unknown token: ignore silently, matching the transport router.
	return Reply{}
}

func (m *Machine) recordEligibility(ctx context.Context, chatID int64, eligible bool) Reply {
	m.sessions.clear(chatID)
	u := &domain.User{ChatID: chatID, IsEligible: eligible, CreatedAt: time.Now().UTC()}
	if err := m.repo.CreateUser(ctx, u); err != nil {
		m.log.Error("create user failed", zap.Int64("chatID", chatID), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	if !eligible {
		return Reply{Text: textNotEligible}
	}
	return Reply{Text: textEligibleNext, Options: menuOptions()}
}

// gated runs next only for known eligible users.
func (m *Machine) gated(ctx context.Context, chatID int64, next func() Reply) Reply {
	u, err := m.repo.GetUser(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.sessions.begin(chatID, StateAwaitEligibility)
			return Reply{Text: textAskEligibility, Options: eligibilityOptions()}
		}
		m.log.Error("get user failed", zap.Int64("chatID", chatID), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	if !u.IsEligible {
		return Reply{Text: textNotEligible}
	}
	return next()
}

func (m *Machine) buildSchedule(ctx context.Context, chatID int64) Reply {
	days, err := m.source.MonthlyTimes(ctx)
	if err != nil {
		m.log.Warn("prayer fetch failed", zap.Error(err))
		days = nil
	}
	if len(days) == 0 {
		return Reply{Text: textFetchFailed}
	}
	entries := prayer.Entries(chatID, days)
	if err := m.editor.CommitImport(ctx, chatID, entries); err != nil {
		m.log.Error("import failed", zap.Int64("chatID", chatID), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	return Reply{Text: textBuilt, Options: menuOptions()}
}

func (m *Machine) editMenu(ctx context.Context, chatID int64) Reply {
	entries, err := m.editor.List(ctx, chatID, false)
	if err != nil {
		m.log.Error("list failed", zap.Int64("chatID", chatID), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	if len(entries) == 0 {
		return Reply{Text: textNoSchedule, Options: menuOptions()}
	}
	return Reply{Text: textChooseEdit, Options: editMenuOptions()}
}

func (m *Machine) export(ctx context.Context, chatID int64) Reply {
	entries, err := m.editor.List(ctx, chatID, true)
	if err != nil {
		m.log.Error("list failed", zap.Int64("chatID", chatID), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	if len(entries) == 0 {
		return Reply{Text: textEmptySchedule}
	}
	return Reply{Text: textExporting, Export: true}
}

func (m *Machine) listEntries(ctx context.Context, chatID int64, token func(int64) string, prompt string) Reply {
	entries, err := m.editor.List(ctx, chatID, false)
	if err != nil {
		m.log.Error("list failed", zap.Int64("chatID", chatID), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	if len(entries) == 0 {
		return Reply{Text: textNoActivities, Options: menuOptions()}
	}
	opts := make([]Option, 0, len(entries)+1)
	for _, e := range entries {
		opts = append(opts, Option{
			Label: fmt.Sprintf("%s at %s", e.Activity, e.Time),
			Token: token(e.ID),
		})
	}
	opts = append(opts, Option{Label: "Go Back", Token: TokEditMenu})
	return Reply{Text: prompt, Options: opts}
}

func (m *Machine) showEntry(ctx context.Context, chatID int64, id int64) Reply {
	e, err := m.editor.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Reply{Text: textEntryMissing, Options: afterEditOptions()}
		}
		m.log.Error("get entry failed", zap.Int64("id", id), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	return Reply{Text: textEntryDetails(e), Options: entryDetailOptions(id)}
}

func (m *Machine) beginEdit(ctx context.Context, chatID int64, id int64) Reply {
	if _, err := m.editor.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Reply{Text: textEntryMissing, Options: afterEditOptions()}
		}
		m.log.Error("get entry failed", zap.Int64("id", id), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	sess := m.sessions.begin(chatID, StateAwaitFieldChoice)
	sess.entryID = id
	return Reply{Text: textAskField, Options: fieldOptions(id)}
}

func (m *Machine) deleteEntry(ctx context.Context, chatID int64, id int64) Reply {
	// Deleting an already-deleted id succeeds quietly.
	if err := m.editor.DeleteEntry(ctx, id); err != nil {
		m.log.Error("delete entry failed", zap.Int64("id", id), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	return Reply{Text: textEntryDeleted, Options: editMenuOptions()}
}

func (m *Machine) chooseField(chatID int64, token string) Reply {
	sess := m.sessions.get(chatID)
	if sess == nil || sess.state != StateAwaitFieldChoice {
		return Reply{}
	}
	switch token {
	case TokFieldTime:
		sess.state = StateAwaitNewTime
		return Reply{Text: textAskNewTime, Options: timeOptions()}
	case TokFieldDuration:
		sess.state = StateAwaitNewDuration
		return Reply{Text: textAskNewDuration, Options: durationOptions()}
	case TokFieldName:
		sess.state = StateAwaitNewName
		return Reply{Text: textAskNewName, AwaitText: true}
	case TokFieldFrequency:
		sess.state = StateAwaitNewFrequency
		sess.draft = domain.Draft{}
		return Reply{Text: textAskFrequency, Options: weekdayOptions()}
	}
	return Reply{}
}

func (m *Machine) accumulateWeekday(chatID int64, day string) Reply {
	sess := m.sessions.get(chatID)
	if sess == nil {
		return Reply{}
	}
	switch sess.state {
	case StateAwaitFrequency:
		// Add flow: duplicates are not suppressed.
		sess.draft.Accumulate(day)
		return Reply{Text: textDayAdded(day), Options: weekdayOptions()}
	case StateAwaitNewFrequency:
		// Edit flow: duplicates are suppressed, silently.
		if sess.draft.AccumulateOnce(day) {
			return Reply{Text: textDayAdded(day), Options: weekdayOptions()}
		}
		return Reply{}
	}
	return Reply{}
}

func (m *Machine) finishFrequency(ctx context.Context, chatID int64) Reply {
	sess := m.sessions.get(chatID)
	if sess == nil {
		return Reply{}
	}
	switch sess.state {
	case StateAwaitFrequency:
		entry, err := sess.draft.Finalize(chatID)
		if err != nil {
			return Reply{Text: textNeedWeekday, Options: weekdayOptions()}
		}
		if err := m.editor.AddActivity(ctx, &entry); err != nil {
			m.log.Error("add activity failed", zap.Int64("chatID", chatID), zap.Error(err))
			m.sessions.clear(chatID)
			return Reply{Text: textGenericError}
		}
		m.sessions.clear(chatID)
		return Reply{Text: textActivityAdded, Options: afterAddOptions()}

	case StateAwaitNewFrequency:
		freq, err := sess.draft.Frequency()
		if err != nil {
			return Reply{Text: textNeedWeekday, Options: weekdayOptions()}
		}
		id := sess.entryID
		m.sessions.clear(chatID)
		return m.applyEdit(ctx, id, store.FieldFrequency, freq, textFreqUpdated)
	}
	return Reply{}
}

// --- Free-text events ---

// handleText consumes free text according to the active state. States
// that presented a finite option set reject non-matching text and
// re-prompt with the same options; the state does not advance.
func (m *Machine) handleText(ctx context.Context, chatID int64, text string) Reply {
	sess := m.sessions.get(chatID)
	if sess == nil {
		return Reply{}
	}

	switch sess.state {
	case StateAwaitEligibility:
		return Reply{Text: textAskEligibility, Options: eligibilityOptions()}

	case StateAwaitTime:
		if _, err := domain.ParseSlot(text); err != nil {
			return Reply{Text: textAskTime, Options: timeOptions()}
		}
		sess.draft.Time = text
		sess.state = StateAwaitName
		return Reply{Text: textAskName, AwaitText: true}

	case StateAwaitName:
		sess.draft.Activity = text
		sess.state = StateAwaitDuration
		return Reply{Text: textAskDuration, Options: durationOptions()}

	case StateAwaitDuration:
		n, err := domain.ParseDurationMinutes(text)
		if err != nil {
			return Reply{Text: textAskDuration, Options: durationOptions()}
		}
		sess.draft.DurationMin = n
		sess.state = StateAwaitFrequency
		return Reply{Text: textAskFrequency, Options: weekdayOptions()}

	case StateAwaitFrequency, StateAwaitNewFrequency:
		return Reply{Text: textAskFrequency, Options: weekdayOptions()}

	case StateAwaitFieldChoice:
		return Reply{Text: textAskField, Options: fieldOptions(sess.entryID)}

	case StateAwaitNewTime:
		if _, err := domain.ParseSlot(text); err != nil {
			return Reply{Text: textAskNewTime, Options: timeOptions()}
		}
		id := sess.entryID
		m.sessions.clear(chatID)
		return m.applyEdit(ctx, id, store.FieldTime, text, textTimeUpdated)

	case StateAwaitNewDuration:
		n, err := domain.ParseDurationMinutes(text)
		if err != nil {
			return Reply{Text: textAskNewDuration, Options: durationOptions()}
		}
		id := sess.entryID
		m.sessions.clear(chatID)
		return m.applyEdit(ctx, id, store.FieldDuration, n, textDurUpdated)

	case StateAwaitNewName:
		id := sess.entryID
		m.sessions.clear(chatID)
		return m.applyEdit(ctx, id, store.FieldActivity, text, textNameUpdated)
	}

	return Reply{}
}

// applyEdit writes one column and maps a missing row to the benign
// not-found message.
func (m *Machine) applyEdit(ctx context.Context, id int64, f store.Field, value any, okText string) Reply {
	if err := m.editor.EditField(ctx, id, f, value); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Reply{Text: textEntryMissing, Options: afterEditOptions()}
		}
		m.log.Error("edit field failed", zap.Int64("id", id), zap.Error(err))
		return Reply{Text: textGenericError}
	}
	return Reply{Text: okText, Options: afterEditOptions()}
}
