package dialog

import (
	"fmt"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

// User-facing texts, kept in the original's Uzbek where it had them.
const (
	textAskEligibility = "Salom! Siz musulmonmisiz?"
	textWelcomeBack    = "Xush kelibsiz! Jadvalingizga kirishingiz mumkin."
	textNotEligible    = "Bot faqat musulmon foydalanuvchilar uchun mo'ljallangan."
	textEligibleNext   = "Ajoyib! Jadvalingizni yaratish uchun quyidagilarni tanlang:"
	textChooseOption   = "Quyidagi variantlardan birini tanlang:"
	textChooseEdit     = "Jadvalingizni tahrirlash uchun quyidagi variantlardan birini tanlang:"
	textNoSchedule     = "Hozircha jadvalingiz yo'q. Jadval yaratish uchun \"Build my Schedule\" ni tanlang."
	textBuilt          = "Jadvalingiz yaratildi!"
	textFetchFailed    = "Prayer times could not be fetched. Please try again later."
	textDeleted        = "Jadvalingiz muvaffaqiyatli o'chirildi."
	textEmptySchedule  = "Jadvalingiz hali to'liq emas."
	textGenericError   = "Xatolik yuz berdi."
	textAskTime        = "Aktivlik vaqtini tanlang:"
	textAskName        = "Aktivlik nomini kiriting:"
	textAskDuration    = "Aktivlik davomiyligini tanlang:"
	textAskFrequency   = "Aktivlik chastotasini tanlang:"
	textActivityAdded  = "Aktivlik qo'shildi!"
	textNoActivities   = "Jadvalda faoliyat yo'q."
	textPickActivity   = "Tahrirlash uchun faoliyatni tanlang:"
	textEntryMissing   = "Aktiviyat topilmadi."
	textEntryDeleted   = "Aktiviyat o'chirildi."
	textAskField       = "Nimani o'zgartirmoqchisiz?"
	textAskNewTime     = "Yangi boshlanish vaqtini tanlang:"
	textAskNewDuration = "Yangi davomiylikni tanlang:"
	textAskNewName     = "Yangi aktivlik nomini kiriting:"
	textTimeUpdated    = "Boshlanish vaqti yangilandi."
	textDurUpdated     = "Davomiylik yangilandi."
	textNameUpdated    = "Aktivlik nomi yangilandi."
	textFreqUpdated    = "Chastotangiz yangilandi."
	textNeedWeekday    = "Kamida bitta kunni tanlang."
	textExporting      = "Jadval tayyorlanmoqda..."
)

func textDayAdded(day string) string {
	return day + " qo'shildi."
}

func textEntryDetails(e *domain.Entry) string {
	return fmt.Sprintf("%s\n\nBoshlanish vaqti: %s\nDavomiyligi: %d daqiqa\nChastotasi: %s",
		e.Activity, e.Time, e.DurationMin, e.Frequency)
}

// --- Option sets ---

func eligibilityOptions() []Option {
	return []Option{
		{Label: "Ha", Token: TokEligibleYes},
		{Label: "Yo'q", Token: TokEligibleNo},
	}
}

func menuOptions() []Option {
	return []Option{
		{Label: "Build my Schedule", Token: TokBuild},
		{Label: "Edit Schedule", Token: TokEditMenu},
		{Label: "Delete Schedule", Token: TokDeleteAll},
		{Label: "Export Schedule", Token: TokExport},
	}
}

func editMenuOptions() []Option {
	return []Option{
		{Label: "Add Activity", Token: TokAdd},
		{Label: "Edit Activity", Token: TokEditList},
		{Label: "Delete Activity", Token: TokDeleteList},
		{Label: "Go Back", Token: TokBack},
	}
}

func timeOptions() []Option {
	slots := domain.Slots()
	out := make([]Option, 0, len(slots))
	for _, s := range slots {
		out = append(out, Option{Label: s, Token: s})
	}
	return out
}

func durationOptions() []Option {
	choices := domain.DurationChoices()
	out := make([]Option, 0, len(choices))
	for _, c := range choices {
		out = append(out, Option{Label: c, Token: c})
	}
	return out
}

func weekdayOptions() []Option {
	out := make([]Option, 0, len(domain.Weekdays)+1)
	for _, d := range domain.Weekdays {
		out = append(out, Option{Label: d, Token: freqToken(d)})
	}
	out = append(out, Option{Label: "Done", Token: TokFreqDone})
	return out
}

func fieldOptions(entryID int64) []Option {
	return []Option{
		{Label: "Start Time", Token: TokFieldTime},
		{Label: "Duration", Token: TokFieldDuration},
		{Label: "Name", Token: TokFieldName},
		{Label: "Frequency", Token: TokFieldFrequency},
		{Label: "Go Back", Token: showToken(entryID)},
	}
}

func entryDetailOptions(entryID int64) []Option {
	return []Option{
		{Label: "Edit Activity", Token: editToken(entryID)},
		{Label: "Delete Activity", Token: deleteToken(entryID)},
		{Label: "Go Back", Token: TokEditList},
	}
}

func afterAddOptions() []Option {
	return []Option{
		{Label: "Add Another Activity", Token: TokAdd},
		{Label: "Go Back", Token: TokEditMenu},
	}
}

func afterEditOptions() []Option {
	return []Option{
		{Label: "Go Back", Token: TokEditList},
	}
}
