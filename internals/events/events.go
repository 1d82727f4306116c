package events

// Payload event keluar yang dikonsumsi kolaborator notifikasi
// (bot chat / DM sender). Engine hanya emit, tidak merender pesan.

type ForceClockedOut struct {
	GuildID     string  `json:"guild_id"`
	UserID      string  `json:"user_id"`
	HoursWorked float64 `json:"hours_worked"`
}

type WeeklyUnpaidReminder struct {
	GuildID    string  `json:"guild_id"`
	UserID     string  `json:"user_id"`
	TotalPay   float64 `json:"total_pay"`
	TotalHours float64 `json:"total_hours"`
	Periods    int     `json:"periods"`
}

type StaffBalance struct {
	UserID     string  `json:"user_id"`
	TotalPay   float64 `json:"total_pay"`
	TotalHours float64 `json:"total_hours"`
	Periods    int     `json:"periods"`
}

type DailyOwnerSummary struct {
	GuildID  string         `json:"guild_id"`
	Balances []StaffBalance `json:"balances"`
}

type WeeklyScheduleGenerated struct {
	GuildID     string              `json:"guild_id"`
	WeekStart   string              `json:"week_start"`
	Assignments map[string][]string `json:"assignments"` // user_id -> hari
}

type PersonalSchedule struct {
	GuildID   string   `json:"guild_id"`
	UserID    string   `json:"user_id"`
	WeekStart string   `json:"week_start"`
	Days      []string `json:"days"`
}

type AutoBreakStarted struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
	ShiftID string `json:"shift_id"`
}

type MissedShift struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
	Date    string `json:"date"`
	Day     string `json:"day"`
	UPTUsed bool   `json:"upt_used"`
}
