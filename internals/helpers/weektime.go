package helper

import (
	"math"
	"strings"
	"time"
)

// Urutan kanonik: minggu mulai hari Minggu (ikuti konvensi payroll).
var WeekDays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

const DateLayout = "2006-01-02"

// DayName mengembalikan nama hari lowercase, mis. "monday".
func DayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsWeekDay memeriksa apakah s nama hari yang valid (case-insensitive).
func IsWeekDay(s string) bool {
	return WeekDayIndex(s) >= 0
}

// WeekDayIndex posisi hari dalam minggu (Sunday = 0), -1 jika bukan nama hari.
func WeekDayIndex(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, d := range WeekDays {
		if d == s {
			return i
		}
	}
	return -1
}

// WeekStart memotong t ke hari Minggu 00:00 minggu berjalan.
func WeekStart(t time.Time) time.Time {
	midnight := DayStart(t)
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// WeekStartDate seperti WeekStart tapi berupa string YYYY-MM-DD.
func WeekStartDate(t time.Time) string {
	return WeekStart(t).Format(DateLayout)
}

// NextWeekStartDate hari Minggu minggu berikutnya sebagai YYYY-MM-DD.
func NextWeekStartDate(t time.Time) string {
	return WeekStart(t).AddDate(0, 0, 7).Format(DateLayout)
}

// DayStart memotong t ke 00:00 lokal.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FloorMinutes durasi penuh dalam menit (dibulatkan ke bawah).
func FloorMinutes(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// Round2 pembulatan 2 desimal (jam dan pay dibulatkan masing-masing,
// jangan berantai dari nilai yang sudah dibulatkan).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
