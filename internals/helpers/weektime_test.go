package helper

import (
	"testing"
	"time"
)

func TestWeekStartSundayFirst(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"rabu", time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC), "2025-03-09"},
		{"minggu sendiri", time.Date(2025, 3, 9, 0, 0, 1, 0, time.UTC), "2025-03-09"},
		{"sabtu malam", time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC), "2025-03-09"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStartDate(tc.in); got != tc.want {
				t.Fatalf("got %s, mau %s", got, tc.want)
			}
		})
	}
}

func TestNextWeekStartDate(t *testing.T) {
	in := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	if got := NextWeekStartDate(in); got != "2025-03-16" {
		t.Fatalf("got %s, mau 2025-03-16", got)
	}
}

func TestFloorMinutes(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{59 * time.Second, 0},
		{60 * time.Second, 1},
		{5*time.Hour + time.Minute + 59*time.Second, 301},
		{-time.Minute, 0},
	}
	for _, tc := range cases {
		if got := FloorMinutes(tc.d); got != tc.want {
			t.Fatalf("FloorMinutes(%v) = %d, mau %d", tc.d, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	// 121 menit: 2.01666… jam → 2.02; pay mentahnya 30.25 tetap 30.25
	if got := Round2(121.0 / 60.0); got != 2.02 {
		t.Fatalf("jam = %v, mau 2.02", got)
	}
	if got := Round2(121.0 / 60.0 * 15.0); got != 30.25 {
		t.Fatalf("pay = %v, mau 30.25", got)
	}
}

func TestWeekDayIndex(t *testing.T) {
	if WeekDayIndex("sunday") != 0 || WeekDayIndex("Saturday") != 6 {
		t.Fatal("index minggu/sabtu salah")
	}
	if WeekDayIndex("bukanhari") != -1 {
		t.Fatal("nama tidak valid harus -1")
	}
	if !IsWeekDay(" MONDAY ") {
		t.Fatal("harus toleran spasi + kapital")
	}
}
