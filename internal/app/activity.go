package app

import (
	"sync/atomic"
	"time"
)

// Activity counts board mutations made through this App. Counters are
// atomic so a shell session can read them while commands run.
type Activity struct {
	CardsCreated           atomic.Int64
	CardsMoved             atomic.Int64
	SubtasksToggled        atomic.Int64
	MetricsRecorded        atomic.Int64
	NotificationsPublished atomic.Int64
	StartTime              time.Time
}

// ActivitySnapshot is a point-in-time copy of Activity
type ActivitySnapshot struct {
	CardsCreated           int64     `json:"cards_created"`
	CardsMoved             int64     `json:"cards_moved"`
	SubtasksToggled        int64     `json:"subtasks_toggled"`
	MetricsRecorded        int64     `json:"metrics_recorded"`
	NotificationsPublished int64     `json:"notifications_published"`
	StartTime              time.Time `json:"start_time"`
	Uptime                 string    `json:"uptime"`
}

func newActivity(start time.Time) *Activity {
	return &Activity{StartTime: start}
}

func (m *Activity) published(n int) {
	m.NotificationsPublished.Add(int64(n))
}

// Snapshot reads every counter; uptime is measured against now
func (m *Activity) Snapshot(now time.Time) ActivitySnapshot {
	return ActivitySnapshot{
		CardsCreated:           m.CardsCreated.Load(),
		CardsMoved:             m.CardsMoved.Load(),
		SubtasksToggled:        m.SubtasksToggled.Load(),
		MetricsRecorded:        m.MetricsRecorded.Load(),
		NotificationsPublished: m.NotificationsPublished.Load(),
		StartTime:              m.StartTime,
		Uptime:                 now.Sub(m.StartTime).Round(time.Second).String(),
	}
}
