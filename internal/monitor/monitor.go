package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/alexcesaro/statsd"
	"github.com/google/uuid"
)

type AlertKind string

const (
	HighMessageVolume   AlertKind = "high_message_volume"
	ChannelNearCapacity AlertKind = "channel_near_capacity"
	SlowQuery           AlertKind = "slow_query"
)

// Alert is a threshold crossing. ChannelID is zero for slow queries,
// Operation is empty for channel alerts.
type Alert struct {
	Kind      AlertKind
	ChannelID uuid.UUID
	Operation string
	Value     float64
	Threshold float64
	At        time.Time
}

type Logger interface {
	Warn(msg string)
}

type Settings struct {
	VolumeThreshold   int
	MaxChannelMembers int
	CapacityRatio     float64
	SlowQuery         time.Duration
}

// Monitor is a pure observer: it records telemetry and raises alerts but
// never fails or slows down the operation that called it.
type Monitor struct {
	settings Settings
	logger   Logger
	stats    *statsd.Client

	mu        sync.RWMutex
	nextID    uint64
	listeners map[uint64]func(Alert)
}

func New(settings Settings, logger Logger, stats *statsd.Client) *Monitor {
	if settings.VolumeThreshold <= 0 {
		settings.VolumeThreshold = 1000
	}
	if settings.MaxChannelMembers <= 0 {
		settings.MaxChannelMembers = 1000
	}
	if settings.CapacityRatio <= 0 {
		settings.CapacityRatio = 0.9
	}
	if settings.SlowQuery <= 0 {
		settings.SlowQuery = time.Second
	}

	return &Monitor{
		settings:  settings,
		logger:    logger,
		stats:     stats,
		listeners: make(map[uint64]func(Alert)),
	}
}

// Subscribe registers an alert listener and returns its disposer.
func (m *Monitor) Subscribe(listener func(Alert)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.listeners[id] = listener

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Monitor) TrackMessageVolume(channelID uuid.UUID, count int) {
	if m.stats != nil {
		m.stats.Gauge("channel.message_volume", count)
	}

	if count > m.settings.VolumeThreshold {
		m.raise(Alert{
			Kind:      HighMessageVolume,
			ChannelID: channelID,
			Value:     float64(count),
			Threshold: float64(m.settings.VolumeThreshold),
		})
	}
}

func (m *Monitor) TrackChannelCapacity(channelID uuid.UUID, memberCount int) {
	if m.stats != nil {
		m.stats.Gauge("channel.member_count", memberCount)
	}

	threshold := float64(m.settings.MaxChannelMembers) * m.settings.CapacityRatio
	if float64(memberCount) > threshold {
		m.raise(Alert{
			Kind:      ChannelNearCapacity,
			ChannelID: channelID,
			Value:     float64(memberCount),
			Threshold: threshold,
		})
	}
}

func (m *Monitor) TrackDatabasePerformance(op string, duration time.Duration) {
	if m.stats != nil {
		m.stats.Timing("db."+op, int(duration/time.Millisecond))
	}

	if duration > m.settings.SlowQuery {
		m.raise(Alert{
			Kind:      SlowQuery,
			Operation: op,
			Value:     float64(duration / time.Millisecond),
			Threshold: float64(m.settings.SlowQuery / time.Millisecond),
		})
	}
}

func (m *Monitor) raise(alert Alert) {
	alert.At = time.Now()

	if m.logger != nil {
		m.logger.Warn(fmt.Sprintf("%s: value %.0f exceeds threshold %.0f", alert.Kind, alert.Value, alert.Threshold))
	}
	if m.stats != nil {
		m.stats.Increment("alerts." + string(alert.Kind))
	}

	m.mu.RLock()
	listeners := make([]func(Alert), 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.RUnlock()

	for _, l := range listeners {
		l(alert)
	}
}
