package services

import (
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// SecurityAlert is raised when one IP keeps failing to sign in
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Attempts  int
}

// LoginMonitor watches failed admin logins per IP. An IP that reaches
// Threshold failures inside Window raises one alert per Cooldown.
type LoginMonitor struct {
	Threshold int
	Window    time.Duration
	Cooldown  time.Duration

	mu        sync.Mutex
	failures  map[string][]time.Time
	alertedAt map[string]time.Time
	alerts    []SecurityAlert
	now       func() time.Time
}

const maxStoredAlerts = 100

// Monitor is the process-wide login monitor; nil disables tracking
var Monitor *LoginMonitor

// NewLoginMonitor returns a monitor with the default thresholds
func NewLoginMonitor() *LoginMonitor {
	return &LoginMonitor{
		Threshold: 5,
		Window:    10 * time.Minute,
		Cooldown:  time.Hour,
		failures:  make(map[string][]time.Time),
		alertedAt: make(map[string]time.Time),
		now:       time.Now,
	}
}

// TrackFailedLogin records a failure and reports whether it raised an alert
func (m *LoginMonitor) TrackFailedLogin(ip string) bool {
	FailedLogins.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	windowStart := now.Add(-m.Window)
	recent := m.failures[ip][:0]
	for _, t := range m.failures[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.failures[ip] = recent

	if len(recent) < m.Threshold {
		return false
	}
	if last, ok := m.alertedAt[ip]; ok && now.Sub(last) < m.Cooldown {
		return false
	}

	m.alertedAt[ip] = now
	alert := SecurityAlert{Timestamp: now, IP: ip, Attempts: len(recent)}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxStoredAlerts {
		m.alerts = m.alerts[:maxStoredAlerts]
	}

	zlog.Warn().Str("ip", ip).Int("attempts", len(recent)).Msg("[SECURITY] Repeated failed logins")
	return true
}

// RecentAlerts returns alerts newest first
func (m *LoginMonitor) RecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SecurityAlert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// Prune drops stale failure windows and expired cooldowns
func (m *LoginMonitor) Prune() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ip, attempts := range m.failures {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > m.Window {
			delete(m.failures, ip)
		}
	}
	for ip, last := range m.alertedAt {
		if now.Sub(last) > m.Cooldown {
			delete(m.alertedAt, ip)
		}
	}
}
