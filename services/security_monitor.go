package services

import (
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	securityFailureWindow    = 10 * time.Minute
	securityFailureThreshold = 5
	securityAlertCooldown    = 1 * time.Hour
	maxStoredAlerts          = 100
)

// SecurityEventMonitor counts failed bot checks per IP and raises alerts.
// It only observes; it never blocks a request.
type SecurityEventMonitor struct {
	mu         sync.Mutex
	failures   map[string][]time.Time // Map of IP -> failure timestamps
	alertedIPs map[string]time.Time   // Map of IP -> last alert time
	alerts     []SecurityAlert        // History of alerts, newest first
	notify     func(SecurityAlert)
	now        func() time.Time
	done       chan struct{}
	stopOnce   sync.Once
}

// SecurityAlert represents a triggered security alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Reason    string
	Level     string // "WARNING", "CRITICAL"
}

// NewSecurityEventMonitor creates a monitor and starts its cleanup loop.
// notify, when not nil, is called outside the lock for every new alert.
func NewSecurityEventMonitor(notify func(SecurityAlert)) *SecurityEventMonitor {
	m := &SecurityEventMonitor{
		failures:   make(map[string][]time.Time),
		alertedIPs: make(map[string]time.Time),
		notify:     notify,
		now:        time.Now,
		done:       make(chan struct{}),
	}
	go m.cleanup()
	return m
}

// Stop ends the cleanup loop
func (m *SecurityEventMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// TrackFailedSecurityCheck records a rejected bot check and checks the threshold
func (m *SecurityEventMonitor) TrackFailedSecurityCheck(ip, reason string) {
	if m == nil {
		return
	}

	m.mu.Lock()
	now := m.now()
	windowStart := now.Add(-securityFailureWindow)

	valid := make([]time.Time, 0, len(m.failures[ip])+1)
	for _, t := range m.failures[ip] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	valid = append(valid, now)
	m.failures[ip] = valid

	var alert *SecurityAlert
	if len(valid) >= securityFailureThreshold {
		alert = m.triggerAlertLocked(ip, fmt.Sprintf("Repeated failed security checks (%s)", reason))
	}
	m.mu.Unlock()

	if alert != nil && m.notify != nil {
		m.notify(*alert)
	}
}

// triggerAlertLocked stores and logs an alert; called with the lock held.
// Returns nil when the IP was alerted within the cooldown.
func (m *SecurityEventMonitor) triggerAlertLocked(ip, reason string) *SecurityAlert {
	now := m.now()
	if last, alerted := m.alertedIPs[ip]; alerted && now.Sub(last) < securityAlertCooldown {
		return nil
	}
	m.alertedIPs[ip] = now

	alert := SecurityAlert{
		Timestamp: now,
		IP:        ip,
		Reason:    reason,
		Level:     "CRITICAL",
	}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxStoredAlerts {
		m.alerts = m.alerts[:maxStoredAlerts]
	}

	log.Printf("[SECURITY ALERT] %s from IP: %s", reason, ip)
	return &alert
}

// GetRecentAlerts returns a copy of recent alerts
func (m *SecurityEventMonitor) GetRecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	alertsCopy := make([]SecurityAlert, len(m.alerts))
	copy(alertsCopy, m.alerts)
	return alertsCopy
}

// cleanup periodically removes stale data
func (m *SecurityEventMonitor) cleanup() {
	ticker := time.NewTicker(securityFailureWindow)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.prune()
		}
	}
}

func (m *SecurityEventMonitor) prune() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for ip, attempts := range m.failures {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > securityFailureWindow {
			delete(m.failures, ip)
		}
	}
	for ip, lastAlert := range m.alertedIPs {
		if now.Sub(lastAlert) > securityAlertCooldown {
			delete(m.alertedIPs, ip)
		}
	}
}
