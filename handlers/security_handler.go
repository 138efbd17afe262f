package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hayuasamad2-code/student-fee-system/models"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

// Security view thresholds.
const (
	// RecentAttemptWindow is the trailing window for the recent_attempts
	// annotation on the failed-logins view.
	RecentAttemptWindow = time.Hour
	// AlertWindow and AlertThreshold decide which IPs show up as alerts.
	AlertWindow    = 24 * time.Hour
	AlertThreshold = 3
	// LogRetention is how far back clear-logs keeps rows.
	LogRetention = 7 * 24 * time.Hour
)

type SecurityHandler struct {
	Attempts store.FailedLoginStore
}

func NewSecurityHandler(attempts store.FailedLoginStore) *SecurityHandler {
	return &SecurityHandler{Attempts: attempts}
}

// GET /security/failed-logins
func (h *SecurityHandler) FailedLogins(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	attempts, err := h.Attempts.FailedLogins(ctx)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, annotateRecentAttempts(attempts, time.Now()))
}

// annotateRecentAttempts attaches, to every attempt, the count of same-IP
// attempts inside the trailing window. The window always ends at now — not at
// each row's own timestamp — so every row of one IP carries the same count.
func annotateRecentAttempts(attempts []models.FailedLoginAttempt, now time.Time) []models.AnnotatedFailedLogin {
	since := now.Add(-RecentAttemptWindow)
	recent := make(map[string]int)
	for _, a := range attempts {
		if !a.AttemptTime.Before(since) {
			recent[a.IPAddress]++
		}
	}

	out := make([]models.AnnotatedFailedLogin, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, models.AnnotatedFailedLogin{
			FailedLoginAttempt: a,
			RecentAttempts:     recent[a.IPAddress],
		})
	}
	return out
}

// GET /security/alerts
func (h *SecurityHandler) Alerts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	attempts, err := h.Attempts.FailedLoginsSince(ctx, time.Now().Add(-AlertWindow))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, buildAlerts(attempts))
}

// buildAlerts groups attempts by IP and keeps the IPs at or over the
// threshold, most attempts first. Usernames are deduplicated in first-seen
// order.
func buildAlerts(attempts []models.FailedLoginAttempt) []models.SecurityAlert {
	type group struct {
		count int
		last  time.Time
		seen  map[string]struct{}
		names []string
	}
	groups := make(map[string]*group)
	var order []string

	for _, a := range attempts {
		g, ok := groups[a.IPAddress]
		if !ok {
			g = &group{seen: make(map[string]struct{})}
			groups[a.IPAddress] = g
			order = append(order, a.IPAddress)
		}
		g.count++
		if a.AttemptTime.After(g.last) {
			g.last = a.AttemptTime
		}
		if _, dup := g.seen[a.Username]; !dup {
			g.seen[a.Username] = struct{}{}
			g.names = append(g.names, a.Username)
		}
	}

	out := make([]models.SecurityAlert, 0, len(groups))
	for _, ip := range order {
		g := groups[ip]
		if g.count < AlertThreshold {
			continue
		}
		out = append(out, models.SecurityAlert{
			IPAddress:      ip,
			AttemptCount:   g.count,
			LastAttempt:    g.last,
			UsernamesTried: strings.Join(g.names, ", "),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AttemptCount > out[j].AttemptCount })
	return out
}

// POST /security/clear-logs
func (h *SecurityHandler) ClearLogs(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	deleted, err := h.Attempts.DeleteFailedLoginsBefore(ctx, time.Now().Add(-LogRetention))
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Old logs cleared successfully",
		"deleted": deleted,
	})
}
