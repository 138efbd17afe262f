package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hayuasamad2-code/student-fee-system/models"
)

func attempt(ip, username string, at time.Time) models.FailedLoginAttempt {
	return models.FailedLoginAttempt{
		Username:    username,
		IPAddress:   ip,
		Reason:      models.ReasonWrongPassword,
		AttemptTime: at,
	}
}

func TestAnnotateRecentAttemptsCountsPerIP(t *testing.T) {
	now := time.Now()
	attempts := []models.FailedLoginAttempt{
		attempt("1.1.1.1", "a", now.Add(-5*time.Minute)),
		attempt("1.1.1.1", "a", now.Add(-20*time.Minute)),
		attempt("1.1.1.1", "b", now.Add(-50*time.Minute)),
		attempt("2.2.2.2", "c", now.Add(-10*time.Minute)),
	}

	out := annotateRecentAttempts(attempts, now)
	if len(out) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(out))
	}
	for _, row := range out[:3] {
		if row.RecentAttempts != 3 {
			t.Fatalf("expected recent_attempts 3 for 1.1.1.1, got %d", row.RecentAttempts)
		}
	}
	if out[3].RecentAttempts != 1 {
		t.Fatalf("expected recent_attempts 1 for 2.2.2.2, got %d", out[3].RecentAttempts)
	}
}

// The window ends at the current instant, not at each row's own timestamp: a
// row older than the window still appears but does not add to the count.
func TestAnnotateRecentAttemptsWindowEndsNow(t *testing.T) {
	now := time.Now()
	attempts := []models.FailedLoginAttempt{
		attempt("1.1.1.1", "a", now.Add(-10*time.Minute)),
		attempt("1.1.1.1", "a", now.Add(-2*time.Hour)), // นอก window แล้ว
	}

	out := annotateRecentAttempts(attempts, now)
	if out[0].RecentAttempts != 1 {
		t.Fatalf("expected recent row to count 1, got %d", out[0].RecentAttempts)
	}
	// The stale row is annotated with the same as-of-now count for its IP.
	if out[1].RecentAttempts != 1 {
		t.Fatalf("expected stale row to carry the as-of-now count 1, got %d", out[1].RecentAttempts)
	}
}

func TestBuildAlertsThreshold(t *testing.T) {
	now := time.Now()
	attempts := []models.FailedLoginAttempt{
		// 2 ครั้ง → ยังไม่ alert
		attempt("2.2.2.2", "a", now.Add(-1*time.Hour)),
		attempt("2.2.2.2", "b", now.Add(-2*time.Hour)),
		// 3 ครั้ง → alert
		attempt("3.3.3.3", "a", now.Add(-1*time.Hour)),
		attempt("3.3.3.3", "a", now.Add(-2*time.Hour)),
		attempt("3.3.3.3", "b", now.Add(-3*time.Hour)),
		// 5 ครั้ง → ต้องมาก่อน
		attempt("5.5.5.5", "x", now.Add(-1*time.Minute)),
		attempt("5.5.5.5", "y", now.Add(-2*time.Minute)),
		attempt("5.5.5.5", "x", now.Add(-3*time.Minute)),
		attempt("5.5.5.5", "z", now.Add(-4*time.Minute)),
		attempt("5.5.5.5", "x", now.Add(-5*time.Minute)),
	}

	alerts := buildAlerts(attempts)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].IPAddress != "5.5.5.5" || alerts[0].AttemptCount != 5 {
		t.Fatalf("expected 5.5.5.5 with 5 attempts first, got %+v", alerts[0])
	}
	if alerts[1].IPAddress != "3.3.3.3" || alerts[1].AttemptCount != 3 {
		t.Fatalf("expected 3.3.3.3 with 3 attempts second, got %+v", alerts[1])
	}
	if alerts[0].UsernamesTried != "x, y, z" {
		t.Fatalf("expected deduped usernames in first-seen order, got %q", alerts[0].UsernamesTried)
	}
	if got, want := alerts[0].LastAttempt, now.Add(-time.Minute); !got.Equal(want) {
		t.Fatalf("expected last_attempt %s, got %s", want, got)
	}
}

func secCtx(e *echo.Echo, method, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestFailedLoginsViewNewestFirst(t *testing.T) {
	now := time.Now()
	f := &fakeStore{}
	f.attempts = []models.FailedLoginAttempt{
		attempt("1.1.1.1", "a", now.Add(-30*time.Minute)),
		attempt("1.1.1.1", "a", now.Add(-5*time.Minute)),
	}
	h := NewSecurityHandler(f)

	e := echo.New()
	c, rec := secCtx(e, http.MethodGet, "/security/failed-logins")
	if err := h.FailedLogins(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var rows []models.AnnotatedFailedLogin
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].AttemptTime.After(rows[1].AttemptTime) {
		t.Fatalf("expected newest first")
	}
	if rows[0].RecentAttempts != 2 {
		t.Fatalf("expected annotation 2, got %d", rows[0].RecentAttempts)
	}
}

func TestClearLogsDeletesOnlyOldRows(t *testing.T) {
	now := time.Now()
	f := &fakeStore{}
	f.attempts = []models.FailedLoginAttempt{
		attempt("1.1.1.1", "old", now.Add(-8*24*time.Hour)),
		attempt("1.1.1.1", "new", now.Add(-6*24*time.Hour)),
	}
	h := NewSecurityHandler(f)

	e := echo.New()
	c, rec := secCtx(e, http.MethodPost, "/security/clear-logs")
	if err := h.ClearLogs(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	wantCutoff := now.Add(-LogRetention)
	if d := f.lastCutoff.Sub(wantCutoff); d < -time.Minute || d > time.Minute {
		t.Fatalf("cutoff off by %s", d)
	}
	if len(f.attempts) != 1 || f.attempts[0].Username != "new" {
		t.Fatalf("expected only the 6-day row to survive, got %+v", f.attempts)
	}

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Deleted != 1 {
		t.Fatalf("expected deleted=1, got %d", resp.Deleted)
	}
}
