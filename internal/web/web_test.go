package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

var testNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type fakeAccount struct {
	password string
	user     appointment.User
}

// fakeBackend is an in-memory stand-in for the counseling backend.
type fakeBackend struct {
	mu          sync.Mutex
	accounts    map[string]fakeAccount
	appts       []appointment.Appointment
	down        bool
	pingErr     error
	listAll     int
	statusCalls []string
	attended    map[string]bool
	registered  []backend.RegisterRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		accounts: map[string]fakeAccount{
			"student": {password: "secret1", user: appointment.User{UserID: "1", Username: "student", IDNumber: "2021001", Role: appointment.RoleStudent}},
			"admin":   {password: "secret1", user: appointment.User{UserID: "99", Username: "admin", Role: appointment.RoleAdmin}},
		},
		attended: map[string]bool{},
	}
}

// with runs fn under the fake's lock, for tests poking at its state between requests.
func (f *fakeBackend) with(fn func(f *fakeBackend)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeBackend) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.statusCalls...)
}

func (f *fakeBackend) fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listAll
}

func (f *fakeBackend) attendance(id string) (attended, called bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attended, called = f.attended[id]
	return attended, called
}

func (f *fakeBackend) registrations() []backend.RegisterRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.RegisterRequest(nil), f.registered...)
}

func (f *fakeBackend) unreachable() error {
	if f.down {
		return fmt.Errorf("%w: connection refused", backend.ErrNetwork)
	}
	return nil
}

func (f *fakeBackend) Login(_ context.Context, req backend.LoginRequest) (appointment.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.unreachable(); err != nil {
		return appointment.User{}, err
	}
	acc, ok := f.accounts[req.Username]
	if !ok || acc.password != req.Password {
		return appointment.User{}, &backend.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid username or password"}
	}
	return acc.user, nil
}

func (f *fakeBackend) Register(_ context.Context, req backend.RegisterRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[req.Username]; exists {
		return "", &backend.APIError{StatusCode: http.StatusConflict, Message: "Username already exists"}
	}
	f.registered = append(f.registered, req)
	return "User registered", nil
}

func (f *fakeBackend) ListAppointments(_ context.Context, userID appointment.ID) ([]appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.unreachable(); err != nil {
		return nil, err
	}
	var out []appointment.Appointment
	for _, a := range f.appts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateAppointment(_ context.Context, req backend.CreateAppointmentRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.unreachable(); err != nil {
		return "", err
	}
	f.appts = append(f.appts, appointment.Appointment{
		ID:            fmt.Sprintf("new%d", len(f.appts)+1),
		UserID:        req.UserID,
		Date:          req.Date,
		PreferredTime: req.PreferredTime,
		ConcernType:   req.ConcernType,
		Status:        appointment.StatusPending,
		CreatedAt:     "2024-01-01T09:00:00Z",
	})
	return "Appointment created", nil
}

func (f *fakeBackend) MarkAttended(_ context.Context, id string, attended bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attended[id] = attended
	for i := range f.appts {
		if f.appts[i].ID == id {
			v := attended
			f.appts[i].Attended = &v
		}
	}
	return "Attendance recorded", nil
}

func (f *fakeBackend) ListAllAppointments(context.Context) ([]appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAll++
	if err := f.unreachable(); err != nil {
		return nil, err
	}
	out := make([]appointment.Appointment, len(f.appts))
	copy(out, f.appts)
	return out, nil
}

func (f *fakeBackend) UpdateStatus(_ context.Context, id string, status appointment.Status) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, id+"="+string(status))
	for i := range f.appts {
		if f.appts[i].ID == id {
			f.appts[i].Status = status
		}
	}
	return "Status updated", nil
}

func (f *fakeBackend) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

type testEnv struct {
	t       *testing.T
	srv     *httptest.Server
	client  *http.Client
	backend *fakeBackend
}

func newTestEnv(t *testing.T, mutate func(*RouterConfig)) *testEnv {
	t.Helper()
	fb := newFakeBackend()
	cfg := RouterConfig{
		Backend:   fb,
		Holder:    session.NewHolder(session.NewMemoryStore(), time.Hour),
		Locker:    session.NewLocalLocker(),
		Cache:     appointment.NewCache(time.Minute),
		Env:       "test",
		Version:   "test",
		RateLimit: 100,
		RateBurst: 100,
		Now:       func() time.Time { return testNow },
	}
	if mutate != nil {
		mutate(&cfg)
	}
	srv := httptest.NewServer(NewRouter(cfg))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testEnv{t: t, srv: srv, client: client, backend: fb}
}

// newSession returns an env sharing the server and backend with its own cookie jar.
func (e *testEnv) newSession() *testEnv {
	e.t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		e.t.Fatal(err)
	}
	client := &http.Client{Jar: jar, CheckRedirect: e.client.CheckRedirect}
	return &testEnv{t: e.t, srv: e.srv, client: client, backend: e.backend}
}

func (e *testEnv) get(path string) (*http.Response, string) {
	e.t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	if err != nil {
		e.t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(e.t, resp)
}

func (e *testEnv) post(path string, form url.Values) (*http.Response, string) {
	e.t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+path, form)
	if err != nil {
		e.t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(e.t, resp)
}

func (e *testEnv) login(username string) {
	e.t.Helper()
	resp, _ := e.post("/login", url.Values{"username": {username}, "password": {"secret1"}})
	if resp.StatusCode != http.StatusSeeOther {
		e.t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func expectRedirect(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func TestLoginRedirectsByRole(t *testing.T) {
	tests := []struct {
		username string
		home     string
	}{
		{"student", "/dashboard"},
		{"admin", "/adminDashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			env := newTestEnv(t, nil)
			resp, _ := env.post("/login", url.Values{"username": {tt.username}, "password": {"secret1"}})
			expectRedirect(t, resp, tt.home)

			resp, body := env.get(tt.home)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("home status = %d", resp.StatusCode)
			}
			if !strings.Contains(body, "Login successful!") {
				t.Error("missing login flash")
			}
		})
	}
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.post("/login", url.Values{"username": {"student"}})
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "Username and password are required") {
		t.Errorf("empty password: %d", resp.StatusCode)
	}

	resp, body = env.post("/login", url.Values{"username": {"student"}, "password": {"wrong"}})
	if resp.StatusCode != http.StatusUnauthorized || !strings.Contains(body, "Invalid username or password") {
		t.Errorf("wrong password: %d", resp.StatusCode)
	}

	env.backend.with(func(f *fakeBackend) { f.down = true })
	resp, body = env.post("/login", url.Values{"username": {"student"}, "password": {"secret1"}})
	if resp.StatusCode != http.StatusBadGateway || !strings.Contains(body, backend.NetworkMessage) {
		t.Errorf("backend down: %d", resp.StatusCode)
	}
}

func TestProtectedPagesRedirectAnonymous(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, path := range []string{"/dashboard", "/adminDashboard", "/adminDashboard/report"} {
		resp, _ := env.get(path)
		expectRedirect(t, resp, "/")
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.post("/register", url.Values{
		"username": {"ab"}, "idNumber": {"1"}, "birthdate": {"2000-01-01"},
		"password": {"secret1"}, "confirmPassword": {"secret2"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"Username must be at least 3 characters", "Passwords do not match"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	resp, _ = env.post("/register", url.Values{
		"username": {"newbie"}, "idNumber": {"2024-77"}, "birthdate": {"2000-01-01"},
		"password": {"secret1"}, "confirmPassword": {"secret1"},
	})
	expectRedirect(t, resp, "/")
	if regs := env.backend.registrations(); len(regs) != 1 || regs[0].IDNumber != "2024-77" {
		t.Fatalf("registered = %+v", regs)
	}
	_, body = env.get("/")
	if !strings.Contains(body, "Registration successful! Please login.") {
		t.Error("missing registration flash")
	}

	resp, body = env.post("/register", url.Values{
		"username": {"student"}, "idNumber": {"1"}, "birthdate": {"2000-01-01"},
		"password": {"secret1"}, "confirmPassword": {"secret1"},
	})
	if resp.StatusCode != http.StatusConflict || !strings.Contains(body, "Username already exists") {
		t.Errorf("duplicate: %d", resp.StatusCode)
	}
}

func TestBookingFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login("student")

	resp, _ := env.post("/appointments", url.Values{"date": {"2024-01-02"}})
	expectRedirect(t, resp, "/dashboard")
	_, body := env.get("/dashboard")
	if !strings.Contains(body, "Please fill all appointment fields") {
		t.Error("missing validation flash")
	}

	resp, _ = env.post("/appointments", url.Values{
		"date": {"2024-01-02"}, "time": {"10:00 AM"}, "concern": {"Career"},
	})
	expectRedirect(t, resp, "/dashboard?day=2024-01-02")
	_, body = env.get("/dashboard?day=2024-01-02")
	if !strings.Contains(body, "Appointment scheduled successfully!") {
		t.Error("missing success flash")
	}
	if !strings.Contains(body, "Career Guidance") || !strings.Contains(body, "Tuesday, January 2, 2024") {
		t.Error("new appointment not listed")
	}
}

func TestBookingNetworkError(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login("student")
	env.backend.with(func(f *fakeBackend) { f.down = true })

	env.post("/appointments", url.Values{"date": {"2024-01-02"}, "time": {"10:00 AM"}, "concern": {"Career"}})
	_, body := env.get("/dashboard")
	if !strings.Contains(body, "Network error. Please try again.") {
		t.Error("missing network flash")
	}
}

func TestAttendanceOnlyOnAppointmentDay(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.with(func(f *fakeBackend) {
		f.appts = []appointment.Appointment{
			{ID: "today", UserID: "1", Date: "2024-01-01", Status: appointment.StatusCompleted, PreferredTime: appointment.Slot0900, ConcernType: appointment.ConcernAcademic},
			{ID: "later", UserID: "1", Date: "2024-01-02", Status: appointment.StatusCompleted, PreferredTime: appointment.Slot0900, ConcernType: appointment.ConcernAcademic},
		}
	})
	env.login("student")

	_, body := env.get("/dashboard")
	if !strings.Contains(body, "/appointments/today/attended") {
		t.Error("attendance control missing for today's appointment")
	}
	if strings.Contains(body, "/appointments/later/attended") {
		t.Error("attendance control shown for tomorrow's appointment")
	}

	resp, _ := env.post("/appointments/later/attended", url.Values{"attended": {"true"}})
	expectRedirect(t, resp, "/dashboard")
	if _, called := env.backend.attendance("later"); called {
		t.Fatal("backend called for ineligible appointment")
	}

	resp, _ = env.post("/appointments/today/attended", url.Values{"attended": {"true"}})
	expectRedirect(t, resp, "/dashboard?day=2024-01-01")
	if attended, _ := env.backend.attendance("today"); !attended {
		t.Fatal("attendance not sent")
	}
	_, body = env.get("/dashboard")
	if !strings.Contains(body, "Attendance recorded") || !strings.Contains(body, "Attended") {
		t.Error("attendance not reflected")
	}
}

func TestAdminDeniedForStudent(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login("student")

	resp, body := env.get("/adminDashboard")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, AccessDeniedMessage) || !strings.Contains(body, `content="2;url=/dashboard"`) {
		t.Error("denied page incomplete")
	}

	resp, _ = env.post("/adminDashboard/appointments/x/status", url.Values{"status": {"Approved"}})
	if calls := env.backend.calls(); resp.StatusCode != http.StatusForbidden || len(calls) != 0 {
		t.Fatalf("student status update: %d %v", resp.StatusCode, calls)
	}
}

func seedAdmin(env *testEnv) {
	env.backend.with(func(f *fakeBackend) {
		f.appts = []appointment.Appointment{
			{ID: "a1", UserID: "1", Date: "2024-01-01", Status: appointment.StatusPending, PreferredTime: appointment.Slot0800, ConcernType: appointment.ConcernPersonal,
				UserInfo: &appointment.UserInfo{Username: "student", IDNumber: "2021001"}},
			{ID: "a2", UserID: "1", Date: "2024-01-01", Status: appointment.StatusApproved, PreferredTime: appointment.Slot1300, ConcernType: appointment.ConcernCareer},
			{ID: "a3", UserID: "2", Date: "2024-01-05", Status: appointment.StatusRejected, PreferredTime: appointment.Slot1600, ConcernType: appointment.ConcernOther},
		}
	})
	env.login("admin")
}

func TestAdminDashboardFilters(t *testing.T) {
	env := newTestEnv(t, nil)
	seedAdmin(env)

	_, body := env.get("/adminDashboard")
	if !strings.Contains(body, "2 appointment(s) on 2024-01-01") {
		t.Error("default filter should be today")
	}
	if !strings.Contains(body, "Unknown") || !strings.Contains(body, "N/A") {
		t.Error("missing student fallbacks")
	}

	_, body = env.get("/adminDashboard?status=Rejected&day=any")
	if !strings.Contains(body, "1 appointment(s)") || strings.Contains(body, "appointment(s) on") {
		t.Error("status filter without day")
	}
}

func TestAdminStatusGuardAndPatch(t *testing.T) {
	env := newTestEnv(t, nil)
	seedAdmin(env)
	env.get("/adminDashboard")
	fetches := env.backend.fetches()

	resp, _ := env.post("/adminDashboard/appointments/a1/status", url.Values{
		"status": {"Completed"}, "return": {"status=Pending&day=2024-01-01&evil=1"},
	})
	expectRedirect(t, resp, "/adminDashboard?day=2024-01-01&status=Pending")
	if calls := env.backend.calls(); len(calls) != 0 {
		t.Fatalf("guarded transition reached backend: %v", calls)
	}
	_, body := env.get("/adminDashboard")
	if !strings.Contains(body, "Pending appointments can only be approved or rejected.") {
		t.Error("missing guard message")
	}

	env.post("/adminDashboard/appointments/a1/status", url.Values{"status": {"Approved"}})
	if calls := env.backend.calls(); len(calls) != 1 || calls[0] != "a1=Approved" {
		t.Fatalf("statusCalls = %v", calls)
	}
	_, body = env.get("/adminDashboard?status=Approved")
	if !strings.Contains(body, "Appointment approved successfully!") {
		t.Error("missing success flash")
	}
	if !strings.Contains(body, "2 appointment(s) on 2024-01-01") {
		t.Error("approved appointment not listed")
	}
	// two page loads; both status posts check the list those pages fetched
	if n := env.backend.fetches(); n != fetches+2 {
		t.Errorf("list fetched %d times, want 2", n-fetches)
	}
}

func TestMutationsVisibleAcrossSessions(t *testing.T) {
	admin := newTestEnv(t, nil)
	seedAdmin(admin)
	student := admin.newSession()
	student.login("student")

	if _, body := admin.get("/adminDashboard?day=2024-01-03"); !strings.Contains(body, "0 appointment(s) on 2024-01-03") {
		t.Fatal("unexpected appointments on 2024-01-03")
	}
	const pendingA1, approvedA1 = ">Pending</span> 08:00 AM", ">Approved</span> 08:00 AM"
	if _, body := student.get("/dashboard"); !strings.Contains(body, pendingA1) {
		t.Fatal("student should start with a pending appointment")
	}

	resp, _ := student.post("/appointments", url.Values{
		"date": {"2024-01-03"}, "time": {"10:00 AM"}, "concern": {"Career"},
	})
	expectRedirect(t, resp, "/dashboard?day=2024-01-03")
	if _, body := admin.get("/adminDashboard?day=2024-01-03"); !strings.Contains(body, "1 appointment(s) on 2024-01-03") {
		t.Error("admin does not see the student's new booking")
	}

	admin.post("/adminDashboard/appointments/a1/status", url.Values{"status": {"Approved"}})
	_, body := student.get("/dashboard")
	if strings.Contains(body, pendingA1) || !strings.Contains(body, approvedA1) {
		t.Error("student does not see the admin's status change")
	}
}

func TestAdminFetchFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	seedAdmin(env)
	env.backend.with(func(f *fakeBackend) { f.down = true })

	_, body := env.get("/adminDashboard")
	if !strings.Contains(body, AdminFetchFailMessage) {
		t.Error("missing fetch failure message")
	}

	resp, _ := env.get("/adminDashboard/report")
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("report status = %d", resp.StatusCode)
	}
}

func TestReportDownload(t *testing.T) {
	env := newTestEnv(t, nil)
	seedAdmin(env)

	resp, body := env.get("/adminDashboard/report?type=approved")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "counseling_report_approved_2024-01-01.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	var rep appointment.Report
	if err := json.Unmarshal([]byte(body), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Title != "Approved Appointments" || rep.Total != 1 || rep.Appointments[0].ID != "a2" {
		t.Errorf("report = %+v", rep)
	}

	_, body = env.get("/adminDashboard/report?type=filtered&status=Pending&day=any")
	_ = json.Unmarshal([]byte(body), &rep)
	if rep.Title != "Filtered Appointments (Pending)" || rep.Total != 1 {
		t.Errorf("filtered report = %+v", rep)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, nil)
	env.login("student")

	resp, _ := env.post("/logout", nil)
	expectRedirect(t, resp, "/")
	resp, _ = env.get("/dashboard")
	expectRedirect(t, resp, "/")
}

func TestInfoPage(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, body := env.get("/info")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "<h2>About the System</h2>") {
		t.Fatalf("info page: %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, _ := env.get("/health/live")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("live = %d", resp.StatusCode)
	}

	env.backend.with(func(f *fakeBackend) { f.pingErr = backend.ErrNetwork })
	resp, body := env.get("/health/ready")
	var ready ReadinessResponse
	_ = json.Unmarshal([]byte(body), &ready)
	if resp.StatusCode != http.StatusOK || ready.Status != "degraded" || ready.Dependencies["backend"] != "down" {
		t.Errorf("ready = %d %+v", resp.StatusCode, ready)
	}
}

func TestLoginRateLimited(t *testing.T) {
	env := newTestEnv(t, func(c *RouterConfig) {
		c.RateLimit = 0.001
		c.RateBurst = 1
	})
	env.post("/login", url.Values{"username": {"student"}, "password": {"wrong"}})
	resp, body := env.post("/login", url.Values{"username": {"student"}, "password": {"wrong"}})
	if resp.StatusCode != http.StatusTooManyRequests || !strings.Contains(body, TooManyAttemptsMessage) {
		t.Fatalf("second attempt: %d", resp.StatusCode)
	}
}

func TestCSRFRejectsTokenlessPost(t *testing.T) {
	env := newTestEnv(t, func(c *RouterConfig) {
		c.CSRFKey = []byte(strings.Repeat("k", 32))
	})
	resp, body := env.get("/")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `name="gorilla.csrf.Token"`) {
		t.Fatalf("login page should carry a token field")
	}
	resp, _ = env.post("/login", url.Values{"username": {"student"}, "password": {"secret1"}})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("tokenless post = %d, want 403", resp.StatusCode)
	}
}

func TestAttendanceOnTimestampDate(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.with(func(f *fakeBackend) {
		f.appts = []appointment.Appointment{
			{ID: "stamped", UserID: "1", Date: "2024-01-01T00:00:00Z", Status: appointment.StatusApproved, PreferredTime: appointment.Slot0900, ConcernType: appointment.ConcernAcademic},
		}
	})
	env.login("student")

	if _, body := env.get("/dashboard"); !strings.Contains(body, "/appointments/stamped/attended") {
		t.Error("attendance control missing for timestamped date")
	}
	resp, _ := env.post("/appointments/stamped/attended", url.Values{"attended": {"true"}})
	expectRedirect(t, resp, "/dashboard?day=2024-01-01")
}
