package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
)

// Client calls the counseling backend's JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client. A zero timeout leaves requests bounded only by their context.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string           `json:"message,omitempty"`
	User    appointment.User `json:"user"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IDNumber  string `json:"id_number"`
	Birthdate string `json:"birthdate"`
}

type CreateAppointmentRequest struct {
	UserID        appointment.ID       `json:"user_id"`
	Date          string               `json:"date"`
	PreferredTime appointment.TimeSlot `json:"preferred_time"`
	ConcernType   appointment.Concern  `json:"concern_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type listResponse struct {
	Appointments []appointment.Appointment `json:"appointments"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (appointment.User, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return appointment.User{}, err
	}
	return resp.User, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListAppointments returns the user's appointments; a missing list decodes as empty.
func (c *Client) ListAppointments(ctx context.Context, userID appointment.ID) ([]appointment.Appointment, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/appointments/"+url.PathEscape(userID.String()), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Appointments == nil {
		return []appointment.Appointment{}, nil
	}
	return resp.Appointments, nil
}

func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/appointments", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) MarkAttended(ctx context.Context, id string, attended bool) (string, error) {
	body := struct {
		Attended bool `json:"attended"`
	}{attended}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPut, "/appointments/"+url.PathEscape(id)+"/attended", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ListAllAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/all-appointments", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Appointments == nil {
		return []appointment.Appointment{}, nil
	}
	return resp.Appointments, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status appointment.Status) (string, error) {
	body := struct {
		Status appointment.Status `json:"status"`
	}{status}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPut, "/appointments/"+url.PathEscape(id)+"/status", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Ping reports whether the backend answers HTTP at all; any status code counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}
	return nil
}

// errorMessage pulls "error", then "message", out of an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	switch v := body.Error.(type) {
	case string:
		if v != "" {
			return v
		}
	case nil:
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return body.Message
}
