package shouluclient

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
)

// Client is a minimal Shoulu HTTP API client.
type Client struct {
	BaseURL     string
	BasePath    string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:  baseURL,
		BasePath: "/v0",
		Timeout:  10 * time.Second,
	}
}

// Input is the birth data an ordination is derived from.
type Input struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Hour     string `json:"hour"`
	Gender   string `json:"gender"`
	Level    string `json:"level"`
	Vocation string `json:"vocation,omitempty"`
}

// Office is the three-part office assignment.
type Office struct {
	Verb      string `json:"verb"`
	Scripture string `json:"scripture"`
	Hall      string `json:"hall"`
	Palace    string `json:"palace"`
	Bureau    string `json:"bureau"`
	Authority string `json:"authority"`
}

type Marshal struct {
	Honorific  string `json:"honorific"`
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Invocation string `json:"invocation"`
}

// Result represents the derived certificate (partial).
type Result struct {
	Title            string  `json:"title"`
	HonorificTitle   string  `json:"honorific_title"`
	Office           Office  `json:"office"`
	OfficeText       string  `json:"office_text"`
	Altar            string  `json:"altar"`
	Jing             string  `json:"jing"`
	Governance       string  `json:"governance"`
	Marshal          Marshal `json:"marshal"`
	SecondaryMarshal Marshal `json:"secondary_marshal"`
	HeartMarshal     string  `json:"heart_marshal"`
	Troops           string  `json:"troops"`
	Department       string  `json:"department"`
	Scripture        string  `json:"scripture"`
	Rank             string  `json:"rank"`
}

// Record is a saved disciple.
type Record struct {
	Result
	ID        string `json:"id"`
	Name      string `json:"name"`
	LunarInfo string `json:"lunar_info"`
	Input     Input  `json:"input"`
	CreatedAt string `json:"created_at"`
}

type Sexagenary struct {
	Year   int    `json:"year"`
	Stem   string `json:"stem"`
	Branch string `json:"branch"`
	Name   string `json:"name"`
}

// ReportRequest selects the script; nil flags use the server defaults.
type ReportRequest struct {
	Input         Input  `json:"input"`
	Name          string `json:"name,omitempty"`
	Mode          string `json:"mode,omitempty"`
	CleanDuty     *bool  `json:"clean_duty,omitempty"`
	ShortMarshals *bool  `json:"short_marshals,omitempty"`
}

type Report struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Sexagenary resolves the stem-branch pair of a year.
func (c *Client) Sexagenary(ctx context.Context, year int) (Sexagenary, error) {
	var resp Sexagenary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("sexagenary/%d", year), nil, &resp)
	return resp, err
}

// Derive returns the ordination result for in.
func (c *Client) Derive(ctx context.Context, in Input) (Result, error) {
	var resp Result
	err := c.do(ctx, http.MethodPost, "ordinations", in, &resp)
	return resp, err
}

// Report returns the reporting text.
func (c *Client) Report(ctx context.Context, req ReportRequest) (Report, error) {
	var resp Report
	err := c.do(ctx, http.MethodPost, "ordinations/report", req, &resp)
	return resp, err
}

// ListPersonnel returns the saved roster.
func (c *Client) ListPersonnel(ctx context.Context) ([]Record, error) {
	var resp struct {
		Items []Record `json:"items"`
		Count int      `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "personnel", nil, &resp)
	return resp.Items, err
}

func (c *Client) GetPersonnel(ctx context.Context, id string) (Record, error) {
	var resp Record
	err := c.do(ctx, http.MethodGet, "personnel/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

// SavePersonnel derives and saves a disciple.
func (c *Client) SavePersonnel(ctx context.Context, name string, in Input) (Record, error) {
	body := map[string]any{"name": name, "input": in}
	var resp Record
	err := c.do(ctx, http.MethodPost, "personnel", body, &resp)
	return resp, err
}

// RemovePersonnel deletes a disciple; unknown ids succeed.
func (c *Client) RemovePersonnel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "personnel/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(b)}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(b, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if p := strings.Trim(c.BasePath, "/"); p != "" {
		base += "/" + p
	}
	return base
}
