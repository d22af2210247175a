package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const worklogPathFormat = "/rest/api/3/issue/%s/worklog"

// Client is the worklog submission surface of the Jira REST API v3.
type Client interface {
	AddWorklog(ctx context.Context, taskID string, payload WorklogPayload) Outcome
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	Username   string
	APIToken   string
	UserAgent  string
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	username   string
	apiToken   string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.APIToken) == "" {
		return nil, errors.New("username and API token are required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		username:   strings.TrimSpace(cfg.Username),
		apiToken:   strings.TrimSpace(cfg.APIToken),
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

// CommentText, CommentParagraph and CommentDoc mirror the rich-text
// document envelope Jira requires verbatim: the type and version markers
// must not change.
type CommentText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CommentParagraph struct {
	Type    string        `json:"type"`
	Content []CommentText `json:"content"`
}

type CommentDoc struct {
	Type    string             `json:"type"`
	Version int                `json:"version"`
	Content []CommentParagraph `json:"content"`
}

// NewCommentDoc wraps free text as a single plain-text paragraph.
func NewCommentDoc(text string) CommentDoc {
	return CommentDoc{
		Type:    "doc",
		Version: 1,
		Content: []CommentParagraph{
			{
				Type:    "paragraph",
				Content: []CommentText{{Type: "text", Text: text}},
			},
		},
	}
}

// Visibility restricts who may view a worklog entry.
type Visibility struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type WorklogPayload struct {
	Comment          CommentDoc  `json:"comment"`
	Started          string      `json:"started"`
	TimeSpentSeconds int         `json:"timeSpentSeconds"`
	Visibility       *Visibility `json:"visibility,omitempty"`
}

// NewWorklogPayload builds the submission body for one record. When
// visibilityGroup is empty the visibility field is omitted entirely, not
// sent as null.
func NewWorklogPayload(description, started string, timeSpentSeconds int, visibilityGroup string) WorklogPayload {
	payload := WorklogPayload{
		Comment:          NewCommentDoc(description),
		Started:          started,
		TimeSpentSeconds: timeSpentSeconds,
	}
	if strings.TrimSpace(visibilityGroup) != "" {
		payload.Visibility = &Visibility{Type: "group", Identifier: strings.TrimSpace(visibilityGroup)}
	}
	return payload
}

// OutcomeKind is the closed set of submission results.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeBadRequest
	OutcomeUnauthorized
	OutcomeNotFound
	OutcomeTooLarge
	OutcomeTransportError
	OutcomeOtherFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeBadRequest:
		return "bad_request"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTooLarge:
		return "too_large"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeOtherFailure:
		return "other_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the per-record submission result. Failures are reported, not
// raised: callers decide aggregation and exit-code policy.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Message    string
}

func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

func (c *HTTPClient) AddWorklog(ctx context.Context, taskID string, payload WorklogPayload) Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Kind: OutcomeOtherFailure, Message: fmt.Sprintf("marshal worklog payload: %v", err)}
	}

	endpoint := c.baseURL + fmt.Sprintf(worklogPathFormat, url.PathEscape(taskID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: OutcomeOtherFailure, Message: fmt.Sprintf("create worklog request: %v", err)}
	}

	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Outcome{Kind: OutcomeTransportError, Message: err.Error()}
	}
	defer resp.Body.Close()

	responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return interpretResponse(resp.StatusCode, responseBody)
}

func interpretResponse(statusCode int, body []byte) Outcome {
	switch statusCode {
	case http.StatusCreated:
		return Outcome{Kind: OutcomeSuccess, StatusCode: statusCode}
	case http.StatusBadRequest:
		return Outcome{Kind: OutcomeBadRequest, StatusCode: statusCode, Message: serverMessage(body)}
	case http.StatusUnauthorized:
		return Outcome{Kind: OutcomeUnauthorized, StatusCode: statusCode, Message: "unauthorized: check your authentication credentials"}
	case http.StatusNotFound:
		return Outcome{Kind: OutcomeNotFound, StatusCode: statusCode, Message: "issue not found or insufficient permissions"}
	case http.StatusRequestEntityTooLarge:
		return Outcome{Kind: OutcomeTooLarge, StatusCode: statusCode, Message: "worklog size or count limit exceeded"}
	default:
		return Outcome{Kind: OutcomeOtherFailure, StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
	}
}

func serverMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Message) != "" {
		return strings.TrimSpace(parsed.Message)
	}
	return "bad request: no additional information provided"
}
