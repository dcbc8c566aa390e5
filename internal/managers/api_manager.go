package managers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

const (
	DefaultAPIBaseURL = "http://localhost:8000/api"
	DefaultAPITimeout = 10 * time.Second

	refreshPath = "/auth/token/refresh/"
)

// ErrRefreshFailed is returned when the refresh endpoint did not issue a new access credential.
var ErrRefreshFailed = errors.New("credential refresh failed")

// APIMgr is the HTTP client adapter for the backend REST API.
// Get, Post, Patch, Delete and Download attach the stored access credential and
// refresh it once on a 401. GetPublic never sends credentials.
type APIMgr interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	GetPublic(ctx context.Context, path string, query url.Values) ([]byte, error)
	Post(ctx context.Context, path string, body interface{}) ([]byte, error)
	Patch(ctx context.Context, path string, body interface{}) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
	Download(ctx context.Context, path string) (*schemas.Download, error)
	OnAuthFailure(handler func(ctx context.Context))
}

// APIManager implements APIMgr on net/http.
type APIManager struct {
	baseURL       string
	httpClient    *http.Client
	storage       StorageMgr
	onAuthFailure func(ctx context.Context)
}

type apiRequest struct {
	method        string
	path          string
	query         url.Values
	body          interface{}
	authenticated bool
}

type apiResponse struct {
	status int
	header http.Header
	body   []byte
}

// NewAPIManager creates the adapter for one browser session. storage supplies and
// receives that session's credentials.
func NewAPIManager(baseURL string, timeout time.Duration, storage StorageMgr) *APIManager {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}

	return &APIManager{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		storage:    storage,
	}
}

// OnAuthFailure registers the handler invoked after a failed credential refresh
// has cleared the session.
func (am *APIManager) OnAuthFailure(handler func(ctx context.Context)) {
	am.onAuthFailure = handler
}

func (am *APIManager) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := am.send(ctx, apiRequest{method: http.MethodGet, path: path, query: query, authenticated: true}, 0)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

func (am *APIManager) GetPublic(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := am.send(ctx, apiRequest{method: http.MethodGet, path: path, query: query}, 0)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

func (am *APIManager) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	resp, err := am.send(ctx, apiRequest{method: http.MethodPost, path: path, body: body, authenticated: true}, 0)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

func (am *APIManager) Patch(ctx context.Context, path string, body interface{}) ([]byte, error) {
	resp, err := am.send(ctx, apiRequest{method: http.MethodPatch, path: path, body: body, authenticated: true}, 0)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

func (am *APIManager) Delete(ctx context.Context, path string) ([]byte, error) {
	resp, err := am.send(ctx, apiRequest{method: http.MethodDelete, path: path, authenticated: true}, 0)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// Download fetches a binary document. FileName is empty when the backend did
// not suggest one.
func (am *APIManager) Download(ctx context.Context, path string) (*schemas.Download, error) {
	resp, err := am.send(ctx, apiRequest{method: http.MethodGet, path: path, authenticated: true}, 0)
	if err != nil {
		return nil, err
	}

	download := &schemas.Download{
		ContentType: resp.header.Get("Content-Type"),
		Data:        resp.body,
	}
	if disposition := resp.header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			download.FileName = params["filename"]
		}
	}
	return download, nil
}

// send performs req. attempt counts the retries already made for req; only a
// first attempt answered with 401 may trigger a refresh and one retry.
func (am *APIManager) send(ctx context.Context, req apiRequest, attempt int) (*apiResponse, error) {
	resp, err := am.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized && req.authenticated && attempt == 0 {
		if refresh := am.storage.RefreshToken(ctx); refresh != "" {
			if err := am.refresh(ctx, refresh); err != nil {
				utils.LogMessageWithFieldsAndError(ctx, "warn", "Credential refresh failed, ending session", err)
				am.endSession(ctx)
				return nil, am.responseError(req, resp)
			}
			return am.send(ctx, req, attempt+1)
		}
	}

	if resp.status < 200 || resp.status >= 300 {
		return nil, am.responseError(req, resp)
	}
	return resp, nil
}

func (am *APIManager) roundTrip(ctx context.Context, req apiRequest) (*apiResponse, error) {
	target := am.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var payload io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", req.method, req.path, err)
		}
		payload = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if traceId := utils.TraceIdFromContext(ctx); traceId != "" {
		httpReq.Header.Set("X-Trace-Id", traceId)
	}
	if req.authenticated {
		if token := am.storage.AccessToken(ctx); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	utils.LogMessageWithFields(ctx, "debug", fmt.Sprintf("Calling backend %s %s", req.method, req.path))
	httpResp, err := am.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", req.method, req.path, err)
	}

	return &apiResponse{
		status: httpResp.StatusCode,
		header: httpResp.Header,
		body:   body,
	}, nil
}

// refresh exchanges the refresh credential for a new access credential and
// persists it, together with a rotated refresh credential when one is issued.
func (am *APIManager) refresh(ctx context.Context, refreshToken string) error {
	resp, err := am.roundTrip(ctx, apiRequest{
		method: http.MethodPost,
		path:   refreshPath,
		body:   schemas.RefreshTokenRequest{Refresh: refreshToken},
	})
	if err != nil {
		return err
	}
	if resp.status < 200 || resp.status >= 300 {
		return fmt.Errorf("%w: status %d", ErrRefreshFailed, resp.status)
	}

	var tokens schemas.TokenPairDTO
	if err := json.Unmarshal(resp.body, &tokens); err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	access := tokens.AccessCredential()
	if access == "" {
		return fmt.Errorf("%w: no access credential issued", ErrRefreshFailed)
	}

	return am.storage.SetTokens(ctx, access, tokens.RefreshCredential())
}

func (am *APIManager) endSession(ctx context.Context) {
	if err := am.storage.ClearSession(ctx); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Could not clear session storage", err)
	}
	if am.onAuthFailure != nil {
		am.onAuthFailure(ctx)
	}
}

func (am *APIManager) responseError(req apiRequest, resp *apiResponse) *schemas.ResponseError {
	return &schemas.ResponseError{
		Method: req.method,
		Path:   req.path,
		Status: resp.status,
		Body:   resp.body,
	}
}
