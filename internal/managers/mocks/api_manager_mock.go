package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"
	"skillswap-web/internal/schemas"
)

// MockAPIManager is a mock of the APIManager.
// It implements managers.APIMgr and records every backend call made by the code under test.
type MockAPIManager struct {
	mock.Mock
	authFailure func(ctx context.Context)
}

func (m *MockAPIManager) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	args := m.Called(ctx, path, query)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockAPIManager) GetPublic(ctx context.Context, path string, query url.Values) ([]byte, error) {
	args := m.Called(ctx, path, query)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockAPIManager) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	args := m.Called(ctx, path, body)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockAPIManager) Patch(ctx context.Context, path string, body interface{}) ([]byte, error) {
	args := m.Called(ctx, path, body)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockAPIManager) Delete(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockAPIManager) Download(ctx context.Context, path string) (*schemas.Download, error) {
	args := m.Called(ctx, path)
	download, _ := args.Get(0).(*schemas.Download)
	return download, args.Error(1)
}

// OnAuthFailure stores the handler so tests can simulate a failed credential refresh.
func (m *MockAPIManager) OnAuthFailure(handler func(ctx context.Context)) {
	m.authFailure = handler
}

// TriggerAuthFailure invokes the registered auth failure handler.
func (m *MockAPIManager) TriggerAuthFailure(ctx context.Context) {
	if m.authFailure != nil {
		m.authFailure(ctx)
	}
}

// bytesArg accepts a []byte, a string or nil as the mocked response body.
func bytesArg(args mock.Arguments, index int) []byte {
	switch v := args.Get(index).(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}
