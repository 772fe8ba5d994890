package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/alessandrv/FEC-mrp/internal/domain/watchlist"
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBOMSource implements planning.BOMSource for testing
type MockBOMSource struct {
	mock.Mock
}

func (m *MockBOMSource) GetBOMLinks(ctx context.Context, parentCode string) ([]planning.BOMLink, error) {
	args := m.Called(ctx, parentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planning.BOMLink), args.Error(1)
}

// MockArticleSource implements planning.ArticleSource for testing
type MockArticleSource struct {
	mock.Mock
}

func (m *MockArticleSource) GetArticleDescription(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// MockAvailabilitySource implements planning.AvailabilitySource for testing
type MockAvailabilitySource struct {
	mock.Mock
}

func (m *MockAvailabilitySource) GetAvailabilityBatch(ctx context.Context, codes []string) ([]planning.AvailabilityRow, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planning.AvailabilityRow), args.Error(1)
}

// MockWatchlistRepository implements watchlist.Repository for testing
type MockWatchlistRepository struct {
	mock.Mock
}

func (m *MockWatchlistRepository) List(ctx context.Context) ([]watchlist.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]watchlist.Entry), args.Error(1)
}

func (m *MockWatchlistRepository) FindByPosition(ctx context.Context, position int) (*watchlist.Entry, error) {
	args := m.Called(ctx, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*watchlist.Entry), args.Error(1)
}

func (m *MockWatchlistRepository) Create(ctx context.Context, entry *watchlist.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockWatchlistRepository) Update(ctx context.Context, entry *watchlist.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockWatchlistRepository) DeleteAndRenumber(ctx context.Context, position int) error {
	return m.Called(ctx, position).Error(0)
}

func (m *MockWatchlistRepository) Swap(ctx context.Context, a, b int) error {
	return m.Called(ctx, a, b).Error(0)
}

// newTestEngine returns an engine with the request id and validator
// middleware the server installs
func newTestEngine() *gin.Engine {
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	return engine
}

// serve performs a request against engine. body is JSON encoded unless it
// is already a string.
func serve(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}
