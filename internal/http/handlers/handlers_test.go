package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-crm-backend/internal/domain"
	"github.com/tbourn/go-crm-backend/internal/services"
)

// newAPI builds a minimal Gin engine with the real service stack over a
// throwaway sqlite database, mounting the same routes the production router
// registers under /api/v1. Middleware is intentionally absent: these tests
// exercise handler behavior, not the pipeline.
func newAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "handlers.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(&domain.Operator{}, &domain.Source{}, &domain.User{}, &domain.Weight{}, &domain.Request{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	dist := services.NewDistributionService(db)
	h := New(
		services.NewOperatorService(db),
		services.NewSourceService(db),
		services.NewRequestService(db, dist),
		services.NewStatsService(db),
	)

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.POST("/operators", h.CreateOperator)
		api.GET("/operators", h.ListOperators)
		api.PUT("/operators/:id", h.UpdateOperator)
		api.PUT("/operators/:id/toggle-active", h.ToggleOperatorActive)
		api.DELETE("/operators/:id", h.DeleteOperator)

		api.POST("/sources", h.CreateSource)
		api.GET("/sources", h.ListSources)
		api.POST("/sources/:id/operators", h.ConfigureSourceWeights)
		api.GET("/sources/:id/operators", h.ListSourceWeights)
		api.DELETE("/sources/:id", h.DeleteSource)

		api.POST("/requests", h.CreateRequest)
		api.GET("/requests", h.ListRequests)
		api.GET("/requests/:id", h.GetRequest)
		api.POST("/requests/:id/release", h.ReleaseRequest)

		api.GET("/stats/operators-load", h.OperatorsLoad)
		api.GET("/stats/requests-distribution", h.RequestsDistribution)
	}
	return r, db
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorder body into out, failing the test on error.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// errCode extracts the stable error code from an error envelope.
func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e ErrorResponse
	decode(t, w, &e)
	return e.Code
}

// mustCreateOperator creates an operator through the API and returns it.
func mustCreateOperator(t *testing.T, r *gin.Engine, name string, maxLoad int) domain.Operator {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/operators",
		`{"name":"`+name+`","max_load_limit":`+strconv.Itoa(maxLoad)+`}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create operator %q: %d %s", name, w.Code, w.Body.String())
	}
	var op domain.Operator
	decode(t, w, &op)
	return op
}

// mustCreateSource creates a source through the API and returns it.
func mustCreateSource(t *testing.T, r *gin.Engine, name, identifier string) domain.Source {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/sources",
		`{"name":"`+name+`","identifier":"`+identifier+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create source %q: %d %s", name, w.Code, w.Body.String())
	}
	var src domain.Source
	decode(t, w, &src)
	return src
}

// uitoa renders an id for use in request paths.
func uitoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

