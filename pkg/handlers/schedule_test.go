package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oryosefi2/shift-mind/pkg/metrics"
)

func TestGenerateSchedule_LoadFailureCountsError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// No migration: the employee query fails and the request ends with 500.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	h := &Handler{DB: db, Log: log}

	before := testutil.ToFloat64(metrics.GenerationsTotal.WithLabelValues("error"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "week", Value: "2025-W43"}}
	c.Set("businessID", "biz-1")
	c.Request = httptest.NewRequest(http.MethodPost, "/api/schedule/2025-W43/generate",
		strings.NewReader(`{"weekly_budget": 1000}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.GenerateSchedule(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	after := testutil.ToFloat64(metrics.GenerationsTotal.WithLabelValues("error"))
	assert.Equal(t, before+1, after)
}
