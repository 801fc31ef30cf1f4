package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsService(t *testing.T) (*PDFService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	svc := NewPDFService(testPDFCfg(), rdb)
	return svc, mr
}

func TestRecordRenderIncrementsCounters(t *testing.T) {
	svc, mr := newStatsService(t)
	stub := &stubRender{pdf: []byte("%PDF")}
	svc.render = stub.render

	app := fiber.New()
	app.Post("/pdf", svc.HandleExamPaperPDF)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/pdf", strings.NewReader(samplePaperJSON))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	total, err := mr.Get(renderTotalKey)
	require.NoError(t, err)
	assert.Equal(t, "3", total)

	bySubject, err := mr.Get(renderSubjectPrefix + "maths")
	require.NoError(t, err)
	assert.Equal(t, "3", bySubject)
}

func TestRecordRenderSkipsFailedRenders(t *testing.T) {
	svc, mr := newStatsService(t)
	svc.render = (&stubRender{err: assert.AnError}).render

	app := fiber.New()
	app.Post("/pdf", svc.HandleExamPaperPDF)

	req := httptest.NewRequest("POST", "/pdf", strings.NewReader(samplePaperJSON))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.False(t, mr.Exists(renderTotalKey))
}

func TestHandleRenderStats(t *testing.T) {
	svc, mr := newStatsService(t)
	mr.Set(renderTotalKey, "7")
	mr.Set(renderSubjectPrefix+"maths", "4")
	mr.Set(renderSubjectPrefix+"english", "3")

	app := fiber.New()
	app.Get("/stats", svc.HandleRenderStats)

	resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got struct {
		Enabled  bool             `json:"enabled"`
		Total    int64            `json:"total"`
		Subjects map[string]int64 `json:"subjects"`
	}
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &got))

	assert.True(t, got.Enabled)
	assert.Equal(t, int64(7), got.Total)
	assert.Equal(t, map[string]int64{"maths": 4, "english": 3}, got.Subjects)
}

func TestHandleRenderStatsEmpty(t *testing.T) {
	svc, _ := newStatsService(t)

	app := fiber.New()
	app.Get("/stats", svc.HandleRenderStats)

	resp, _ := app.Test(httptest.NewRequest("GET", "/stats", nil), -1)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"enabled":true`)
	assert.Contains(t, string(body), `"total":0`)
}

func TestHandleRenderStatsNoRedis(t *testing.T) {
	svc := NewPDFService(testPDFCfg(), nil)

	app := fiber.New()
	app.Get("/stats", svc.HandleRenderStats)

	resp, _ := app.Test(httptest.NewRequest("GET", "/stats", nil), -1)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"enabled":false`)
}
