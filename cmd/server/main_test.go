package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/config"
	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/workbook"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestBuildRouter_Healthz(t *testing.T) {
	router, err := buildRouter(config.Defaults(), nil, zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBuildRouter_UsesConfiguredTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, workbook.WriteTableFile(templatePath, "Tracker",
		records.NewTable([]string{"Account", "Day", "Slot"}, nil)))

	cfg := config.Defaults()
	cfg.TemplatePath = templatePath
	router, err := buildRouter(cfg, nil, zap.NewNop())
	require.NoError(t, err)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range map[string]string{"start_date": "2025-03-03", "end_date": "2025-03-04", "meetings": "2"} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("accounts", "accounts.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Companies,HQ City\nAcme,Riyadh\nBeta,Jeddah\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/trackers/preview", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Meetings []json.RawMessage `json:"meetings"`
			Trip     struct {
				City string `json:"city"`
			} `json:"trip"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Meetings, 2)
	assert.Equal(t, "Riyadh", resp.Data.Trip.City)
}

func TestBuildRouter_BadTemplate(t *testing.T) {
	cfg := config.Defaults()
	cfg.TemplatePath = filepath.Join(t.TempDir(), "missing.xlsx")
	_, err := buildRouter(cfg, nil, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), workbook.LabelTemplate)
}
