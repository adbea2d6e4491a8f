package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(configpkg.Config{Environment: "production"}, &buf)
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger.Debug().Msg("hidden")
	logger.Info().Str("account_id", "C1").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "visible", entry["message"])
	require.Equal(t, "C1", entry["account_id"])

	dev := NewLogger(configpkg.Config{Environment: "development"}, &buf)
	require.Equal(t, zerolog.TraceLevel, dev.GetLevel())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusNoContent)
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	testCases := []struct {
		name           string
		path           string
		requestID      string
		wantStatusCode int
		wantLevel      string
	}{
		{
			name:           "GeneratesRequestID",
			path:           "/ping",
			wantStatusCode: http.StatusNoContent,
			wantLevel:      "info",
		},
		{
			name:           "KeepsRequestID",
			path:           "/ping",
			requestID:      "req-1",
			wantStatusCode: http.StatusNoContent,
			wantLevel:      "info",
		},
		{
			name:           "RecoversPanic",
			path:           "/panic",
			requestID:      "req-2",
			wantStatusCode: http.StatusInternalServerError,
			wantLevel:      "error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.requestID != "" {
				req.Header.Set(RequestIDHeader, tc.requestID)
			}

			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			gotID := recorder.Header().Get(RequestIDHeader)
			require.NotEmpty(t, gotID)

			if tc.requestID != "" {
				require.Equal(t, tc.requestID, gotID)
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

			var last map[string]any
			require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
			require.Equal(t, gotID, last["request_id"])
			require.Equal(t, tc.wantLevel, last["level"])
			require.Equal(t, tc.path, last["path"])
			require.EqualValues(t, tc.wantStatusCode, last["status_code"])

			for _, line := range lines {
				require.Equal(t, 1, strings.Count(line, `"request_id"`))
			}
		})
	}
}
