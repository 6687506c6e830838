package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		offset, limit, err := ParsePagination(testContextWithQuery(t, ""))
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		offset, limit, err := ParsePagination(testContextWithQuery(t, "offset=20&limit=10"))
		require.NoError(t, err)
		assert.Equal(t, 20, offset)
		assert.Equal(t, 10, limit)
	})

	t.Run("NegativeOffset", func(t *testing.T) {
		_, _, err := ParsePagination(testContextWithQuery(t, "offset=-1"))
		assert.Error(t, err)
	})

	t.Run("LimitAboveMax", func(t *testing.T) {
		_, _, err := ParsePagination(testContextWithQuery(t, "limit=101"))
		assert.Error(t, err)
	})
}

func TestParseTimeQuery(t *testing.T) {
	t.Run("Absent", func(t *testing.T) {
		parsed, err := ParseTimeQuery(testContextWithQuery(t, ""), "created_at_from")
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("ValidRFC3339ConvertedToUTC", func(t *testing.T) {
		parsed, err := ParseTimeQuery(
			testContextWithQuery(t, "created_at_from=2026-02-01T10:00:00%2B05:30"),
			"created_at_from",
		)
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, time.UTC, parsed.Location())
		assert.Equal(t, time.Date(2026, 2, 1, 4, 30, 0, 0, time.UTC), *parsed)
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		_, err := ParseTimeQuery(testContextWithQuery(t, "created_at_from=02/01/2026"), "created_at_from")
		assert.Error(t, err)
	})
}
