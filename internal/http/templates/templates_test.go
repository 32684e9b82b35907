package templates

import (
	"net/http"
	"net/http/httptest"
	"nexuslink/internal/domain/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_AllPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, page := range pages {
		t.Run(page, func(t *testing.T) {
			rec := httptest.NewRecorder()
			var data any
			if page == PageDashboard {
				data = models.Dashboard{}
			}
			require.NoError(t, r.Render(rec, http.StatusOK, page, data))
			assert.Contains(t, rec.Body.String(), "<nav>")
		})
	}
}

func TestRenderer_Dashboard(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, PageDashboard, models.Dashboard{
		TotalClicks: 3,
		PeakHour:    "9:00",
		Devices:     []models.DeviceCount{{Device: "Mobile", Count: 3}},
		Links: []models.LinkSummary{{
			Link:     models.Link{Code: "abc234", Destination: "https://example.com/?q=<script>", CreatedAt: time.Now()},
			ShortURL: "http://localhost:8080/r/abc234",
			Clicks:   3,
		}},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, "9:00")
	assert.Contains(t, body, "Mobile")
	assert.Contains(t, body, "http://localhost:8080/r/abc234")
	assert.NotContains(t, body, "<script>\n")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(httptest.NewRecorder(), http.StatusOK, "missing", nil))
}
