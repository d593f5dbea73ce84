package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"macrodash/src/api"
	"macrodash/src/config"
	"macrodash/src/schemas"
	"macrodash/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	png       []byte
	records   map[schemas.Indicator][]schemas.LongRecord
	growth    []schemas.GrowthShare
	err       error
	refreshes int
}

func (f *fakeController) LoadPrepared(context.Context) (*schemas.PreparedIndicators, error) {
	return nil, f.err
}

func (f *fakeController) RenderPNG(context.Context, *schemas.PreparedIndicators) ([]byte, error) {
	return f.png, f.err
}

func (f *fakeController) RenderToFile(context.Context, string) error { return f.err }

func (f *fakeController) Export(context.Context, string) error { return f.err }

func (f *fakeController) Refresh(context.Context) error {
	f.refreshes++
	return f.err
}

func (f *fakeController) DashboardPNG(context.Context) ([]byte, error) {
	return f.png, f.err
}

func (f *fakeController) IndicatorSeries(_ context.Context, indicator schemas.Indicator) ([]schemas.LongRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	records, ok := f.records[indicator]
	if !ok {
		return nil, utils.NotFound("unknown indicator %q", indicator)
	}
	return records, nil
}

func (f *fakeController) GrowthShares(context.Context) ([]schemas.GrowthShare, error) {
	return f.growth, f.err
}

func newTestServer(t *testing.T, controller *fakeController) *httptest.Server {
	t.Helper()
	cfg := &config.Config{Service: config.ServiceConfig{Port: "0"}}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := api.NewServer(cfg, controller, logger)
	require.NoError(t, err)
	t.Cleanup(server.Close)

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthcheck(t *testing.T) {
	ts := newTestServer(t, &fakeController{})

	res, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Im alive!", string(body))
}

func TestGetDashboard(t *testing.T) {
	ts := newTestServer(t, &fakeController{png: []byte("\x89PNG fake")})

	res, err := http.Get(ts.URL + "/api/dashboard.png")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG fake"), body)
}

func TestGetIndicator(t *testing.T) {
	v := 0.61
	controller := &fakeController{records: map[schemas.Indicator][]schemas.LongRecord{
		schemas.Education: {
			{Country: "China", Year: "2000", Label: "Education Index", Value: &v},
			{Country: "China", Year: "2003", Label: "Education Index"},
		},
	}}
	ts := newTestServer(t, controller)

	t.Run("known indicator", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/api/indicators/education")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var got []map[string]interface{}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "China", got[0]["country"])
		assert.Equal(t, 0.61, got[0]["value"])
		assert.Nil(t, got[1]["value"])
	})

	t.Run("unknown indicator", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/api/indicators/population")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestGetGrowth(t *testing.T) {
	controller := &fakeController{growth: []schemas.GrowthShare{
		{Country: "China", Percentage: 61.3},
		{Country: "Singapore", Percentage: math.NaN()},
	}}
	ts := newTestServer(t, controller)

	res, err := http.Get(ts.URL + "/api/growth")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got []map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, 61.3, got[0]["percentage"])
	assert.Nil(t, got[1]["percentage"])
}

func TestRefreshDashboard(t *testing.T) {
	controller := &fakeController{}
	ts := newTestServer(t, controller)

	res, err := http.Post(ts.URL+"/api/dashboard/refresh", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, controller.refreshes)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "timeout", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "http error", err: utils.ServiceUnavailable("not ready"), want: http.StatusServiceUnavailable},
		{name: "plain error", err: errors.New("sheet \"Health\" not found in workbook"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeController{err: tt.err})

			res, err := http.Get(ts.URL + "/api/dashboard.png")
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, tt.want, res.StatusCode)
			assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
		})
	}
}