package dailystats

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	fiber "github.com/gofiber/fiber/v3"
	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
	"github.com/hyp3rd/dailystats/pkg/report"
	"github.com/hyp3rd/dailystats/pkg/stats"
)

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	assert.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	return resp.StatusCode, body
}

func TestManagementHTTP_Endpoints(t *testing.T) {
	bench, err := New(nil, NewConfig(constants.DivideStrategy,
		WithValue(2),
		WithSeed(testSeed),
		WithManagementHTTP("127.0.0.1:0"),
	))
	assert.NoError(t, err)

	defer func() { _ = bench.Stop(context.Background()) }()

	_, err = bench.Run(context.Background())
	assert.NoError(t, err)

	base := "http://" + bench.ManagementHTTPAddress()

	code, body := get(t, base+"/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", string(body))

	code, body = get(t, base+"/report")
	assert.Equal(t, http.StatusOK, code)

	var rep report.Report
	assert.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, constants.DivideStrategy, rep.Strategy)
	assert.Equal(t, constants.DaysPerYear, rep.Populated)
	assert.Equal(t, 1, rep.Timing.Runs)

	code, body = get(t, base+"/stats")
	assert.Equal(t, http.StatusOK, code)

	var timing struct {
		Timing       stats.Stats        `json:"timing"`
		Distribution stats.Distribution `json:"distribution"`
	}
	assert.NoError(t, json.Unmarshal(body, &timing))
	assert.Equal(t, 1, timing.Timing.Runs)
	assert.Equal(t, 1, timing.Distribution.Count)

	code, body = get(t, base+"/config")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(string(body), `"strategy":"divide"`))

	code, body = get(t, base+"/days/42")
	assert.Equal(t, http.StatusOK, code)

	var stat aggregate.DailyStatistic
	assert.NoError(t, json.Unmarshal(body, &stat))
	assert.Equal(t, 42, stat.DayIndex)

	code, _ = get(t, base+"/days/400")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, base+"/days/x")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestManagementHTTP_Auth(t *testing.T) {
	srv := NewManagementHTTPServer("127.0.0.1:0", WithMgmtAuth(func(c fiber.Ctx) error {
		if c.Get("Authorization") != "Bearer token" {
			return fiber.ErrUnauthorized
		}

		return nil
	}))
	assert.Equal(t, "", srv.Address())

	bench, err := New(nil, NewConfig(constants.SerialStrategy))
	assert.NoError(t, err)

	assert.NoError(t, srv.Start(context.Background(), bench))
	// idempotent
	assert.NoError(t, srv.Start(context.Background(), bench))

	defer func() { _ = srv.Shutdown(context.Background()) }()

	code, _ := get(t, "http://"+srv.Address()+"/health")
	assert.Equal(t, http.StatusUnauthorized, code)
}
