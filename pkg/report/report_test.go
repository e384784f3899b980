package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/aggregate"
	"github.com/hyp3rd/dailystats/pkg/stats"
)

func sampleReport(days int) *Report {
	rep := &Report{
		Strategy: constants.DivideStrategy,
		Value:    8,
		Runs:     3,
		Run:      3,
		Seed:     42,
		Timing: stats.Stats{
			Runs: 3,
			Last: 1500 * time.Millisecond,
			Min:  1250 * time.Millisecond,
		},
		Generated: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	for i := range days {
		rep.Days = append(rep.Days, aggregate.DailyStatistic{DayIndex: i, Mean: 75.5, Median: 74})
	}

	rep.Populated = len(rep.Days)

	return rep
}

func TestWrite_SummaryOnly(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, sampleReport(constants.DaysPerYear), false)
	assert.Nil(t, err)
	assert.Equal(t,
		"Last execution time: 1.500000000 s - Minimum execution time: 1.250000000 s - Executions: 3\n",
		buf.String())
}

func TestWrite_ShowData(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, sampleReport(constants.DaysPerYear), true)
	assert.Nil(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, constants.DaysPerYear+1, len(lines))
	assert.Equal(t, "0 of 365 - Average: 75.5 - Median: 74", lines[0])
	assert.Equal(t, "364 of 365 - Average: 75.5 - Median: 74", lines[364])
	assert.True(t, strings.HasPrefix(lines[365], "Last execution time:"))
}

func TestWrite_CoverageLine(t *testing.T) {
	rep := sampleReport(363)
	rep.Gaps = []Gap{{Begin: 31363200, End: constants.TotalTicks}}

	var buf bytes.Buffer

	assert.Nil(t, Write(&buf, rep, false))
	assert.True(t, strings.HasPrefix(buf.String(), "Coverage: 363 of 365 days populated, 1 range(s) skipped\n"))
	assert.False(t, rep.Complete())
}

func TestExport_Formats(t *testing.T) {
	rep := sampleReport(5)

	text, err := Export(rep, "text", false)
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(string(text), "Coverage: 5 of 365"))

	for _, format := range []string{"json", "msgpack", "cbor"} {
		data, err := Export(rep, format, false)
		assert.Nil(t, err)

		got, err := Decode(data, format)
		assert.Nil(t, err)
		assert.Equal(t, rep.Strategy, got.Strategy)
		assert.Equal(t, rep.Timing, got.Timing)
		assert.Equal(t, rep.Days, got.Days)
	}

	_, err = Export(rep, "xml", false)
	assert.True(t, errors.Is(err, sentinel.ErrSerializerNotFound))
}

func TestRedisPublisher_NilClient(t *testing.T) {
	_, err := NewRedisPublisher(nil)
	assert.True(t, errors.Is(err, sentinel.ErrNilClient))

	_, err = NewRedisClient(" ")
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))
}

func TestRedisPublisher_Publish(t *testing.T) {
	addr := os.Getenv("DAILYSTATS_REDIS_ADDR")
	if addr == "" {
		t.Skip("DAILYSTATS_REDIS_ADDR not set")
	}

	client, err := NewRedisClient(addr)
	assert.Nil(t, err)

	defer client.Close()

	ctx := context.Background()
	prefix := "dailystats-test-" + time.Now().Format("150405.000000")

	pub, err := NewRedisPublisher(client, WithKeyPrefix(prefix), WithHistoryLength(2))
	assert.Nil(t, err)

	defer client.Del(ctx, pub.LatestKey(constants.DivideStrategy), pub.HistoryKey(constants.DivideStrategy))

	for i := range 3 {
		rep := sampleReport(i + 1)
		assert.Nil(t, pub.Publish(ctx, rep))
	}

	latest, err := pub.Latest(ctx, constants.DivideStrategy)
	assert.Nil(t, err)
	assert.Equal(t, 3, latest.Populated)

	n, err := client.LLen(ctx, pub.HistoryKey(constants.DivideStrategy)).Result()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), n)
}
