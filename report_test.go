package callz

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.00ms"},
		{-time.Second, "0.00ms"},
		{4 * time.Microsecond, "0.00ms"},
		{1500 * time.Microsecond, "1.50ms"},
		{88780 * time.Microsecond, "88.78ms"},
		{250500 * time.Microsecond, "250.5ms"},
		{999400 * time.Microsecond, "999.4ms"},
		{time.Second, "1.00s"},
		{2070 * time.Millisecond, "2.07s"},
		{42500 * time.Millisecond, "42.5s"},
		{6 * time.Minute, "360s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestTallyLine(t *testing.T) {
	tally := Tally{Key: "k", Name: "pkg.sleep", Count: 3, Total: 60 * time.Millisecond}

	assert.Equal(t, "pkg.sleep took 30.00ms; 3 calls, avg 20.00ms, total 60.00ms", TallyLine(30*time.Millisecond, tally))
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "pkg.sleep: 3 calls, total 60.00ms, avg 20.00ms",
		SummaryLine(Tally{Name: "pkg.sleep", Count: 3, Total: 60 * time.Millisecond}))
	assert.Equal(t, "pkg.once: 1 call, total 2.50s, avg 2.50s",
		SummaryLine(Tally{Name: "pkg.once", Count: 1, Total: 2500 * time.Millisecond}))
}

func TestRegistryLog(t *testing.T) {
	reg := NewRegistry()
	sink := &recordSink{}

	reg.Log(sink, zerolog.InfoLevel)
	assert.Equal(t, []string{"no tallied calls"}, sink.Lines())

	for _, ms := range []int{10, 20, 30} {
		reg.Record("sleep", "sleep", time.Duration(ms)*time.Millisecond)
	}
	reg.Record("other", "other", time.Second)

	sink = &recordSink{}
	reg.Log(sink, zerolog.DebugLevel)

	assert.Equal(t, []string{
		"sleep: 3 calls, total 60.00ms, avg 20.00ms",
		"other: 1 call, total 1.00s, avg 1.00s",
	}, sink.Lines())
	assert.Equal(t, []zerolog.Level{zerolog.DebugLevel, zerolog.DebugLevel}, sink.Levels())
}

func TestRegistryLogContainsSinkPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Record("k", "k", time.Millisecond)

	assert.NotPanics(t, func() {
		reg.Log(SinkFunc(func(string) { panic("down") }), zerolog.InfoLevel)
	})
}

func TestLogTallies(t *testing.T) {
	reg := NewRegistry()
	clock := clockz.NewFakeClock()
	d, err := NewTally(WithRegistry(reg), WithClock(clock), WithName("pkg.sleep"))
	require.NoError(t, err)

	var delay time.Duration
	sleep := Action(d, func() { clock.Advance(delay) })
	for _, ms := range []int{10, 20, 30} {
		delay = time.Duration(ms) * time.Millisecond
		sleep()
	}

	sink := &recordSink{}
	LogTallies(WithRegistry(reg), WithSink(sink))

	assert.Equal(t, []string{"pkg.sleep: 3 calls, total 60.00ms, avg 20.00ms"}, sink.Lines())
	assert.Equal(t, []zerolog.Level{zerolog.InfoLevel}, sink.Levels())
}

func TestLogTalliesUsesDefaultRegistry(t *testing.T) {
	key := "callz_test.logTallies"
	DefaultRegistry().Record(key, "logTallies", 5*time.Millisecond)

	var lines []string
	LogTallies(WithLogFunc(func(line string) { lines = append(lines, line) }), WithLevel(zerolog.DebugLevel))

	assert.Contains(t, lines, "logTallies: 1 call, total 5.00ms, avg 5.00ms")
	got, ok := DefaultRegistry().Get(key)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Count)
}
