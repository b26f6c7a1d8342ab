package callz

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

const sampleConfig = `
level: debug
show_args: false
truncate_length: 80
if_slower_than: 250ms
show_returns_only: true
tally: true
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Level)
	require.NotNil(t, cfg.ShowArgs)
	assert.False(t, *cfg.ShowArgs)
	assert.Nil(t, cfg.ShowReturnValue)
	assert.Equal(t, 80, cfg.Truncate)
	require.NotNil(t, cfg.SlowerThan)
	assert.Equal(t, 250*time.Millisecond, *cfg.SlowerThan)
	assert.True(t, cfg.ReturnsOnly)
	assert.True(t, cfg.Tally)
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	_, err := ParseConfig([]byte("level: [debug"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("if_slower_than: soon"))
	assert.Error(t, err)
}

func TestConfigOptionsBuildDecorator(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	opts, err := cfg.Options()
	require.NoError(t, err)

	sink := &recordSink{}
	reg := NewRegistry()
	d, err := New(append(opts, WithSink(sink), WithRegistry(reg), WithName("cfg"))...)
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, d.cfg.level)
	assert.False(t, d.cfg.showArgs)
	assert.Equal(t, 80, d.cfg.truncate)
	assert.Equal(t, 250*time.Millisecond, d.cfg.slowerThan)
	assert.True(t, d.cfg.gated)
	assert.True(t, d.cfg.tally)

	Func2(d, add)(1, 2)
	assert.Empty(t, sink.Lines())
	assert.Equal(t, 1, reg.Len())
}

func TestConfigInvalidLevel(t *testing.T) {
	_, err := Config{Level: "loud"}.Options()
	require.ErrorIs(t, err, ErrInvalidLevel)
}

func TestConfigConflictsSurfaceInNew(t *testing.T) {
	opts, err := Config{CallsOnly: true, ReturnsOnly: true}.Options()
	require.NoError(t, err)

	_, err = New(opts...)
	require.ErrorIs(t, err, ErrConflictingOptions)
}

func TestConfigWithEnv(t *testing.T) {
	t.Setenv("CALLZ_LEVEL", "WARN")
	t.Setenv("CALLZ_TRUNCATE", "32")
	t.Setenv("CALLZ_SLOWER_THAN", "1s")
	t.Setenv("CALLZ_DISABLE", "true")

	cfg := Config{Level: "debug", Truncate: 80}.WithEnv()

	assert.Equal(t, "WARN", cfg.Level)
	assert.Equal(t, 32, cfg.Truncate)
	require.NotNil(t, cfg.SlowerThan)
	assert.Equal(t, time.Second, *cfg.SlowerThan)
	assert.True(t, cfg.Disabled)

	opts, err := cfg.Options()
	require.NoError(t, err)
	d, err := New(opts...)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, d.cfg.level)
	assert.True(t, d.cfg.disabled)
}

func TestConfigWithEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("CALLZ_TRUNCATE", "lots")
	t.Setenv("CALLZ_SLOWER_THAN", "later")

	cfg := Config{Truncate: 80}.WithEnv()

	assert.Equal(t, 80, cfg.Truncate)
	assert.Nil(t, cfg.SlowerThan)
}

func TestConfigZeroThresholdIsKept(t *testing.T) {
	cfg, err := ParseConfig([]byte("if_slower_than: 0s\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.SlowerThan)
	assert.Zero(t, *cfg.SlowerThan)

	opts, err := cfg.Options()
	require.NoError(t, err)

	sink := &recordSink{}
	d, err := New(append(opts, WithSink(sink), WithRegistry(NewRegistry()), WithClock(clockz.NewFakeClock()), WithName("add"))...)
	require.NoError(t, err)
	assert.True(t, d.cfg.gated)

	Func2(d, add)(2, 3)
	assert.Equal(t, []string{"← add(2, 3) took 0.00ms, returned 5"}, sink.Lines())
}

func TestConfigWithEnvZeroThreshold(t *testing.T) {
	t.Setenv("CALLZ_SLOWER_THAN", "0s")

	cfg := Config{}.WithEnv()

	require.NotNil(t, cfg.SlowerThan)
	assert.Zero(t, *cfg.SlowerThan)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "callz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
