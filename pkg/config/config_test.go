package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhook = "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=abc-123"

func TestLoad(t *testing.T) {
	t.Setenv("WECHAT_WEBHOOK", testWebhook)

	cfg, err := Load()
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, testWebhook, cfg.WeCom.WebhookURL)
	assert.Equal(t, 6.0, cfg.Screening.MinMonthlyYield)
	assert.Equal(t, 30*time.Second, cfg.WeCom.UploadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WeCom.PostTimeout)
	assert.Equal(t, 20, cfg.WeCom.RatePerMinute)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.False(t, cfg.CSVExport)
	assert.Equal(t, "0 0 21 * * 1-5", cfg.Schedule)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("WECHAT_WEBHOOK", testWebhook)
	t.Setenv("ENV", "production")
	t.Setenv("MIN_MONTHLY_YIELD", "4.5")
	t.Setenv("CSV_EXPORT", "true")
	t.Setenv("UPLOAD_TIMEOUT", "45s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 4.5, cfg.Screening.MinMonthlyYield)
	assert.True(t, cfg.CSVExport)
	assert.Equal(t, 45*time.Second, cfg.WeCom.UploadTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateMissingWebhook(t *testing.T) {
	t.Setenv("WECHAT_WEBHOOK", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingWebhook))
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("WECHAT_WEBHOOK", testWebhook)
	t.Setenv("ENV", "invalid")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateNegativeYield(t *testing.T) {
	t.Setenv("WECHAT_WEBHOOK", testWebhook)
	t.Setenv("MIN_MONTHLY_YIELD", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFrom(t *testing.T) {
	t.Setenv("WECHAT_WEBHOOK", "")
	os.Unsetenv("WECHAT_WEBHOOK")
	t.Cleanup(func() { os.Unsetenv("OUTPUT_DIR") })

	path := filepath.Join(t.TempDir(), "screener.env")
	content := "WECHAT_WEBHOOK=" + testWebhook + "\nOUTPUT_DIR=/tmp/reports\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, testWebhook, cfg.WeCom.WebhookURL)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestReadFromSkipsValidation(t *testing.T) {
	t.Setenv("WECHAT_WEBHOOK", "")

	cfg, err := ReadFrom("")
	require.NoError(t, err)
	assert.Empty(t, cfg.WeCom.WebhookURL)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingWebhook)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")
	assert.Equal(t, 2*time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))

	t.Setenv("TEST_DURATION", "garbage")
	assert.Equal(t, time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "7.25")
	assert.Equal(t, 7.25, getEnvAsFloat("TEST_FLOAT", 6.0))

	t.Setenv("TEST_FLOAT", "abc")
	assert.Equal(t, 6.0, getEnvAsFloat("TEST_FLOAT", 6.0))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")
	assert.Equal(t, 100, getEnvAsInt("TEST_INT", 50))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
}
