package cliparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	// Blank out ambient env so host configuration cannot satisfy fallbacks.
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE",
		"JWT_SECRET", "LLM_API_KEY", "LLM_API_URL", "LLM_MODEL",
	} {
		t.Setenv(key, "")
	}

	t.Run("all flags provided", func(t *testing.T) {
		cfg, err := ParseFlags([]string{
			"-p", "9000",
			"-d", "postgres://localhost/tamer",
			"-t", "postgres",
			"-jwt-secret", "s3cret",
			"-llm-key", "sk-test",
		})
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, "postgres://localhost/tamer", cfg.DatabaseURL)
		assert.Equal(t, "postgres", cfg.DatabaseType)
		assert.Equal(t, "s3cret", cfg.JWTSecret)
		assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	})

	t.Run("defaults applied", func(t *testing.T) {
		cfg, err := ParseFlags([]string{
			"-d", "./tamer.db",
			"-jwt-secret", "s3cret",
			"-llm-key", "sk-test",
		})
		require.NoError(t, err)
		assert.Equal(t, 8090, cfg.Port)
		assert.Equal(t, "sqlite", cfg.DatabaseType)
		assert.Equal(t, "https://api.openai.com/v1", cfg.LLMAPIURL)
		assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	})

	t.Run("missing database URL", func(t *testing.T) {
		_, err := ParseFlags([]string{"-jwt-secret", "x", "-llm-key", "y"})
		assert.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		_, err := ParseFlags([]string{"-d", "./tamer.db", "-llm-key", "y"})
		assert.Error(t, err)
	})

	t.Run("missing llm key", func(t *testing.T) {
		_, err := ParseFlags([]string{"-d", "./tamer.db", "-jwt-secret", "x"})
		assert.Error(t, err)
	})

	t.Run("rejects unknown database type", func(t *testing.T) {
		_, err := ParseFlags([]string{
			"-d", "./tamer.db", "-t", "mongo",
			"-jwt-secret", "x", "-llm-key", "y",
		})
		assert.Error(t, err)
	})
}
