package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("Unset Uses Default", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvString("EHR_TEST_UNSET_STRING", "fallback"))
		assert.Equal(t, 7, GetEnvInt("EHR_TEST_UNSET_INT", 7))
		assert.True(t, GetEnvBool("EHR_TEST_UNSET_BOOL", true))
	})

	t.Run("Blank Uses Default", func(t *testing.T) {
		t.Setenv("EHR_TEST_BLANK", "   ")
		assert.Equal(t, "fallback", GetEnvString("EHR_TEST_BLANK", "fallback"))
	})

	t.Run("Parses Values", func(t *testing.T) {
		t.Setenv("EHR_TEST_INT", "42")
		t.Setenv("EHR_TEST_BOOL", "false")
		assert.Equal(t, 42, GetEnvInt("EHR_TEST_INT", 0))
		assert.False(t, GetEnvBool("EHR_TEST_BOOL", true))
	})

	t.Run("Unparseable Uses Default", func(t *testing.T) {
		t.Setenv("EHR_TEST_INT", "forty")
		assert.Equal(t, 3, GetEnvInt("EHR_TEST_INT", 3))
	})

	t.Run("String Slice", func(t *testing.T) {
		t.Setenv("EHR_TEST_ORIGINS", "https://a.example, ,https://b.example")
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetEnvStringSlice("EHR_TEST_ORIGINS", nil))

		t.Setenv("EHR_TEST_ORIGINS", ",")
		assert.Equal(t, []string{"*"}, GetEnvStringSlice("EHR_TEST_ORIGINS", []string{"*"}))
	})
}
