package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvService_LoadsFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EASYAPPLY_TEST_PHONE=111\nEASYAPPLY_TEST_EMAIL=a@b.c\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("EASYAPPLY_TEST_PHONE=222\n"), 0o644))

	t.Setenv("APP_ENV", "test")
	t.Setenv("EASYAPPLY_TEST_PHONE", "")
	t.Setenv("EASYAPPLY_TEST_EMAIL", "")
	require.NoError(t, os.Unsetenv("EASYAPPLY_TEST_PHONE"))
	require.NoError(t, os.Unsetenv("EASYAPPLY_TEST_EMAIL"))

	s, err := NewEnvService(dir)
	require.NoError(t, err)

	assert.Len(t, s.Loaded, 2)
	assert.Equal(t, "222", s.Get("EASYAPPLY_TEST_PHONE"))
	assert.Equal(t, "a@b.c", s.Get("EASYAPPLY_TEST_EMAIL"))
}

func TestNewEnvService_MissingFiles(t *testing.T) {
	t.Setenv("APP_ENV", "")

	s, err := NewEnvService(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, s.Loaded)
}

func TestEnvService_Getters(t *testing.T) {
	t.Setenv("EASYAPPLY_TEST_BOOL", "true")
	t.Setenv("EASYAPPLY_TEST_INT", "42")
	t.Setenv("EASYAPPLY_TEST_BAD", "nope")
	s := &EnvService{}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"bool", s.GetBool("EASYAPPLY_TEST_BOOL", false), true},
		{"bool default", s.GetBool("EASYAPPLY_TEST_UNSET", true), true},
		{"bool invalid", s.GetBool("EASYAPPLY_TEST_BAD", false), false},
		{"int", s.GetInt("EASYAPPLY_TEST_INT", 0), 42},
		{"int invalid", s.GetInt("EASYAPPLY_TEST_BAD", 7), 7},
		{"default", s.GetWithDefault("EASYAPPLY_TEST_UNSET", "x"), "x"},
		{"value", s.GetWithDefault("EASYAPPLY_TEST_INT", "x"), "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
