package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "admin@admin.com", cfg.AdminMail)
	assert.Equal(t, "admin", cfg.AdminPassword)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "it", cfg.Lang)
	assert.True(t, cfg.CSRF)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
}

func TestIniAndEnv(t *testing.T) {
	iniPath := writeFile(t, "blog.ini", `
admin_mail = boss@example.com
page_size = 10
base = /blog/
lang = en

[messages]
forbidden = Nope
`)

	t.Setenv("PAGE_ELEM_NUMBER", "7")
	t.Setenv("SECRET_KEY", "from-env")

	cfg, err := Load(iniPath, "")
	require.NoError(t, err)

	assert.Equal(t, "boss@example.com", cfg.AdminMail)
	assert.Equal(t, 7, cfg.PageSize, "environment overrides ini")
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, "/blog", cfg.Base)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "Nope", cfg.Messages["forbidden"])
}

func TestDotEnv(t *testing.T) {
	envPath := writeFile(t, ".env", "BLOG_ADMIN_PASSWORD=dotenv\nBLOG_CSRF=false\n")

	t.Setenv("BLOG_ADMIN_PASSWORD", "")
	os.Unsetenv("BLOG_ADMIN_PASSWORD")
	t.Cleanup(func() { os.Unsetenv("BLOG_CSRF") })

	cfg, err := Load("", envPath)
	require.NoError(t, err)

	assert.Equal(t, "dotenv", cfg.AdminPassword)
	assert.False(t, cfg.CSRF)
}

func TestInvalidPageSize(t *testing.T) {
	t.Setenv("PAGE_ELEM_NUMBER", "zero")
	_, err := Load("", "")
	assert.Error(t, err)

	t.Setenv("PAGE_ELEM_NUMBER", "0")
	_, err = Load("", "")
	assert.Error(t, err)
}

func TestNormalizeBase(t *testing.T) {
	assert.Equal(t, "", NormalizeBase(""))
	assert.Equal(t, "", NormalizeBase("/"))
	assert.Equal(t, "/blog", NormalizeBase("blog/"))
}
