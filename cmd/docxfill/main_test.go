package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-docxfill/pkg/filler"
	"github.com/benjaminschreck/go-docxfill/pkg/filler/archive"
	"github.com/benjaminschreck/go-docxfill/pkg/filler/i18n"
)

type fixture struct {
	dir      string
	config   string
	template string
}

func newFixture(t *testing.T, document string) fixture {
	t.Helper()
	dir := t.TempDir()

	config := filepath.Join(dir, "docxfill.toml")
	require.NoError(t, os.WriteFile(config, []byte("log_level = \"error\"\n"), 0o644))

	template := filepath.Join(dir, "template.docx")
	require.NoError(t, archive.Write(template, archive.Entries{"[Content_Types].xml": "<Types/>"}, filler.PrimaryEntry, document))

	return fixture{dir: dir, config: config, template: template}
}

func run(t *testing.T, f fixture, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	full := append([]string{"docxfill", "--config", f.config}, args...)
	err := app.Run(full)
	return stdout.String(), stderr.String(), err
}

func TestTokensCommand(t *testing.T) {
	f := newFixture(t, "Hello {{name}} from {{city}}")

	t.Run("text", func(t *testing.T) {
		out, _, err := run(t, f, "tokens", f.template)
		require.NoError(t, err)
		assert.Equal(t, "{{name}}\n{{city}}\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, f, "tokens", "--format", "json", f.template)
		require.NoError(t, err)
		assert.JSONEq(t, `["{{name}}","{{city}}"]`, out)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := run(t, f, "tokens", "-f", "yaml", f.template)
		require.NoError(t, err)
		var got []string
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, []string{"{{name}}", "{{city}}"}, got)
	})

	t.Run("missing template is localized", func(t *testing.T) {
		_, _, err := run(t, f, "--lang", "cs", "tokens", filepath.Join(f.dir, "missing.docx"))
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "Načtení šablony selhalo. Nelze přistoupit"), err.Error())
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("batch from flag", func(t *testing.T) {
		f := newFixture(t, "Hello {{name}} from {{city}}")
		out, _, err := run(t, f, "generate", "--values", "Ada;Paris\nBob;Rome", "--out-dir", f.dir, f.template)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Equal(t, []string{filepath.Join(f.dir, "Ada.docx"), filepath.Join(f.dir, "Bob.docx")}, lines)

		entries, err := archive.Load(filepath.Join(f.dir, "Bob.docx"))
		require.NoError(t, err)
		assert.Equal(t, "Hello Bob from Rome", entries[filler.PrimaryEntry])
	})

	t.Run("success is reported", func(t *testing.T) {
		f := newFixture(t, "Hello {{name}} from {{city}}")
		_, stderr, err := run(t, f, "--log-level", "info", "generate", "--values", "Ada;Paris\nBob;Rome", "--out-dir", f.dir, f.template)
		require.NoError(t, err)
		assert.Contains(t, stderr, "Success: Generated 2 document(s).")
	})

	t.Run("template without placeholders fails to load", func(t *testing.T) {
		f := newFixture(t, "no placeholders here")
		_, _, err := run(t, f, "generate", "--values", "Ada", f.template)
		require.Error(t, err)
		assert.Equal(t, "Loading the template failed. No tokens found in the template.", err.Error())
	})

	t.Run("token order and file input", func(t *testing.T) {
		f := newFixture(t, "Hello {{name}} from {{city}}")
		values := filepath.Join(f.dir, "values.txt")
		require.NoError(t, os.WriteFile(values, []byte("Paris | Ada\n"), 0o644))

		_, _, err := run(t, f, "generate",
			"--tokens", "city,{{name}}",
			"--values-file", values,
			"--separator", "|",
			"--output", filepath.Join(f.dir, "{{city}}-{{name}}.docx"),
			f.template)
		require.NoError(t, err)

		entries, err := archive.Load(filepath.Join(f.dir, "Paris-Ada.docx"))
		require.NoError(t, err)
		assert.Equal(t, "Hello Ada from Paris", entries[filler.PrimaryEntry])
	})

	t.Run("line error is localized", func(t *testing.T) {
		f := newFixture(t, "Hello {{name}} from {{city}}")
		_, _, err := run(t, f, "generate", "--values", "Ada;Paris\nBob", "--out-dir", f.dir, f.template)
		require.Error(t, err)
		assert.Equal(t, "Failure: Line 2: Number of values (1) does not match number of tokens (2).", err.Error())

		matches, _ := filepath.Glob(filepath.Join(f.dir, "*.docx"))
		assert.Len(t, matches, 1)
	})

	t.Run("no values", func(t *testing.T) {
		f := newFixture(t, "{{name}}")
		_, _, err := run(t, f, "--lang", "ru", "generate", f.template)
		require.Error(t, err)
		assert.Equal(t, "Ошибка: Нет входных значений.", err.Error())
	})

	t.Run("conflicting value sources", func(t *testing.T) {
		f := newFixture(t, "{{name}}")
		_, _, err := run(t, f, "generate", "--values", "a", "--values-file", "x.txt", f.template)
		assert.Error(t, err)
	})
}

func TestResolveTokens(t *testing.T) {
	var buf bytes.Buffer
	e := &env{
		logger:  filler.NewLogger(&buf, "warn", "json"),
		catalog: mustCatalog(t),
		locale:  "en-US",
	}
	discovered := filler.TokenPack{"{{name}}", "{{city}}"}

	assert.Equal(t, discovered, resolveTokens(e, nil, discovered))
	assert.Equal(t, filler.TokenPack{"{{city}}", "{{name}}"}, resolveTokens(e, []string{"city", " {{name}} "}, discovered))
	assert.Empty(t, buf.String())

	got := resolveTokens(e, []string{"nme"}, discovered)
	assert.Equal(t, filler.TokenPack{"{{nme}}"}, got)
	assert.Contains(t, buf.String(), "did you mean {{name}}")
}

func TestConfigValidateRejectsBrokenDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docxfill.toml"), []byte("separator = \"|\nworkers = 3\n"), 0o644))

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run([]string{"docxfill", "config", "validate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
	assert.NotContains(t, stdout.String(), "Configuration is valid")
}

func TestConfigCommands(t *testing.T) {
	f := newFixture(t, "{{a}}")
	path := filepath.Join(f.dir, "new.toml")

	out, _, err := run(t, f, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, _, err = run(t, f, "config", "init", "--output", path)
	assert.Error(t, err)

	out, _, err = run(t, f, "config", "validate")
	require.NoError(t, err)
	assert.Equal(t, "Configuration is valid\n", out)
}

func mustCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.New()
	require.NoError(t, err)
	return c
}
