package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mbtidash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Country,ENFJ,ENFP,ENTJ,ENTP,ESFJ,ESFP,ESTJ,ESTP,INFJ,INFP,INTJ,INTP,ISFJ,ISFP,ISTJ,ISTP\n"

func writeData(t *testing.T) string {
	t.Helper()
	rows := []string{
		"Japan,0.01,0.02,0.03,0.04,0.05,0.06,0.07,0.08,0.09,0.10,0.20,0.01,0.01,0.01,0.01,0.01",
		"Chile,0.01,0.02,0.03,0.04,0.05,0.06,0.07,0.08,0.09,0.10,0.30,0.01,0.01,0.01,0.01,0.01",
		"South Korea,0.01,0.02,0.03,0.04,0.05,0.06,0.07,0.08,0.09,0.10,0.05,0.01,0.01,0.01,0.01,oops",
	}
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+strings.Join(rows, "\n")+"\n"), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCountries(t *testing.T) {
	out, stderr, err := run(t, "countries", "--file", writeData(t))

	require.NoError(t, err)
	assert.Equal(t, "Japan\nChile\nSouth Korea\n", out)
	assert.Contains(t, stderr, "Column 'ISTP' contains non-numeric values")
}

func TestCountry(t *testing.T) {
	out, _, err := run(t, "country", "Japan", "--file", writeData(t))

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 16)
	assert.True(t, strings.HasPrefix(lines[0], "INTJ"))
	assert.Contains(t, lines[0], "20.00")
}

func TestTopPinsReference(t *testing.T) {
	out, _, err := run(t, "top", "intj", "--top", "1", "--file", writeData(t))

	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  Chile"))
	assert.Contains(t, lines[0], "30.00")
	assert.True(t, strings.HasPrefix(lines[1], "* South Korea"))
	assert.Contains(t, lines[1], "5.00")
}

func TestTopUnknownType(t *testing.T) {
	_, _, err := run(t, "top", "XXXX", "--file", writeData(t))
	assert.True(t, errors.HasCode(err, errors.CodeTypeNotFound))
}

func TestMissingFile(t *testing.T) {
	_, _, err := run(t, "average", "--file", filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, errors.HasCode(err, errors.CodeInputMissing))
}

func TestExport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.xlsx")

	out, _, err := run(t, "export", target, "--type", "INTJ", "--file", writeData(t))

	require.NoError(t, err)
	assert.Contains(t, out, "country Japan, type INTJ")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("PK")))
}

func TestExportWithoutDataLeavesNoFile(t *testing.T) {
	row := "Japan" + strings.Repeat(",n/a", 16)
	data := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(data, []byte(header+row+"\n"), 0o644))
	target := filepath.Join(t.TempDir(), "out.xlsx")

	_, _, err := run(t, "export", target, "--type", "INTJ", "--file", data)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}
