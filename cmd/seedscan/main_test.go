package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seedscan"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithStderr(t, stdin, args...)
	return out, err
}

func executeWithStderr(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParseClause(t *testing.T) {
	tests := []struct {
		in   string
		want seedscan.Clause
	}{
		{"Voucher:Telescope@1", seedscan.Clause{Type: "Voucher", Value: "Telescope", Antes: []int{1}}},
		{"Tag:Negative Tag|Investment Tag@1-3,5#2", seedscan.Clause{
			Type: "Tag", Values: []string{"Negative Tag", "Investment Tag"}, Antes: []int{1, 2, 3, 5}, Score: 2,
		}},
		{"Boss", seedscan.Clause{Type: "Boss", Value: "Any"}},
		{" Joker : Blueprint ", seedscan.Clause{Type: "Joker", Value: "Blueprint"}},
	}
	for _, tt := range tests {
		got, err := parseClause(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{":Telescope", "Voucher:Telescope@x", "Voucher:Telescope@3-1", "Tag:Any#high"} {
		_, err := parseClause(bad)
		assert.Error(t, err, bad)
	}
}

func TestSearchSeedsToCSV(t *testing.T) {
	out, err := execute(t, "",
		"search",
		"--seed", "ALEEB,HELL1,XTHER",
		"--should", "Boss:Any@1#2",
		"--log-level", "error",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"Seed","TotalScore","Any"`, lines[0])
	for _, l := range lines[1:] {
		assert.True(t, strings.HasSuffix(l, ",2,1"), l)
	}
}

func TestSearchQueryFileCompressed(t *testing.T) {
	dir := t.TempDir()
	query := filepath.Join(dir, "q.json")
	require.NoError(t, os.WriteFile(query, []byte(`{"must":[{"type":"Boss","value":"Any","antes":[1]}]}`), 0o600))
	output := filepath.Join(dir, "hits.csv.zst")

	_, err := execute(t, "ALEEB\n# comment\n\nHELL1\n",
		"search",
		"--query", query,
		"--seed-file", "-",
		"--compress", "zstd",
		"-o", output,
		"--log-level", "error",
	)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	dec, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer dec.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(dec)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{`"Seed","TotalScore"`, "ALEEB,0", "HELL1,0"}, sortedTail(lines))
}

func sortedTail(lines []string) []string {
	if len(lines) < 2 {
		return lines
	}
	tail := slices.Clone(lines[1:])
	slices.Sort(tail)
	return append([]string{lines[0]}, tail...)
}

func TestSearchErrors(t *testing.T) {
	_, err := execute(t, "", "search", "--must", "Voucher:Nope@1", "--single", "ALEEB", "--log-level", "error")
	var ce *seedscan.ConfigError
	assert.ErrorAs(t, err, &ce)

	_, err = execute(t, "", "search", "--must", "Boss@1", "--single", "ALEEB", "--compress", "gzip")
	assert.Error(t, err)

	_, err = execute(t, "", "search", "--log-level", "error")
	assert.ErrorIs(t, err, seedscan.ErrNoHashKeys)

	_, err = execute(t, `{"must":[{"typ":"Boss"}]}`, "search", "--query", "-", "--single", "ALEEB")
	assert.ErrorContains(t, err, "query -")
}

func TestSearchLogFormat(t *testing.T) {
	out, logs, err := executeWithStderr(t, "",
		"search", "--single", "ALEEB", "--must", "Boss@1", "--log-format", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `"Seed","TotalScore"`), out)
	assert.Contains(t, logs, `"msg":"search finished"`)
	assert.Contains(t, logs, `"run_id":`)

	_, err = execute(t, "", "search", "--single", "ALEEB", "--must", "Boss@1", "--log-format", "xml")
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "", "analyze", "ALEEB", "--antes", "2", "--deck", "Ghost")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ALEEB (Ghost Deck, White Stake)\n"), out)
	assert.Contains(t, out, "ante 2\n")

	out, err = execute(t, "", "analyze", "ALEEB", "--antes", "1", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Seed":"ALEEB"`)

	_, err = execute(t, "", "analyze")
	assert.Error(t, err)
}

func TestPlatform(t *testing.T) {
	out, err := execute(t, "", "platform")
	require.NoError(t, err)

	p := seedscan.Platform()
	assert.True(t, strings.HasPrefix(out, p.String()+"\n"))
	assert.Contains(t, out, "available: generic")
}
