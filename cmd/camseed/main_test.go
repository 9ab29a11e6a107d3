package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/camseed"
	main "github.com/fwojciec/camseed/cmd/camseed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transcriptText = `Howards Cams Hydraulic Flat Tappet Camshafts 220051-08
Camshaft, Hydraulic Flat Tappet, Advertised Duration 277/289, Lift .496/.520, Lobe Separation 110
Part Number: HRS-220051-08

( 2 )
Part Number: none

COMP Cams High Energy Camshafts 35-218-3
Camshaft, Advertised Duration 268/268, Lift .456/.456
Part Number: CCA-35-218-3

Howards Cams Hydraulic Flat Tappet Camshafts 220051-08
Part Number: HRS-220051-08
`

const listingHTML = `<html><body>
<div class="item row">
	<h2><a href="/parts/hrs-110241-10">Howards Cams Hydraulic Roller Camshaft</a></h2>
	<p class="item-part-number">Part Number: <span>HRS-110241-10</span></p>
	<p class="item-description">Advertised Duration 277/289, Lift .496/.520</p>
</div>
<div class="item row">
	<p class="item-part-number">Part Number: <span>CCA-35-000-1</span></p>
	<p class="item-description">COMP Cams Magnum Camshaft</p>
</div>
</body></html>`

// skipIfOutputEnv skips tests that would pick up a real database from the
// environment.
func skipIfOutputEnv(t *testing.T) {
	t.Helper()
	if os.Getenv("CAMSEED_DB") != "" || os.Getenv("DATABASE_URL") != "" {
		t.Skip("CAMSEED_DB or DATABASE_URL is set")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readPartNumbers(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []struct {
		PartNumber string `json:"part_number"`
	}
	require.NoError(t, json.Unmarshal(data, &records))

	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.PartNumber)
	}
	return out
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	for _, cmd := range []string{"scrape", "parse", "text"} {
		assert.Contains(t, stdout.String(), cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RequiresOutput(t *testing.T) {
	t.Parallel()
	skipIfOutputEnv(t)

	path := writeFile(t, "cams.txt", transcriptText)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"text", path}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, camseed.EINVALID, camseed.ErrorCode(err))
	assert.Empty(t, stdout.String())
}

func TestMain_Run_SeedRequiresDatabaseURL(t *testing.T) {
	t.Parallel()
	skipIfOutputEnv(t)

	path := writeFile(t, "cams.txt", transcriptText)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"text", path, "--seed"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, camseed.EINVALID, camseed.ErrorCode(err))
}

func TestMain_Run_RejectsBadTable(t *testing.T) {
	t.Parallel()
	skipIfOutputEnv(t)

	path := writeFile(t, "cams.txt", transcriptText)
	out := filepath.Join(t.TempDir(), "cams.sql")
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"text", path, "--sql", out, "--table", "cams; DROP TABLE x"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, camseed.EINVALID, camseed.ErrorCode(err))
	assert.NoFileExists(t, out)
}

func TestTextCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes every output format", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		path := writeFile(t, "cams.txt", transcriptText)
		dir := t.TempDir()
		jsonPath := filepath.Join(dir, "cams.json")
		csvPath := filepath.Join(dir, "cams.csv")
		sqlPath := filepath.Join(dir, "cams.sql")

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"text", path,
			"--json", jsonPath,
			"--csv", csvPath,
			"--sql", sqlPath,
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "2 specs, 1 rejected, 1 duplicates\n", stdout.String())
		assert.Equal(t, []string{"HRS-220051-08", "CCA-35-218-3"}, readPartNumbers(t, jsonPath))

		csvData, err := os.ReadFile(csvPath)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "brand,part_number,name"))

		sqlData, err := os.ReadFile(sqlPath)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(sqlData), "INSERT INTO public.cse_generic_cams"))
		assert.Contains(t, string(sqlData), "'HRS-220051-08'")
	})

	t.Run("reads stdin", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		jsonPath := filepath.Join(t.TempDir(), "cams.json")
		m := &main.Main{Stdin: strings.NewReader(transcriptText)}
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"text", "-", "--json", jsonPath}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, []string{"HRS-220051-08", "CCA-35-218-3"}, readPartNumbers(t, jsonPath))
	})

	t.Run("rejects an empty transcript", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		path := writeFile(t, "empty.txt", "nothing to see here\n")
		jsonPath := filepath.Join(t.TempDir(), "cams.json")
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"text", path, "--json", jsonPath}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, camseed.EINVALID, camseed.ErrorCode(err))
		assert.NoFileExists(t, jsonPath)
	})

	t.Run("skips parts stored by an earlier run", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		path := writeFile(t, "cams.txt", transcriptText)
		dbPath := filepath.Join(t.TempDir(), "history.db")
		m := main.NewMain()

		var first bytes.Buffer
		err := m.Run(context.Background(), []string{"text", path, "--db", dbPath}, &first, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "2 specs, 1 rejected, 1 duplicates\n", first.String())

		var second bytes.Buffer
		err = m.Run(context.Background(), []string{"text", path, "--db", dbPath}, &second, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "0 specs, 1 rejected, 3 duplicates\n", second.String())
	})

	t.Run("unknown brands are kept with --no-require-brand", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		path := writeFile(t, "cams.txt", "Acme Widgets Camshaft\nPart Number: XYZ-1\n")
		jsonPath := filepath.Join(t.TempDir(), "cams.json")
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"text", path, "--json", jsonPath, "--no-require-brand"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "1 specs, 0 rejected, 0 duplicates\n", stdout.String())
	})
}

func TestParseCmd(t *testing.T) {
	t.Parallel()

	t.Run("resolves links against the base URL", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		path := writeFile(t, "listing.html", listingHTML)
		jsonPath := filepath.Join(t.TempDir(), "cams.json")
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"parse", path,
			"--base-url", "https://www.summitracing.com/search/part-type/camshafts",
			"--json", jsonPath,
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "2 specs, 0 rejected, 0 duplicates\n", stdout.String())

		data, err := os.ReadFile(jsonPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"url": "https://www.summitracing.com/parts/hrs-110241-10"`)
	})

	t.Run("honors exclusion lists", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		path := writeFile(t, "listing.html", listingHTML)
		exclude := writeFile(t, "seen.txt", "# already seeded\ncca-35-000-1\n")
		jsonPath := filepath.Join(t.TempDir(), "cams.json")
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"parse", path, "--exclude", exclude, "--json", jsonPath}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "1 specs, 0 rejected, 1 duplicates\n", stdout.String())
		assert.Equal(t, []string{"HRS-110241-10"}, readPartNumbers(t, jsonPath))
	})
}

func TestScrapeCmd(t *testing.T) {
	t.Parallel()

	card := func(pn, title, desc string) string {
		return fmt.Sprintf(`<div class="item row">
	<h2><a href="/parts/%s">%s</a></h2>
	<p class="item-part-number">Part Number: <span>%s</span></p>
	<p class="item-description">%s</p>
</div>`, strings.ToLower(pn), title, pn, desc)
	}

	pages := map[string]string{
		"": card("HRS-110241-10", "Howards Cams Hydraulic Roller Camshaft", "Advertised Duration 277/289, Lift .496/.520") +
			card("CCA-35-000-1", "COMP Cams Magnum Camshaft", "Duration at 050 inch Lift: 224/232"),
		"2": card("MEL-SYB-22", "Melling Stock Replacement Camshaft", "274/274 Duration, .442 in./.442 in. Lift") +
			card("HRS-110241-10", "Howards Cams Hydraulic Roller Camshaft", "Advertised Duration 277/289"),
	}

	t.Run("follows pagination until a page runs dry", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		var mu sync.Mutex
		var requested []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			requested = append(requested, r.URL.RequestURI())
			mu.Unlock()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintf(w, "<html><body>%s</body></html>", pages[r.URL.Query().Get("page")])
		}))
		defer srv.Close()

		jsonPath := filepath.Join(t.TempDir(), "cams.json")
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"scrape", srv.URL + "/camshafts",
			"--rate", "0",
			"--json", jsonPath,
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "3 specs, 0 rejected, 1 duplicates\n", stdout.String())
		assert.Equal(t, []string{"HRS-110241-10", "CCA-35-000-1", "MEL-SYB-22"}, readPartNumbers(t, jsonPath))
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"/camshafts", "/camshafts?page=2", "/camshafts?page=3"}, requested)
	})

	t.Run("rejects a relative URL", func(t *testing.T) {
		t.Parallel()
		skipIfOutputEnv(t)

		jsonPath := filepath.Join(t.TempDir(), "cams.json")
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"scrape", "camshafts", "--json", jsonPath}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, camseed.EINVALID, camseed.ErrorCode(err))
	})
}
