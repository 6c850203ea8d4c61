package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalepa/crimestats/motive"
	"github.com/zalepa/crimestats/report"
	"go.uber.org/zap"
)

const dataset = `{"data": [
  {"name": "Goa", "crime": {"Fraud/Illegal Gain": 3, "Greed/ Money": 1, "Total": 4}},
  {"name": "Sikkim", "crime": {"Fraud/Illegal Gain": 0, "Greed/ Money": 0, "Total": 0}},
  {"name": "Maharashtra", "crime": {"Fraud/Illegal Gain": 60, "Greed/ Money": 30, "Total": 90}},
  {"name": "Kerala", "crime": {"Fraud/Illegal Gain": 1, "Greed/ Money": 3, "Total": 4}}
]}`

// run executes the command tree with a no-op logger and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(&app{logger: zap.NewNop()})
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crime.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRender(t *testing.T) {
	input := writeDataset(t, dataset)
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "CrimeTest.html")
	pdfPath := filepath.Join(dir, "report.pdf")

	_, err := run(t, "render", "-i", input, "--categories", "fraud,greed", "-o", htmlPath, "--pdf", pdfPath, "--title", "Test Report")
	require.NoError(t, err)

	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Test Report</title>")
	assert.Contains(t, string(page), `data-region="Maharashtra"`)
	assert.NotContains(t, string(page), "Sikkim")

	doc, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	n, err := report.PageCount(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRender_MissingTotalWritesNothing(t *testing.T) {
	input := writeDataset(t, `{"data": [{"name": "Goa", "crime": {"Fraud/Illegal Gain": 3, "Greed/ Money": 1}}]}`)
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "CrimeTest.html")

	_, err := run(t, "render", "-i", input, "--categories", "fraud,greed", "-o", htmlPath, "--pdf", filepath.Join(dir, "r.pdf"))
	var mf *motive.MissingFieldError
	require.True(t, errors.As(err, &mf), "want *MissingFieldError, got %T: %v", err, err)
	assert.Equal(t, "Total", mf.Field)
	assert.Equal(t, "Goa", mf.Region)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRender_PDFWriteFailureLeavesNoHTML(t *testing.T) {
	input := writeDataset(t, dataset)
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "CrimeTest.html")

	_, err := run(t, "render", "-i", input, "--categories", "fraud,greed", "-o", htmlPath, "--pdf", filepath.Join(dir, "no-such-dir", "r.pdf"))
	var we *report.OutputWriteError
	require.True(t, errors.As(err, &we), "want *OutputWriteError, got %T: %v", err, err)
	assert.NoFileExists(t, htmlPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRender_InputNotFound(t *testing.T) {
	_, err := run(t, "render", "-i", filepath.Join(t.TempDir(), "missing.json"), "-o", filepath.Join(t.TempDir(), "x.html"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestRender_UnknownCategory(t *testing.T) {
	_, err := run(t, "render", "--categories", "fraud,phishing")
	assert.ErrorContains(t, err, "phishing")
}

func TestRender_ExplicitConfigMissing(t *testing.T) {
	_, err := run(t, "render", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRender_FromConfig(t *testing.T) {
	input := writeDataset(t, dataset)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "crimestats.yaml")
	htmlPath := filepath.Join(dir, "from-config.html")
	cfg := "input: " + input + "\noutput: " + htmlPath + "\ncategories: [fraud, greed]\ntitle: Configured\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	// Root command without a subcommand renders.
	_, err := run(t, "--config", cfgPath)
	require.NoError(t, err)

	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Configured</title>")
}

func TestTable(t *testing.T) {
	input := writeDataset(t, dataset)

	stdout, err := run(t, "table", "-i", input, "--categories", "fraud,greed")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Cyber Crime Statistics-2013", lines[0])
	assert.Equal(t, "3 regions, largest total 90", lines[1])
	assert.True(t, strings.HasPrefix(lines[5], "   1  Maharashtra"), lines[5])
	assert.True(t, strings.HasSuffix(lines[5], strings.Repeat("█", barWidth)), lines[5])
	assert.True(t, strings.HasPrefix(lines[6], "   2  Goa"), lines[6])
	assert.True(t, strings.HasPrefix(lines[7], "   3  Kerala"), lines[7])
}

func TestTable_Wide(t *testing.T) {
	input := writeDataset(t, dataset)

	stdout, err := run(t, "table", "-i", input, "--categories", "fraud,greed", "--wide")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Fraud")
	assert.Contains(t, stdout, "Greed")
	assert.Regexp(t, `1  Maharashtra\s+90\s+60\s+30`, stdout)
}

func TestExport(t *testing.T) {
	input := writeDataset(t, dataset)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ranking.csv")
	jsonPath := filepath.Join(dir, "ranking.json")
	xlsxPath := filepath.Join(dir, "ranking.xlsx")

	_, err := run(t, "export", "-i", input, "--categories", "fraud,greed", "--csv", csvPath, "--json", jsonPath, "--xlsx", xlsxPath)
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Rank,Region,Total,Fraud/Illegal Gain,Greed/Money\n1,Maharashtra,90,60,30\n2,Goa,4,3,1\n3,Kerala,4,1,3\n", string(data))
	assert.FileExists(t, jsonPath)
	assert.FileExists(t, xlsxPath)
}

func TestExport_NoTargets(t *testing.T) {
	input := writeDataset(t, dataset)
	_, err := run(t, "export", "-i", input)
	assert.ErrorContains(t, err, "at least one")
}

func TestServeMux(t *testing.T) {
	res, err := motive.Aggregate(motive.Dataset{
		{Name: "Goa", Crime: map[string]float64{"Fraud/Illegal Gain": 3, "Total": 3}},
	}, motive.Categories{motive.Fraud})
	require.NoError(t, err)

	mux, err := newServeMux([]byte("<html>report</html>"), report.NewTable(res))
	require.NoError(t, err)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html>report</html>", string(body))

	resp, err = http.Get(srv.URL + "/api/ranking")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var table report.Table
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&table))
	require.Len(t, table.Regions, 1)
	assert.Equal(t, "Goa", table.Regions[0].Name)

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeMux_UnencodableTable(t *testing.T) {
	table := report.Table{Regions: []report.TableRow{{Rank: 1, Name: "Goa", Total: math.NaN()}}}
	_, err := newServeMux(nil, table)
	assert.ErrorContains(t, err, "encode ranking")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.json":
			io.WriteString(w, dataset)
		case "/bad.json":
			io.WriteString(w, `{"data": [{"name": "Goa", "crime": {"Total": 1}}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	_, err := run(t, "fetch", "--url", srv.URL+"/good.json", "--out", good, "--categories", "fraud,greed")
	require.NoError(t, err)
	data, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, dataset, string(data))

	bad := filepath.Join(dir, "bad.json")
	_, err = run(t, "fetch", "--url", srv.URL+"/bad.json", "--out", bad, "--categories", "fraud,greed")
	var mf *motive.MissingFieldError
	require.True(t, errors.As(err, &mf), "want *MissingFieldError, got %T: %v", err, err)
	assert.NoFileExists(t, bad)

	_, err = run(t, "fetch", "--url", srv.URL+"/missing.json", "--out", filepath.Join(dir, "m.json"))
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crimestats.yaml")

	_, err := run(t, "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = run(t, "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 10, 8))
	assert.Equal(t, strings.Repeat("█", 8), bar(10, 10, 8))
	assert.Equal(t, "████▌", bar(4.5, 8, 8))
}
