package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/photo"
)

// runCLI executes the root command with args in an isolated environment.
func runCLI(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)

	c := New(io.Discard, LogInfo)
	c.environ = []string{}
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return c, root.Execute()
}

func writeJSONFile(t *testing.T, v any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photos.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(v); err != nil {
		t.Fatal(err)
	}
	return path
}

func scenarioPhotos() []photo.Photo {
	return []photo.Photo{
		{ID: "1", Width: 400, Height: 300, SourceURL: "https://picsum.photos/id/1/400/300"},
		{ID: "2", Width: 600, Height: 300, SourceURL: "https://picsum.photos/id/2/600/300"},
		{ID: "3", Width: 800, Height: 300, SourceURL: "https://picsum.photos/id/3/800/300"},
	}
}

func TestLayoutCommandWritesRows(t *testing.T) {
	in := writeJSONFile(t, scenarioPhotos())
	out := filepath.Join(t.TempDir(), "rows.json")

	if _, err := runCLI(t, "layout", in, "--width", "1000", "--gap", "10", "-o", out); err != nil {
		t.Fatalf("layout failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var got layoutResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Rows) != 2 || got.Rows[0].Height != 297 || got.Rows[1].Photos[0].DisplayWidth != 640 {
		t.Errorf("rows = %+v", got.Rows)
	}
}

func TestLayoutCommandDocumentWidth(t *testing.T) {
	in := writeJSONFile(t, map[string]any{"photos": scenarioPhotos(), "container_width": 1000})
	out := filepath.Join(t.TempDir(), "rows.json")

	// The document width applies unless --width is given.
	if _, err := runCLI(t, "layout", in, "--gap", "10", "-o", out); err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	data, _ := os.ReadFile(out)
	var got layoutResponse
	json.Unmarshal(data, &got)
	if got.ContainerWidth != 1000 {
		t.Errorf("container width = %d, want 1000", got.ContainerWidth)
	}
}

func TestLayoutCommandRejectsInvalidPhotos(t *testing.T) {
	photos := scenarioPhotos()
	photos[1].Height = 0
	in := writeJSONFile(t, photos)

	_, err := runCLI(t, "layout", in)
	if !errors.Is(err, errors.ErrCodeInvalidPhoto) {
		t.Errorf("error = %v, want INVALID_PHOTO", err)
	}
}

func TestLayoutCommandInvalidFlags(t *testing.T) {
	in := writeJSONFile(t, scenarioPhotos())
	_, err := runCLI(t, "layout", in, "--row-height", "0")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestFetchCommand(t *testing.T) {
	var (
		mu    sync.Mutex
		pages []string
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		mu.Lock()
		pages = append(pages, page+"/"+r.URL.Query().Get("limit"))
		mu.Unlock()
		n, _ := strconv.Atoi(page)
		if n > 2 {
			w.Write([]byte("[]"))
			return
		}
		id := strconv.Itoa(n)
		w.Write([]byte(`[{"id":"` + id + `","author":"A","width":30,"height":20,"url":"","download_url":"https://picsum.photos/id/` + id + `/30/20"},
			{"id":"shared","author":"B","width":30,"height":20,"url":"","download_url":"https://picsum.photos/id/shared/30/20"}]`))
	}))
	defer upstream.Close()

	out := filepath.Join(t.TempDir(), "photos.json")
	if _, err := runCLI(t, "fetch", "--base-url", upstream.URL, "--pages", "5", "--page-size", "2", "-o", out); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	mu.Lock()
	if strings.Join(pages, ",") != "1/2,2/2,3/2" {
		t.Errorf("requested pages %v", pages)
	}
	mu.Unlock()

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var got []photo.Photo
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if ids := photo.IDs([]photo.Row{{Photos: got}}); strings.Join(ids, ",") != "1,shared,2" {
		t.Errorf("ids = %v, want [1 shared 2]", ids)
	}
}

func TestFetchCommandFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	_, err := runCLI(t, "fetch", "--base-url", upstream.URL, "-o", filepath.Join(t.TempDir(), "x.json"))
	if !errors.Is(err, errors.ErrCodeFetch) {
		t.Errorf("error = %v, want FETCH_ERROR", err)
	}
}

func TestFetchCommandPagesBounds(t *testing.T) {
	_, err := runCLI(t, "fetch", "--pages", "0")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("gap = 3\npage_size = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	in := writeJSONFile(t, scenarioPhotos())
	c, err := runCLI(t, "--config", path, "layout", in)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	if c.Config.Gap != 3 || c.Config.PageSize != 7 {
		t.Errorf("config = %+v, want values from file", c.Config)
	}

	if _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "layout", in); err == nil {
		t.Error("missing --config file should fail")
	}
}

func TestGridFlagsOverrideConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.environ = []string{}
	cmd := c.layoutCommand()
	if err := cmd.ParseFlags([]string{"--gap", "12"}); err != nil {
		t.Fatal(err)
	}
	var f gridFlags
	f.gap = 12
	base := c.Config
	base.RowHeight = 300

	got, err := f.resolve(cmd, base)
	if err != nil {
		t.Fatal(err)
	}
	if got.Gap != 12 || got.RowHeight != 300 {
		t.Errorf("resolve() = gap %d row height %d, want 12 and 300", got.Gap, got.RowHeight)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		if _, err := runCLI(t, "completion", shell); err != nil {
			t.Errorf("completion %s: %v", shell, err)
		}
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
