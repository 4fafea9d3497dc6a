package download_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/tilegrab/pkg/archive"
	"github.com/glorpus-work/tilegrab/pkg/download"
	dlmocks "github.com/glorpus-work/tilegrab/pkg/download/mocks"
	"github.com/glorpus-work/tilegrab/pkg/http"
	"github.com/glorpus-work/tilegrab/pkg/tiles"
)

func task(z, x, y int, base string) tiles.Task {
	return tiles.Task{
		Tile:    tiles.ID{Zoom: z, Column: x, Row: y},
		URL:     fmt.Sprintf("%s/%d/%d/%d.png", base, z, x, y),
		RowFile: fmt.Sprintf("%d.png", y),
	}
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func archiveNames(t *testing.T, data []byte) []string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "out.zip")
	require.NoError(t, os.WriteFile(p, data, 0o644))
	names, err := archive.NewManager().List(context.Background(), p)
	require.NoError(t, err)
	return names
}

func TestRun_ArchivePartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := []tiles.Task{
		task(1, 0, 0, "https://t"),
		task(1, 0, 1, "https://t"),
		task(1, 1, 0, "https://t"),
	}

	fetcher := dlmocks.NewMockFetcher(ctrl)
	gomock.InOrder(
		fetcher.EXPECT().Fetch(gomock.Any(), tasks[0].URL).Return(body("a"), nil),
		fetcher.EXPECT().Fetch(gomock.Any(), tasks[1].URL).Return(nil, errors.New("HTTP 404")),
		fetcher.EXPECT().Fetch(gomock.Any(), tasks[2].URL).Return(body("c"), nil),
	)

	var phases []string
	orch := download.New(fetcher, nil, download.Hooks{OnEvent: func(e download.Event) {
		phases = append(phases, e.Phase)
	}})
	sink := download.NewArchiveSink(archive.NewManager(), archive.FormatZip)

	result, report, err := orch.Run(context.Background(), tasks, sink)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, []tiles.ID{tasks[0].Tile, tasks[2].Tile}, report.Succeeded)
	assert.Equal(t, []tiles.ID{tasks[1].Tile}, report.FailedTiles())
	assert.ErrorIs(t, report.Failed[0].Err, download.ErrFetch)
	assert.False(t, report.Complete())
	assert.Equal(t, []string{"fetching", "stored", "fetching", "failed", "fetching", "stored", "done"}, phases)

	assert.Equal(t, []string{
		"zoom_levels/",
		"zoom_levels/1/",
		"zoom_levels/1/0/",
		"zoom_levels/1/0/0.png",
		"zoom_levels/1/1/",
		"zoom_levels/1/1/0.png",
	}, archiveNames(t, result.Archive))
}

func TestRun_ArchiveEntriesFollowTaskOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := []tiles.Task{task(2, 1, 1, "https://t"), task(2, 1, 2, "https://t"), task(3, 2, 2, "https://t")}
	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, url string) (io.ReadCloser, error) { return body(url), nil },
	).Times(3)

	sink := download.NewArchiveSink(nil, archive.FormatZip)
	_, _, err := download.New(fetcher, nil, download.Hooks{}).Run(context.Background(), tasks, sink)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"zoom_levels",
		"zoom_levels/2",
		"zoom_levels/2/1",
		"zoom_levels/3",
		"zoom_levels/3/2",
		"zoom_levels/2/1/1.png",
		"zoom_levels/2/1/2.png",
		"zoom_levels/3/2/2.png",
	}, sink.Entries())
}

func TestRun_EmptyTaskList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := dlmocks.NewMockFetcher(ctrl)
	sink := download.NewArchiveSink(archive.NewManager(), archive.FormatZip)

	result, report, err := download.New(fetcher, nil, download.Hooks{}).Run(context.Background(), nil, sink)
	require.NoError(t, err)
	assert.True(t, report.Complete())
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, []string{"zoom_levels/"}, archiveNames(t, result.Archive))
}

func TestRun_StreamErrorSkipsTile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := []tiles.Task{task(0, 0, 0, "https://t")}
	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), tasks[0].URL).Return(io.NopCloser(brokenReader{}), nil).Times(2)

	orch := download.New(fetcher, nil, download.Hooks{})

	result, report, err := orch.Run(context.Background(), tasks, download.NewArchiveSink(nil, archive.FormatZip))
	require.NoError(t, err)
	assert.Len(t, report.Failed, 1)
	assert.Equal(t, []string{"zoom_levels/", "zoom_levels/0/", "zoom_levels/0/0/"}, archiveNames(t, result.Archive))

	root := t.TempDir()
	result, report, err = orch.Run(context.Background(), tasks, download.NewDirectorySink(root))
	require.NoError(t, err)
	assert.Len(t, report.Failed, 1)
	assert.DirExists(t, filepath.Join(root, "zoom_levels", "0", "0"))
	assert.NoFileExists(t, filepath.Join(root, "zoom_levels", "0", "0", "0.png"))
	entries, err := os.ReadDir(filepath.Join(root, "zoom_levels", "0", "0"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, filepath.Join(root, "zoom_levels"), result.Root)
}

func TestRun_DirectoryOverHTTP(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if strings.HasSuffix(r.URL.Path, "/1.png") {
			w.WriteHeader(nethttp.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("tile:" + r.URL.Path))
	}))
	defer server.Close()

	tasks := []tiles.Task{
		task(1, 0, 0, server.URL),
		task(1, 0, 1, server.URL),
		task(1, 1, 0, server.URL),
	}
	client := http.NewHTTPClient(5*time.Second, "")
	root := t.TempDir()

	result, report, err := download.New(client, nil, download.Hooks{}).Run(context.Background(), tasks, download.NewDirectorySink(root))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "zoom_levels"), result.Root)
	assert.Equal(t, []tiles.ID{tasks[1].Tile}, report.FailedTiles())

	data, err := os.ReadFile(filepath.Join(root, "zoom_levels", "1", "0", "0.png"))
	require.NoError(t, err)
	assert.Equal(t, "tile:/1/0/0.png", string(data))
	assert.FileExists(t, filepath.Join(root, "zoom_levels", "1", "1", "0.png"))
	assert.NoFileExists(t, filepath.Join(root, "zoom_levels", "1", "0", "1.png"))
}

func TestRun_DirectoryIsAdditive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	extra := filepath.Join(root, "zoom_levels", "1", "0", "keep.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(extra), 0o755))
	require.NoError(t, os.WriteFile(extra, []byte("keep"), 0o644))

	tasks := []tiles.Task{task(1, 0, 0, "https://t"), task(1, 1, 1, "https://t")}
	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, url string) (io.ReadCloser, error) { return body("v"), nil },
	).Times(4)

	orch := download.New(fetcher, nil, download.Hooks{})
	for i := 0; i < 2; i++ {
		_, report, err := orch.Run(context.Background(), tasks, download.NewDirectorySink(root))
		require.NoError(t, err)
		assert.True(t, report.Complete())
	}

	assert.FileExists(t, extra)
	assert.FileExists(t, filepath.Join(root, "zoom_levels", "1", "0", "0.png"))
	assert.FileExists(t, filepath.Join(root, "zoom_levels", "1", "1", "1.png"))
}

func TestRun_ScriptSkip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tasks := []tiles.Task{task(1, 0, 0, "https://t"), task(1, 0, 1, "https://t")}

	scripts := dlmocks.NewMockScripts(ctrl)
	scripts.EXPECT().BeforeFetch(gomock.Any(), tasks[0]).Return(true, nil)
	scripts.EXPECT().BeforeFetch(gomock.Any(), tasks[1]).Return(false, nil)
	scripts.EXPECT().AfterStore(gomock.Any(), tasks[1]).Return(errors.New("ignored"))

	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), tasks[1].URL).Return(body("b"), nil)

	sink := download.NewArchiveSink(nil, archive.FormatZip)
	_, report, err := download.New(fetcher, scripts, download.Hooks{}).Run(context.Background(), tasks, sink)
	require.NoError(t, err)
	assert.Equal(t, []tiles.ID{tasks[0].Tile}, report.Skipped)
	assert.Equal(t, []tiles.ID{tasks[1].Tile}, report.Succeeded)
	assert.Contains(t, sink.Entries(), "zoom_levels/1/0/1.png")
	assert.NotContains(t, sink.Entries(), "zoom_levels/1/0/0.png")
}

func TestRun_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	tasks := []tiles.Task{task(1, 0, 0, "https://t"), task(1, 0, 1, "https://t")}

	fetcher := dlmocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), tasks[0].URL).DoAndReturn(
		func(context.Context, string) (io.ReadCloser, error) {
			cancel()
			return body("a"), nil
		},
	)

	_, report, err := download.New(fetcher, nil, download.Hooks{}).Run(ctx, tasks, download.NewArchiveSink(nil, archive.FormatZip))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []tiles.ID{tasks[0].Tile}, report.Succeeded)
}

func TestRun_SinkErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := dlmocks.NewMockFetcher(ctrl)

	sink := dlmocks.NewMockSink(ctrl)
	sink.EXPECT().Prepare(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	_, _, err := download.New(fetcher, nil, download.Hooks{}).Run(context.Background(), nil, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare output")

	sink = dlmocks.NewMockSink(ctrl)
	sink.EXPECT().Prepare(gomock.Any(), gomock.Any()).Return(nil)
	sink.EXPECT().Finalize(gomock.Any()).Return(download.Result{}, errors.New("boom"))
	_, _, err = download.New(fetcher, nil, download.Hooks{}).Run(context.Background(), nil, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to finalize output")
}

func TestRun_NoFetcher(t *testing.T) {
	_, _, err := download.New(nil, nil, download.Hooks{}).Run(context.Background(), nil, download.NewArchiveSink(nil, archive.FormatZip))
	require.Error(t, err)
}
