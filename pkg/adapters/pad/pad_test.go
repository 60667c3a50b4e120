package pad_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fscs/prototool/pkg/adapters/pad"
	"github.com/fscs/prototool/pkg/api"
	"github.com/fscs/prototool/pkg/core"
)

func TestURLFor(t *testing.T) {
	c, err := pad.New()
	require.NoError(t, err)

	date := time.Date(2022, 5, 27, 1, 0, 0, 0, time.FixedZone("", 3*60*60))
	assert.Equal(t, "https://pad.hhu.de/2022-05-27-FSR-Informatik", c.URLFor(date))

	c, err = pad.New(pad.WithURLTemplate("https://md.example.org/sitzung-{date}"))
	require.NoError(t, err)
	assert.Equal(t, "https://md.example.org/sitzung-2022-05-27", c.URLFor(date))

	_, err = pad.New(pad.WithURLTemplate("https://md.example.org/static"))
	assert.Error(t, err)
}

func TestDownloadURL(t *testing.T) {
	cases := map[string]string{
		"https://pad.hhu.de/2022-05-27-FSR-Informatik":             "https://pad.hhu.de/2022-05-27-FSR-Informatik/download",
		"https://pad.hhu.de/2022-05-27-FSR-Informatik/?both#intro": "https://pad.hhu.de/2022-05-27-FSR-Informatik/download",
		"http://localhost:3000/abc?view":                           "http://localhost:3000/abc/download",
	}
	for in, want := range cases {
		got, err := pad.DownloadURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := pad.DownloadURL("pad.hhu.de/no-scheme")
	assert.Error(t, err)
}

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("Fetches Raw Text", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/2022-05-27-FSR-Informatik/download", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("---\ndate: 2022-05-27\n---\n# Protokoll"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		c, err := pad.New(pad.WithURLTemplate(server.URL+"/{date}-FSR-Informatik"), pad.WithHTTPClient(server.Client()))
		require.NoError(t, err)

		text, err := c.Download(ctx, c.URLFor(time.Date(2022, 5, 27, 0, 0, 0, 0, time.UTC))+"?edit")
		require.NoError(t, err)
		assert.Equal(t, "---\ndate: 2022-05-27\n---\n# Protokoll", text)
	})

	t.Run("Status Is Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		c, err := pad.New()
		require.NoError(t, err)

		_, err = c.Download(ctx, server.URL+"/missing")
		require.ErrorIs(t, err, core.ErrNetwork)
		require.ErrorIs(t, err, core.ErrNotFound)

		var httpErr *api.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, server.URL+"/missing/download", httpErr.URL)
	})
}

func TestOpen(t *testing.T) {
	var opened []string
	c, err := pad.New(pad.WithOpener(func(u string) error {
		opened = append(opened, u)
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, c.Open(context.Background(), "https://pad.hhu.de/x"))
	assert.Equal(t, []string{"https://pad.hhu.de/x"}, opened)

	c, err = pad.New(pad.WithOpener(func(string) error { return errors.New("no browser") }))
	require.NoError(t, err)
	assert.Error(t, c.Open(context.Background(), "https://pad.hhu.de/x"))
}
