package drive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/wms/internal/config"
)

func TestSaveUploadsIntoFolder(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"file-123"}`))
	}))
	defer srv.Close()

	store, err := NewStore(context.Background(), config.DriveConfig{PictureFolderID: "folder-9"}, nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication())
	require.NoError(t, err)

	id, err := store.Save(context.Background(), "885001_20260101_100000.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "file-123", id)
	assert.Contains(t, gotPath, "files")
	assert.Contains(t, gotBody, "folder-9")
	assert.Contains(t, gotBody, "jpeg-bytes")
	assert.Equal(t, "https://drive.google.com/open?id=file-123", store.Link(id))
}

func TestNewStoreRequiresFolder(t *testing.T) {
	_, err := NewStore(context.Background(), config.DriveConfig{}, nil, option.WithoutAuthentication())
	assert.Error(t, err)
}
