package images

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotAuth, gotFolder, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFolder = r.FormValue("folder")
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Image{URL: "https://img.example.com/abc.png", PublicID: "board/abc"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "board")
	image, err := client.Upload(context.Background(), "poster.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "https://img.example.com/abc.png", image.URL)
	require.Equal(t, "board/abc", image.PublicID)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "board", gotFolder)
	require.Equal(t, "poster.png", gotFilename)
}

func TestUploadHostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "board")
	_, err := client.Upload(context.Background(), "poster.png", strings.NewReader("png-bytes"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestUploadEmptyURLRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "board")
	_, err := client.Upload(context.Background(), "poster.png", strings.NewReader("png-bytes"))
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "board")
	require.NoError(t, client.Delete(context.Background(), "board/abc"))
	require.Equal(t, "/images/board%2Fabc", gotPath)

	require.Error(t, client.Delete(context.Background(), ""))
}
