package stac

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadFromHTTP(t *testing.T) {
	// Mock
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(mockItemJSON))
	}))
	defer server.Close()
	loader := NewLoader()

	// Tested code
	item, err := loader.Load(context.Background(), server.URL+"/item.json")
	_, missingErr := loader.Load(context.Background(), server.URL+"/missing.json")

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, "sentinel-2-l1c", item.Collection)
	assert.Equal(t, server.URL+"/item.json", item.Href)
	assert.Error(t, missingErr)
}

func TestLoader_LoadFromFile(t *testing.T) {
	// Mock
	dir, err := ioutil.TempDir("", "loader")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "item.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(mockItemJSON), 0644))

	// Tested code
	item, err := NewLoader().Load(context.Background(), path)

	// Asserts
	require.NoError(t, err)
	assert.Len(t, item.Assets, 2)
	assert.Equal(t, path, item.Href)
}

func TestLoader_ReadDocumentErrors(t *testing.T) {
	// Mock
	dir, err := ioutil.TempDir("", "loader")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	notJSON := filepath.Join(dir, "item.json")
	require.NoError(t, ioutil.WriteFile(notJSON, []byte("<xml/>"), 0644))
	loader := NewLoader()

	// Tested code
	_, notJSONErr := loader.ReadDocument(context.Background(), notJSON)
	_, missingErr := loader.ReadDocument(context.Background(), filepath.Join(dir, "missing.json"))

	// Asserts
	assert.Error(t, notJSONErr)
	assert.Error(t, missingErr)
}
