package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	b, err := GetJSON(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(b))

	_, err = GetJSON(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "(404)")

	old := MaxBody
	MaxBody = 16
	defer func() { MaxBody = old }()
	_, err = GetJSON(context.Background(), srv.URL+"/big")
	assert.ErrorContains(t, err, "body larger")
}
