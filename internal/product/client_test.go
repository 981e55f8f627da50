package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peermall/peerstore/internal/model"
)

func TestGetCommunity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/communities/c1" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Community{ID: "c1", Name: "Makers"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.GetCommunity(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Makers", got.Name)

	_, err = c.GetCommunity(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("communityId") != "c1" {
			http.Error(w, "missing filter", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Product{{ID: "p1", CommunityID: "c1", Name: "sticker", Price: 3.5}})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).ListProducts(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sticker", got[0].Name)
}

func TestListProductsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListProducts(context.Background(), "c1")
	assert.Error(t, err)
}
