package client_test

import (
	"context"
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

func TestCompaniesClient_ListLean(t *testing.T) {
	t.Parallel()

	t.Run("lists every company in one call", func(t *testing.T) {
		t.Parallel()

		planhatClient, _ := newTestClient(t, nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "/leancompanies", request.URL.Path)
			assert.Empty(t, request.URL.RawQuery)
			writeJSON(t, writer, []map[string]any{
				{"_id": "c-1", "name": "Acme"},
				{"_id": "c-2", "name": "Globex"},
			})
		}))

		list, err := planhatClient.Companies().ListLean(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, list.Len())
		assert.Equal(t, planhat.KindCompany, list.Kind())
		assert.Equal(t, "Globex", list.At(1).Name())
	})

	t.Run("always bypasses the cache", func(t *testing.T) {
		t.Parallel()

		requests := 0

		planhatClient := newCachingTestClient(t, nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			requests++

			writeJSON(t, writer, []map[string]any{{"_id": "c-1"}})
		}))

		_, err := planhatClient.Companies().ListLean(context.Background())
		require.NoError(t, err)

		_, err = planhatClient.Companies().ListLean(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, requests)
	})

	t.Run("server error surfaces through the taxonomy", func(t *testing.T) {
		t.Parallel()

		planhatClient, _ := newTestClient(t, nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			writer.WriteHeader(nethttp.StatusForbidden)
		}))

		_, err := planhatClient.Companies().ListLean(context.Background())
		require.ErrorIs(t, err, planhat.ErrAuthFailed)
	})
}
