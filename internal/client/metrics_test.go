package client_test

import (
	"context"
	nethttp "net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestMetricsClient_DimensionData(t *testing.T) {
	t.Parallel()

	t.Run("bounds go on the wire as epoch days", func(t *testing.T) {
		t.Parallel()

		planhatClient, _ := newTestClient(t, nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "/dimensiondata", request.URL.Path)

			query := request.URL.Query()
			assert.Equal(t, "c-1", query.Get("cId"))
			assert.Equal(t, "activation", query.Get("dimid"))
			assert.Equal(t, "19723", query.Get("from"))
			assert.Equal(t, "19754", query.Get("to"))

			writeJSON(t, writer, []map[string]any{
				{"_id": "m-1", "cId": "c-1", "dimensionId": "activation", "value": 4},
			})
		}))

		list, err := planhatClient.Metrics().DimensionData(context.Background(), &planhat.DimensionDataOptions{
			CompanyID:   "c-1",
			DimensionID: "activation",
			From:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			To:          time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, list.Len())
		assert.Equal(t, planhat.KindMetric, list.Kind())
	})

	t.Run("zero bounds are omitted", func(t *testing.T) {
		t.Parallel()

		planhatClient, _ := newTestClient(t, nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			query := request.URL.Query()
			assert.False(t, query.Has("cId"))
			assert.False(t, query.Has("dimid"))
			assert.False(t, query.Has("from"))
			assert.False(t, query.Has("to"))

			writeJSON(t, writer, []map[string]any{})
		}))

		list, err := planhatClient.Metrics().DimensionData(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, list.Len())
	})

	t.Run("pages until the data runs out", func(t *testing.T) {
		t.Parallel()

		var offsets []string

		planhatClient, _ := newTestClient(t, nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			query := request.URL.Query()
			offsets = append(offsets, query.Get("offset"))
			assert.Equal(t, "2000", query.Get("limit"))

			if query.Get("offset") == "0" {
				points := make([]map[string]any, 2000)
				for i := range points {
					points[i] = map[string]any{"_id": "m", "value": i}
				}

				writeJSON(t, writer, points)
			} else {
				writeJSON(t, writer, []map[string]any{{"_id": "m-last"}})
			}
		}))

		list, err := planhatClient.Metrics().DimensionData(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2001, list.Len())
		assert.Equal(t, []string{"0", "2000"}, offsets)
	})

	t.Run("max length caps the fetch", func(t *testing.T) {
		t.Parallel()

		planhatClient, _ := newTestClient(t, nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
			assert.Equal(t, "3", request.URL.Query().Get("limit"))
			writeJSON(t, writer, []map[string]any{
				{"_id": "m-1"}, {"_id": "m-2"}, {"_id": "m-3"},
			})
		}))

		list, err := planhatClient.Metrics().DimensionData(context.Background(), &planhat.DimensionDataOptions{
			MaxLength: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, list.Len())
	})
}
