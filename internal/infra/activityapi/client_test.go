package activityapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonapi"
	transporthttp "github.com/gabapcia/blockfeed/internal/pkg/transport/http"
	"github.com/gabapcia/blockfeed/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0x1111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := transporthttp.NewClient(transporthttp.WithRetryMax(0), transporthttp.WithTracing(false))
	return NewClient(jsonapi.NewClient(httpClient, server.URL))
}

func TestClient_FetchActivity(t *testing.T) {
	t.Run("should post the query and decode big integer values", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/activity", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"chainId": float64(42), "address": alice, "toBlock": float64(900)}, body)

			_, _ = w.Write([]byte(`{
				"data": [{
					"blockNumber": "899",
					"blockTimestamp": 1700000000,
					"transactionIndex": 3,
					"transactionHash": "0xAA",
					"value": "1500000000000000000n",
					"gasUsed": "21000n",
					"gasPrice": "1000000000n",
					"from": "` + alice + `",
					"to": "` + bob + `",
					"input": "0x",
					"logs": []
				}],
				"pagination": {"nextToBlock": 898, "hasMore": true}
			}`))
		})

		page, err := c.FetchActivity(t.Context(), activity.Query{ChainID: 42, Address: alice, ToBlock: 900})

		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "1500000000000000000", page.Data[0].Value.String())
		assert.Equal(t, "21000", page.Data[0].GasUsed.String())
		assert.EqualValues(t, 899, page.Data[0].BlockNumber)
		assert.True(t, page.Pagination.HasMore)
		require.NotNil(t, page.Pagination.NextToBlock)
		assert.EqualValues(t, 898, *page.Pagination.NextToBlock)
	})

	t.Run("should not fail the page on string-typed decoder fields", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"data": [{
					"hash": "0xBB",
					"blockNumber": "900n",
					"blockTimestamp": "1700000000n",
					"transactionIndex": "4",
					"status": "success",
					"from": "` + alice + `",
					"namedArgs": {"amount": {"type": "uint256", "value": "10n"}}
				}],
				"pagination": {"nextToBlock": null, "hasMore": false}
			}`))
		})

		page, err := c.FetchActivity(t.Context(), activity.Query{ChainID: 42, Address: alice})

		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		tx := page.Data[0]
		assert.Equal(t, "0xbb", tx.Key())
		assert.EqualValues(t, 1700000000, tx.BlockTimestamp)
		assert.Equal(t, 4, tx.TransactionIndex)
		assert.Equal(t, 1, tx.Status)
		amount, ok := tx.Arg("amount")
		require.True(t, ok)
		assert.Equal(t, "10", amount.Value)
	})

	t.Run("should omit the address for the chain-wide feed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"chainId": float64(42)}, body)

			_, _ = w.Write([]byte(`{"data": [], "pagination": {"nextToBlock": null, "hasMore": false}}`))
		})

		page, err := c.FetchActivity(t.Context(), activity.Query{ChainID: 42})

		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Nil(t, page.Pagination.NextToBlock)
	})

	t.Run("should return the status as an API error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := c.FetchActivity(t.Context(), activity.Query{ChainID: 42})

		assert.ErrorIs(t, err, jsonapi.ErrUnexpectedStatus)
		assert.EqualError(t, err, "API error: 404 Not Found")
	})

	t.Run("should reject invalid queries without calling the API", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := c.FetchActivity(t.Context(), activity.Query{ChainID: 42, Address: "alice"})
		assert.ErrorIs(t, err, validator.ErrValidationFailed)

		_, err = c.FetchActivity(t.Context(), activity.Query{})
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})
}

func TestClient_ResolveAddresses(t *testing.T) {
	t.Run("should decode identities keyed by address", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/resolveAddresses", r.URL.Path)

			var body resolveRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 42, body.ChainID)
			assert.Equal(t, []string{alice, bob}, body.Addresses)

			_, _ = w.Write([]byte(`{
				"success": true,
				"addressIdentities": {
					"` + alice + `": {
						"name": "alice",
						"profileImages": [{"width": 100, "height": 100, "src": "ipfs://Qm1"}],
						"likesBalance": "12000000000000000000n"
					},
					"` + bob + `": {"address": "` + bob + `", "lsp4TokenName": "Bob Token", "decimals": 18}
				}
			}`))
		})

		ids, err := c.ResolveAddresses(t.Context(), 42, []string{alice, bob})

		require.NoError(t, err)
		require.Len(t, ids, 2)

		assert.Equal(t, "alice", ids[alice].Name)
		assert.Equal(t, alice, ids[alice].Address)
		require.Len(t, ids[alice].ProfileImages, 1)
		assert.Equal(t, "ipfs://Qm1", ids[alice].ProfileImages[0].Src)
		require.NotNil(t, ids[alice].LikesBalance)
		assert.Equal(t, "12000000000000000000", ids[alice].LikesBalance.String())

		assert.Equal(t, "Bob Token", ids[bob].LSP4TokenName)
		require.NotNil(t, ids[bob].Decimals)
		assert.Equal(t, 18, *ids[bob].Decimals)
	})

	t.Run("should fail when the API reports no success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": false}`))
		})

		ids, err := c.ResolveAddresses(t.Context(), 42, []string{alice})

		assert.ErrorIs(t, err, ErrResolveFailed)
		assert.Nil(t, ids)
	})

	t.Run("should reject malformed addresses", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := c.ResolveAddresses(t.Context(), 42, []string{"nope"})
		assert.ErrorIs(t, err, validator.ErrValidationFailed)

		_, err = c.ResolveAddresses(t.Context(), 42, nil)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})
}
