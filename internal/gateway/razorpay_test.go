package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient("", "secret", "")
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewClient("key", "", "")
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCreateOrderSendsCaptureFlag(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "order_abc"})
	}))
	defer srv.Close()

	c, err := NewClient("key_id", "key_secret", srv.URL)
	require.NoError(t, err)

	id, err := c.CreateOrder(context.Background(), 149900, "INR", false, map[string]string{"order_ref": "SNZ-1"})
	require.NoError(t, err)
	assert.Equal(t, "order_abc", id)
	assert.Equal(t, float64(149900), got["amount"])
	assert.Equal(t, float64(0), got["payment_capture"])

	_, err = c.CreateOrder(context.Background(), 100, "INR", true, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["payment_capture"])
}

func TestRejectionRelaysDescriptionVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"code":        "BAD_REQUEST_ERROR",
				"description": "The amount must be atleast INR 1.00",
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient("key_id", "key_secret", srv.URL)
	require.NoError(t, err)

	_, err = c.Capture(context.Background(), "pay_1", 0, "INR")
	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "The amount must be atleast INR 1.00", rej.Description)
}

func TestUnauthorizedIsConfigError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient("bad", "creds", srv.URL)
	require.NoError(t, err)

	_, err = c.Refund(context.Background(), "pay_1", 100, nil)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.False(t, errors.As(err, new(*RejectedError)))
}
