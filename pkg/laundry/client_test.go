package laundry_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshfold/laundry-service/pkg/laundry"
	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

func TestClient_BackendErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "status change not allowed for this order"})
	}))
	t.Cleanup(srv.Close)

	cli := laundry.NewClient(srv.URL)
	_, err := cli.Orders(context.Background())
	require.Error(t, err)

	var berr *laundry.BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusConflict, berr.StatusCode)
	assert.Equal(t, "status change not allowed for this order", berr.Message)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	cli := laundry.NewClient(srv.URL)
	err := cli.MarkSeen(context.Background(), mustUUID(t))
	require.Error(t, err)

	var berr *laundry.BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusBadGateway, berr.StatusCode)
	assert.Equal(t, "bad gateway", berr.Message)
}

func TestClient_TransportErrorIsRecoverable(t *testing.T) {
	// Nothing listens here.
	cli := laundry.NewClient("http://127.0.0.1:1")
	_, err := cli.NotificationCount(context.Background(), mustUUID(t))
	require.Error(t, err)

	var berr *laundry.BackendError
	assert.False(t, errors.As(err, &berr), "transport failures are not backend responses")
}

func TestClient_CreateOrderReturnsID(t *testing.T) {
	want := mustUUID(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var input laundry.CreateOrderInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Ayesha", input.CustomerName)
		assert.Equal(t, "0301-1234567", input.Phone)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"orderId": want.String()})
	}))
	t.Cleanup(srv.Close)

	cli := laundry.NewClient(srv.URL)
	got, err := cli.CreateOrder(context.Background(), laundry.CreateOrderInput{
		ClientID:      mustUUID(t),
		OwnerID:       mustUUID(t),
		CustomerName:  "Ayesha",
		Items:         []laundry.Item{{Name: "Shirt", Count: 3}},
		TotalPrice:    150,
		PaymentMethod: "Cash on Delivery",
		Address:       "14-B Canal Road",
		Phone:         "0301-1234567",
		PickupTime:    "04:30 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClient_UpdateOrderStatusSendsWireShape(t *testing.T) {
	orderID := mustUUID(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/"+orderID.String(), r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Picked Up", body["status"])
		assert.Equal(t, "30 mins", body["estimated_time"])

		json.NewEncoder(w).Encode(laundry.Order{ID: orderID, Status: lifecycle.StatusPickedUp, EstimatedTime: "30 mins"})
	}))
	t.Cleanup(srv.Close)

	cli := laundry.NewClient(srv.URL)
	updated, err := cli.UpdateOrderStatus(context.Background(), orderID, lifecycle.StatusPickedUp, "30 mins")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPickedUp, updated.Status)
	assert.Equal(t, "30 mins", updated.EstimatedTime)
}
