package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRequestNormalize_AliasedKeys(t *testing.T) {
	payload := `{
		"customerId": 7,
		"shippingMethod": "Home Delivery",
		"paymentMethod": "Cash on Delivery",
		"recipientName": "Alex Chen",
		"items": [
			{"id": 10, "qty": 2, "price": 1500},
			{"productId": 11, "quantity": 3, "unitPrice": 300}
		]
	}`

	var req orderRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	canonical := req.normalize()
	assert.Equal(t, int64(7), canonical.CustomerID)
	require.Len(t, canonical.Items, 2)

	assert.Equal(t, int64(10), canonical.Items[0].ProductID)
	assert.Equal(t, int64(2), canonical.Items[0].Quantity)
	assert.Equal(t, int64(1500), canonical.Items[0].UnitPrice)

	assert.Equal(t, int64(11), canonical.Items[1].ProductID)
	assert.Equal(t, int64(3), canonical.Items[1].Quantity)
	assert.Equal(t, int64(300), canonical.Items[1].UnitPrice)
}

func TestOrderRequestNormalize_QuantityDefaultsToOne(t *testing.T) {
	var req orderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id": 10}]}`), &req))

	canonical := req.normalize()
	require.Len(t, canonical.Items, 1)
	assert.Equal(t, int64(1), canonical.Items[0].Quantity)
}

func TestOrderRequestNormalize_MissingProductIDSurvivesToValidation(t *testing.T) {
	var req orderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"qty": 2}]}`), &req))

	canonical := req.normalize()
	require.Len(t, canonical.Items, 1)
	// The shim only reshapes; rejecting the item is the validator's job.
	assert.Equal(t, int64(0), canonical.Items[0].ProductID)
}
