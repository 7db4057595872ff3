package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/orderrelay/pkg/delivery"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*delivery.Request)
		fields []string
	}{
		{"valid", func(*delivery.Request) {}, nil},
		{"empty address", func(r *delivery.Request) { r.RecipientAddress = "" }, []string{"recipient_address"}},
		{"address without domain dot", func(r *delivery.Request) { r.RecipientAddress = "ana@example" }, []string{"recipient_address"}},
		{"blank name", func(r *delivery.Request) { r.CustomerName = "   " }, []string{"customer_name"}},
		{"empty reference", func(r *delivery.Request) { r.OrderReference = "" }, []string{"order_reference"}},
		{
			"everything missing",
			func(r *delivery.Request) { *r = delivery.Request{} },
			[]string{"recipient_address", "customer_name", "order_reference"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, delivery.ErrInvalidRequest)
			var verrs delivery.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.fields, verrs.Fields())
			for _, f := range tt.fields {
				assert.True(t, verrs.Has(f))
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	err := delivery.Request{RecipientAddress: "bad", CustomerName: "Ana", OrderReference: "ORD-1"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "delivery: invalid request: recipient_address: must be a valid email address", err.Error())
}
