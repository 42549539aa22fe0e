package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, rec
}

// A cash sale sent without an installments key must clear validation; the
// service layer later fills in the single-installment default.
func TestBindSaleRequest_InstallmentsOmitted(t *testing.T) {
	body := `{
		"payment_method": "cash",
		"total": "7.50",
		"items": [{"product_id": "` + uuid.NewString() + `", "quantity": 3, "unit_price": "2.50"}]
	}`
	c, rec := newJSONContext(t, body)

	var req dto.RegisterSaleRequest
	ok := bindAndValidate(c, &req)

	require.True(t, ok, "body: %s", rec.Body.String())
	assert.Equal(t, 0, req.Installments)
}

func TestBindSaleRequest_NegativeInstallmentsRejected(t *testing.T) {
	body := `{
		"payment_method": "credit",
		"installments": -2,
		"total": "7.50",
		"items": [{"product_id": "` + uuid.NewString() + `", "quantity": 3, "unit_price": "2.50"}]
	}`
	c, rec := newJSONContext(t, body)

	var req dto.RegisterSaleRequest
	ok := bindAndValidate(c, &req)

	require.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBindSaleRequest_ExplicitInstallmentsAccepted(t *testing.T) {
	body := `{
		"payment_method": "credit",
		"installments": 6,
		"total": "45.00",
		"items": [{"product_id": "` + uuid.NewString() + `", "quantity": 3, "unit_price": "15.00"}]
	}`
	c, rec := newJSONContext(t, body)

	var req dto.RegisterSaleRequest
	ok := bindAndValidate(c, &req)

	require.True(t, ok, "body: %s", rec.Body.String())
	assert.Equal(t, 6, req.Installments)
}
