package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   Status
	}{
		{"item not found", domainErrors.ErrItemNotFound, http.StatusNotFound, StatusNotFound},
		{"not owner", domainErrors.ErrNotOwner, http.StatusForbidden, StatusForbidden},
		{"self transfer", domainErrors.ErrSelfTransfer, http.StatusBadRequest, StatusError},
		{"invalid price", domainErrors.ErrInvalidPrice, http.StatusBadRequest, StatusValidationError},
		{"invalid rarity", domainErrors.ErrInvalidRarity, http.StatusBadRequest, StatusValidationError},
		{"not for sale", domainErrors.ErrNotForSale, http.StatusBadRequest, StatusError},
		{"price mismatch", domainErrors.ErrPriceMismatch, http.StatusConflict, StatusConflict},
		{"owner cannot offer", domainErrors.ErrOwnerCannotOffer, http.StatusBadRequest, StatusError},
		{"no matching offer", domainErrors.ErrNoMatchingOffer, http.StatusNotFound, StatusNotFound},
		{"duplicate like", domainErrors.ErrDuplicateLike, http.StatusConflict, StatusConflict},
		{"insufficient balance", domainErrors.ErrInsufficientBalance, http.StatusBadRequest, StatusError},
		{"payment failed", domainErrors.ErrPaymentFailed, http.StatusBadGateway, StatusError},
		{"transaction failed", domainErrors.ErrTransactionFailed, http.StatusInternalServerError, StatusInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusCode, resp := MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, statusCode)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestMapDomainErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("settling purchase: %w", domainErrors.ErrPriceMismatch)

	statusCode, resp := MapDomainError(wrapped)
	assert.Equal(t, http.StatusConflict, statusCode)
	assert.Equal(t, string(StatusConflict), resp.Code)
	assert.Contains(t, resp.Error, "settling purchase")
}

func TestMapDomainErrorUnknownFallsBackToInternal(t *testing.T) {
	statusCode, resp := MapDomainError(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, statusCode)
	assert.Equal(t, string(StatusInternalError), resp.Code)
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestWriteDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, domainErrors.ErrItemNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"code":"not_found"`)
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, "Validation failed", map[string]string{"price": "price must be positive"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "price must be positive", body.Errors["price"])
}
