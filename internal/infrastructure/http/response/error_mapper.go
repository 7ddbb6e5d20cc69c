package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/yuzvak/nft-marketplace-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrItemNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Item not found",
	},
	domainErrors.ErrNotOwner: {
		HTTPStatus: http.StatusForbidden,
		Status:     StatusForbidden,
		Message:    "Caller does not own this item",
	},
	domainErrors.ErrSelfTransfer: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cannot transfer an item to its current owner",
	},
	domainErrors.ErrInvalidPrice: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Price must be positive",
	},
	domainErrors.ErrInvalidAmount: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Amount must be positive",
	},
	domainErrors.ErrInvalidRarity: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Unknown rarity tier",
	},
	domainErrors.ErrNotForSale: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Item is not listed for sale",
	},
	domainErrors.ErrPriceMismatch: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Tendered amount does not match the listed price",
	},
	domainErrors.ErrInvalidOfferPrice: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Offer price must be positive",
	},
	domainErrors.ErrOwnerCannotOffer: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Owner cannot place an offer on their own item",
	},
	domainErrors.ErrNoMatchingOffer: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "No matching offer for this item",
	},
	domainErrors.ErrDuplicateLike: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Account has already liked this item",
	},
	domainErrors.ErrInsufficientBalance: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Insufficient balance",
	},
	domainErrors.ErrPaymentFailed: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusError,
		Message:    "Payment could not be settled",
	},
	domainErrors.ErrTransactionFailed: {
		HTTPStatus: http.StatusInternalServerError,
		Status:     StatusInternalError,
		Message:    "Transaction failed",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
