package errors

import (
	"errors"
)

var (
	ErrItemNotFound = errors.New("item not found")

	ErrNotOwner      = errors.New("caller is not the item owner")
	ErrSelfTransfer  = errors.New("cannot transfer item to yourself")
	ErrInvalidPrice  = errors.New("price must be greater than zero")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrNotForSale    = errors.New("item is not for sale")
	ErrPriceMismatch = errors.New("tendered amount does not match the listed price")

	ErrInvalidOfferPrice = errors.New("offer price must be greater than zero")
	ErrOwnerCannotOffer  = errors.New("owner cannot place an offer on their own item")
	ErrNoMatchingOffer   = errors.New("no matching offer from this buyer")

	ErrDuplicateLike = errors.New("item already liked by this account")

	ErrInvalidRarity = errors.New("unknown rarity tier")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPaymentFailed       = errors.New("payment transfer failed")

	ErrTransactionFailed = errors.New("transaction failed")
)
