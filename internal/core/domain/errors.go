package domain

import (
	"fmt"

	"github.com/SscSPs/commission_app/internal/apperrors"
)

var (
	ErrInvalidStatus      = fmt.Errorf("%w: invalid status", apperrors.ErrValidation)
	ErrInvalidTransition  = fmt.Errorf("%w: transition not allowed", apperrors.ErrConflict)
	ErrNoItems            = fmt.Errorf("%w: commission has no items", apperrors.ErrConflict)
	ErrNotAllPicked       = fmt.Errorf("%w: not all items are picked", apperrors.ErrConflict)
	ErrBackorderPending   = fmt.Errorf("%w: commission has backordered items", apperrors.ErrConflict)
	ErrItemBackordered    = fmt.Errorf("%w: item is on backorder and cannot be picked", apperrors.ErrValidation)
	ErrBackorderStockItem = fmt.Errorf("%w: only external items can be backordered", apperrors.ErrValidation)
	ErrItemsLocked        = fmt.Errorf("%w: items can only be changed while the commission is being prepared", apperrors.ErrConflict)
	ErrNotPickable        = fmt.Errorf("%w: items cannot be picked in this status", apperrors.ErrConflict)
	ErrSupplierRequired   = fmt.Errorf("%w: a supplier is required for supplier returns", apperrors.ErrValidation)
	ErrInvalidDisposition = fmt.Errorf("%w: unknown return disposition", apperrors.ErrValidation)
	ErrNotScannable       = fmt.Errorf("%w: commission is not part of the open audit", apperrors.ErrConflict)
	ErrRetentionExpired   = fmt.Errorf("%w: commission is past its restore window", apperrors.ErrNotFound)
	ErrNotDeleted         = fmt.Errorf("%w: commission is not in the trash", apperrors.ErrConflict)
	ErrInvalidItem        = fmt.Errorf("%w: invalid item", apperrors.ErrValidation)
)

// TransitionError describes a rejected status change.
func TransitionError(from, to CommissionStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
