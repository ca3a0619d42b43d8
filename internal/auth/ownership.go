package auth

import (
	"context"
	"fmt"

	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// OwnedResource exposes the user ids allowed to mutate a record.
type OwnedResource interface {
	OwnerIDs() []int64
}

// ExistsFunc reports whether a record is stored under id.
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// CheckOwnership allows only callers whose user id is one of the resource's owners.
func CheckOwnership(identity Identity, resource OwnedResource) error {
	if !identity.Authenticated {
		return apperrors.NewUnauthorized("authentication required")
	}
	for _, owner := range resource.OwnerIDs() {
		if owner == identity.UserID {
			return nil
		}
	}
	return apperrors.NewForbidden("you can only modify your own records")
}

// CheckUniqueCreate rejects creation when a record already exists for userID.
func CheckUniqueCreate(ctx context.Context, userID int64, exists ExistsFunc) error {
	found, err := exists(ctx, userID)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("check existing profile: %w", err))
	}
	if found {
		return apperrors.NewConflict("profile already exists", map[string]any{"user_id": userID})
	}
	return nil
}
