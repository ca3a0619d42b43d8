package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-services/internal/auth"
	"github.com/spec-kit/clinic-services/internal/domain"
	"github.com/spec-kit/clinic-services/internal/events"
	"github.com/spec-kit/clinic-services/internal/peer"
	"github.com/spec-kit/clinic-services/internal/repository"
	apperrors "github.com/spec-kit/clinic-services/pkg/util"
)

// ReferenceValidator confirms that a foreign reference exists in its owning service.
type ReferenceValidator interface {
	ValidateExists(ctx context.Context, kind peer.Kind, id int64) error
}

var anyRole = []domain.Role{domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin}

// lookupError turns a repository miss into NOT_FOUND for resource and any
// other failure into an internal error.
func lookupError(err error, resource string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.NewInternalError(fmt.Errorf("load %s %d: %w", resource, id, err))
}

func storeError(action string, err error) error {
	return apperrors.NewInternalError(fmt.Errorf("%s: %w", action, err))
}

// createError reports a key collision found by the store as CONFLICT. The
// store is the final arbiter when two creates race past the existence check.
func createError(action string, err error, message string, details map[string]any) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict(message, details)
	}
	return storeError(action, err)
}

func actorOf(identity auth.Identity) events.Actor {
	return events.Actor{UserID: identity.UserID, Role: identity.Role}
}

// publish emits an event after the write committed. Relay failures are
// logged and never undo the write.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event publish failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
