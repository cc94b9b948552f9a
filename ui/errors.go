package ui

import (
	"errors"
	"fmt"

	"github.com/milk9111/uimotion/descriptor"
)

var (
	// ErrInvalidRelation is returned for side-pair tokens outside the relation
	// vocabulary. It wraps descriptor.ErrInvalidDescriptor.
	ErrInvalidRelation = fmt.Errorf("ui: invalid relation type: %w", descriptor.ErrInvalidDescriptor)
	// ErrInvalidValue is returned when a transition value cannot be decoded.
	// It wraps descriptor.ErrInvalidDescriptor.
	ErrInvalidValue = fmt.Errorf("ui: invalid transition value: %w", descriptor.ErrInvalidDescriptor)
	// ErrCapability is returned when an action targets an element that lacks
	// the capability it writes (color, animation, controllers, transitions).
	ErrCapability = errors.New("ui: target lacks capability")
	// ErrNoStage is returned when playback is requested on a component that
	// was created without a stage.
	ErrNoStage = errors.New("ui: component has no stage")
)

func capabilityError(target Element, capability string) error {
	return fmt.Errorf("%w: %q has no %s", ErrCapability, target.Base().id, capability)
}
