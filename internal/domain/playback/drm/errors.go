// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package drm

import (
	"errors"
	"fmt"
)

// Reason classifies why a DRM session could not be built.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonPlatformTooOld
	ReasonUnsupportedScheme
)

func (r Reason) String() string {
	switch r {
	case ReasonPlatformTooOld:
		return "platform_too_old"
	case ReasonUnsupportedScheme:
		return "unsupported_scheme"
	default:
		return "unknown"
	}
}

// UnsupportedDrmError is returned when protected playback is unavailable.
type UnsupportedDrmError struct {
	Reason Reason
	Cause  error
}

func (e *UnsupportedDrmError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("drm unsupported (%s): %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("drm unsupported (%s)", e.Reason)
}

func (e *UnsupportedDrmError) Unwrap() error { return e.Cause }

// UserMessage is the text shown to the user for this failure.
func (e *UnsupportedDrmError) UserMessage() string {
	switch e.Reason {
	case ReasonPlatformTooOld:
		return "Protected content not supported on API levels below 18"
	case ReasonUnsupportedScheme:
		return "This device does not support the required DRM scheme"
	default:
		return "An unknown DRM error occurred"
	}
}

// ReasonOf extracts the failure reason from err, or ReasonUnknown.
func ReasonOf(err error) Reason {
	var ude *UnsupportedDrmError
	if errors.As(err, &ude) {
		return ude.Reason
	}
	return ReasonUnknown
}

var ErrManagerClosed = errors.New("drm: session manager closed")
