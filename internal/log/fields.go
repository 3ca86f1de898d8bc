// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldSessionID  = "session_id"
	FieldRequestID  = "request_id"
	FieldGeneration = "generation"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Media fields
	FieldLocator       = "locator"
	FieldExtension     = "extension"
	FieldContentType   = "content_type"
	FieldSourceCount   = "source_count"
	FieldDrmScheme     = "drm_scheme"
	FieldLicenseURL    = "license_url"
	FieldRendererIndex = "renderer_index"
	FieldTrackType     = "track_type"
	FieldMimeType      = "mime_type"
	FieldDecoder       = "decoder"

	// State fields
	FieldOldState     = "old_state"
	FieldNewState     = "new_state"
	FieldSourceNeeded = "source_needed"
	FieldPeriodIndex  = "period_index"
	FieldPositionMs   = "position_ms"

	// Path fields
	FieldPath = "path"
)
