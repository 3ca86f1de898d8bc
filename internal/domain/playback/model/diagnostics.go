// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// DiagnosticKind identifies a user-facing diagnostic.
type DiagnosticKind string

const (
	DiagUnsupportedAudio DiagnosticKind = "UNSUPPORTED_AUDIO"
	DiagUnsupportedVideo DiagnosticKind = "UNSUPPORTED_VIDEO"
	DiagDrmError         DiagnosticKind = "DRM_ERROR"
	DiagDecoderError     DiagnosticKind = "DECODER_ERROR"
	DiagPermissionDenied DiagnosticKind = "PERMISSION_DENIED"
	DiagEngineError      DiagnosticKind = "ENGINE_ERROR"
)

// Diagnostic is surfaced to the collaborator for toasts and log lines.
type Diagnostic struct {
	Kind    DiagnosticKind    `json:"kind"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
