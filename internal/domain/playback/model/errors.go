// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import "fmt"

// DecoderQueryError reports that the platform decoder list could not be queried.
type DecoderQueryError struct {
	Cause error
}

func (e *DecoderQueryError) Error() string {
	if e.Cause == nil {
		return "decoder query failed"
	}
	return "decoder query failed: " + e.Cause.Error()
}

func (e *DecoderQueryError) Unwrap() error { return e.Cause }

// DecoderInitializationError reports a decoder that could not be found or instantiated.
type DecoderInitializationError struct {
	DecoderName    string // empty when no suitable decoder exists
	SecureRequired bool
	MimeType       string
	Cause          error
}

func (e *DecoderInitializationError) Error() string {
	if e.DecoderName != "" {
		return fmt.Sprintf("decoder init failed: %s (%s)", e.DecoderName, e.MimeType)
	}
	return fmt.Sprintf("decoder init failed: no decoder for %s (secure=%t)", e.MimeType, e.SecureRequired)
}

func (e *DecoderInitializationError) Unwrap() error { return e.Cause }

// RendererError is a fatal failure raised by one engine renderer.
type RendererError struct {
	RendererIndex int
	Cause         error
}

func (e *RendererError) Error() string {
	return fmt.Sprintf("renderer %d: %v", e.RendererIndex, e.Cause)
}

func (e *RendererError) Unwrap() error { return e.Cause }

// GenericEngineError is any engine failure that is not renderer specific.
type GenericEngineError struct {
	Message string
	Cause   error
}

func (e *GenericEngineError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *GenericEngineError) Unwrap() error { return e.Cause }
