// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
)

// diagnosticFor maps an engine error to the diagnostic shown to the user.
// Decoder initialization failures get a dedicated message.
func diagnosticFor(err error) model.Diagnostic {
	var die *model.DecoderInitializationError
	if !errors.As(err, &die) {
		return model.Diagnostic{Kind: model.DiagEngineError, Message: err.Error()}
	}
	details := map[string]string{"mime_type": die.MimeType}
	if die.DecoderName != "" {
		details["decoder"] = die.DecoderName
	}
	var rerr *model.RendererError
	if errors.As(err, &rerr) {
		details["renderer_index"] = strconv.Itoa(rerr.RendererIndex)
	}
	return model.Diagnostic{Kind: model.DiagDecoderError, Message: decoderMessage(die), Details: details}
}

func decoderMessage(e *model.DecoderInitializationError) string {
	if e.DecoderName != "" {
		return "unable to instantiate decoder " + e.DecoderName
	}
	var qe *model.DecoderQueryError
	switch {
	case errors.As(e.Cause, &qe):
		return "unable to query device decoders"
	case e.SecureRequired:
		return "this device does not provide a secure decoder for " + e.MimeType
	default:
		return "this device does not provide a decoder for " + e.MimeType
	}
}

// logMetadataFrame writes one debug line per ID3 frame.
func logMetadataFrame(logger zerolog.Logger, f ports.MetadataFrame) {
	ev := logger.Debug().Str("event", "playback.metadata").Str("frame", f.ID)
	switch {
	case f.ID == "TXXX":
		ev = ev.Str("description", f.Description).Str("value", f.Value)
	case f.ID == "PRIV":
		ev = ev.Str("owner", f.Owner)
	case f.ID == "GEOB":
		ev = ev.Str("mime_type", f.MimeType).Str("filename", f.Filename).Str("description", f.Description)
	case f.ID == "APIC":
		ev = ev.Str("mime_type", f.MimeType).Str("description", f.Description)
	case strings.HasPrefix(f.ID, "T"):
		ev = ev.Str("description", f.Description).Str("value", f.Value)
	}
	ev.Msg(fmt.Sprintf("ID3 %s", f.ID))
}
