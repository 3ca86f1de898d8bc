// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package manager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuGH/playbackctl/internal/domain/playback/model"
	"github.com/ManuGH/playbackctl/internal/domain/playback/ports"
)

func TestDecoderMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *model.DecoderInitializationError
		want string
	}{
		{
			name: "named decoder",
			err:  &model.DecoderInitializationError{DecoderName: "OMX.hevc", MimeType: "video/hevc"},
			want: "unable to instantiate decoder OMX.hevc",
		},
		{
			name: "query failure",
			err:  &model.DecoderInitializationError{MimeType: "video/avc", Cause: &model.DecoderQueryError{}},
			want: "unable to query device decoders",
		},
		{
			name: "secure",
			err:  &model.DecoderInitializationError{MimeType: "video/avc", SecureRequired: true},
			want: "this device does not provide a secure decoder for video/avc",
		},
		{
			name: "missing",
			err:  &model.DecoderInitializationError{MimeType: "audio/ac3"},
			want: "this device does not provide a decoder for audio/ac3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decoderMessage(tt.err))
		})
	}
}

func TestDiagnosticFor(t *testing.T) {
	wrapped := fmt.Errorf("playback: %w", &model.RendererError{
		RendererIndex: 2,
		Cause:         &model.DecoderInitializationError{DecoderName: "c2.vp9", MimeType: "video/x-vnd.on2.vp9"},
	})
	d := diagnosticFor(wrapped)
	assert.Equal(t, model.DiagDecoderError, d.Kind)
	assert.Equal(t, map[string]string{
		"mime_type":      "video/x-vnd.on2.vp9",
		"decoder":        "c2.vp9",
		"renderer_index": "2",
	}, d.Details)

	d = diagnosticFor(errors.New("source went away"))
	assert.Equal(t, model.DiagEngineError, d.Kind)
	assert.Equal(t, "source went away", d.Message)
	assert.Nil(t, d.Details)
}

func TestAspectRatio(t *testing.T) {
	assert.Equal(t, 1.0, aspectRatio(ports.VideoSize{Width: 100}))
	assert.InDelta(t, 16.0/9.0, aspectRatio(ports.VideoSize{Width: 1280, Height: 720}), 1e-9)
	assert.InDelta(t, 2*4.0/3.0, aspectRatio(ports.VideoSize{Width: 640, Height: 480, PixelWidthHeightRatio: 2}), 1e-9)
}
