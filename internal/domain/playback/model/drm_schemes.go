// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Well-known DRM system identifiers.
var (
	WidevineUUID  = uuid.MustParse("edef8ba9-79d6-4ace-a3c8-27dcd51d21ed")
	PlayReadyUUID = uuid.MustParse("9a04f079-9840-4286-ab92-e65be0885f95")
	ClearKeyUUID  = uuid.MustParse("e2719d58-a985-b3c9-781a-b030af78d30e")
)

var drmSchemeNames = map[string]uuid.UUID{
	"widevine":  WidevineUUID,
	"playready": PlayReadyUUID,
	"clearkey":  ClearKeyUUID,
}

// ParseDrmScheme accepts a UUID string or one of the names widevine, playready, clearkey.
func ParseDrmScheme(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if id, ok := drmSchemeNames[strings.ToLower(s)]; ok {
		return id, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("drm scheme %q: %w", s, err)
	}
	return id, nil
}

// DrmSchemeName returns the well-known name for id, or its canonical UUID form.
func DrmSchemeName(id uuid.UUID) string {
	for name, known := range drmSchemeNames {
		if known == id {
			return name
		}
	}
	return id.String()
}
