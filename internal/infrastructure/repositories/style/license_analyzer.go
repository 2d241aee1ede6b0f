package style

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// licenseFiles are checked in order; the first one that identifies wins.
//
//nolint:gochecknoglobals // static metric definition
var licenseFiles = []string{
	"LICENSE",
	"LICENSE.txt",
	"LICENCE",
	"LICENCE.txt",
}

// LicenseAnalyzer names the project license from the license file text.
type LicenseAnalyzer struct{}

// NewLicenseAnalyzer creates the "license" metric group.
func NewLicenseAnalyzer() repositories.AnalyzerRepository {
	return &LicenseAnalyzer{}
}

func (a *LicenseAnalyzer) Name() string { return "license" }

// Analyze records the identified license under "license", or an empty string
// when no candidate file identifies. A file that exists but cannot be
// identified logs a warning and the search moves on to the next spelling.
func (a *LicenseAnalyzer) Analyze(_ context.Context, dir string) (entities.Report, error) {
	for _, name := range licenseFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if license := detectLicense(data); license != "" {
			return entities.Report{"license": license}, nil
		}
		logger.Warnf("Unknown license in %s", path)
	}
	return entities.Report{"license": ""}, nil
}

// detectLicense matches the body against phrases that identify the common
// licenses. Phrases that appear inside other license texts (the LGPL quotes
// the GPL, for instance) are checked before the license they quote.
func detectLicense(data []byte) string {
	text := strings.ToLower(strings.Join(strings.Fields(string(data)), " "))
	switch {
	case strings.Contains(text, "free and unencumbered software released into the public domain"):
		return "unlicense"
	case strings.Contains(text, "mozilla public license"):
		return "mpl-2.0"
	case strings.Contains(text, "gnu affero general public license"):
		return "agpl-3.0"
	case strings.Contains(text, "gnu lesser general public license"):
		if strings.Contains(text, "version 3") {
			return "lgpl-3.0"
		}
		return "lgpl-2.1"
	case strings.Contains(text, "gnu general public license"):
		if strings.Contains(text, "version 3") {
			return "gpl-3.0"
		}
		return "gpl-2.0"
	case strings.Contains(text, "apache license"):
		return "apache-2.0"
	case strings.Contains(text, "redistribution and use in source and binary forms"):
		if strings.Contains(text, "neither the name") {
			return "bsd-3-clause"
		}
		return "bsd-2-clause"
	case strings.Contains(text, "isc license"),
		strings.Contains(text, "permission to use, copy, modify, and/or distribute this software"):
		return "isc"
	case strings.Contains(text, "permission is hereby granted, free of charge"),
		strings.Contains(text, "mit license"):
		return "mit"
	}
	return ""
}
