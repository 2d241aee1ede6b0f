package style

// CountLines exports countLines for testing.
var CountLines = countLines //nolint:gochecknoglobals // test export

// DetectLicense exports detectLicense for testing.
var DetectLicense = detectLicense //nolint:gochecknoglobals // test export

// ReadFirstLine exports readFirstLine for testing.
var ReadFirstLine = readFirstLine //nolint:gochecknoglobals // test export
