package entities

// Version is the pystyle release version, surfaced by the CLI and the
// User-Agent sent to the package index.
const Version = "0.1.0"

// UserAgent identifies pystyle to PyPI and to the repository hosts.
const UserAgent = "pystyle/" + Version
