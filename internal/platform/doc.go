package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, media probing via the ffprobe CLI, and OS open/reveal.
