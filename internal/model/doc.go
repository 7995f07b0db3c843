package model

// Package model defines domain data structures used across the app: the
// editing composition, the aspect preset table, media attachments, and
// export task/status enums. Structures are designed for direct use in the
// UI and explicit state transitions.
