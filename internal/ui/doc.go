// Package ui implements the single-screen Fyne interface: caption entries,
// selectors, the live preview, and the export controls.
package ui
