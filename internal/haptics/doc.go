// Package haptics abstracts the physical confirmation pulse.
//
// The handheld form factor vibrates on success; the CLI rendition rings the
// terminal bell instead. Feedback fires on accept, record, and clear only,
// never on rejections.
package haptics
