// Package scan models raw scanner input before it reaches the matcher.
//
// A ScanEvent carries the decoded payload string plus the symbology the
// decoder reported. The matcher only inspects the payload; the symbology tag
// is retained for logging. Normalize folds full-width characters emitted by
// keyboard-wedge scanners running under CJK input methods so that downstream
// prefix and digit checks see plain ASCII.
package scan
