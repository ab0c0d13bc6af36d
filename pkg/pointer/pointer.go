// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Partial-update payloads model "field omitted" as a nil pointer and
"field supplied" as a non-nil one, even when the supplied value is empty.
*/
package pointer

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	var zero T
	return Fallback(p, zero)
}

// Fallback dereferences p, returning fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
