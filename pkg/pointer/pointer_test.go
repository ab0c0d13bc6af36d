// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stickynote/pkg/pointer"
)

/*
TestPointer verifies nil falls back while a supplied empty value is kept.
*/
func TestPointer(t *testing.T) {
	empty, x := "", "x"

	assert.Equal(t, "", pointer.Val[string](nil))
	assert.Equal(t, "", pointer.Val(&empty))
	assert.Equal(t, "x", pointer.Val(&x))

	assert.Equal(t, "kept", pointer.Fallback(nil, "kept"))
	assert.Equal(t, "", pointer.Fallback(&empty, "kept"))
}
