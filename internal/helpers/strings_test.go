package helpers_test

import (
	"testing"

	"github.com/csslex/csslex/internal/helpers"
	"github.com/csslex/csslex/internal/test"
)

func TestEqualFoldASCII(t *testing.T) {
	test.AssertEqual(t, helpers.EqualFoldASCII("KHZ", "khz"), true)
	test.AssertEqual(t, helpers.EqualFoldASCII("kHz", "khz"), true)
	test.AssertEqual(t, helpers.EqualFoldASCII("khz", "kh"), false)
	test.AssertEqual(t, helpers.EqualFoldASCII("\u212Ahz", "khz"), false)
	test.AssertEqual(t, helpers.EqualFoldASCII("", ""), true)
}
