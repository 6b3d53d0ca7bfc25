package test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csslex/csslex/internal/logger"
)

func AssertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Fatalf("%v != %v", a, b)
	}
}

func AssertEqualWithDiff(t *testing.T, a string, b string) {
	t.Helper()
	if a != b {
		t.Fatalf("strings differ (-got +want):\n%s", cmp.Diff(a, b))
	}
}

// This is for values that aren't comparable with "==", such as slices
func AssertDeepEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("values differ (-got +want):\n%s", diff)
	}
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:      0,
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
}
