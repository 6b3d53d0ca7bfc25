//go:build go1.18

package css_lexer

import (
	"testing"

	"github.com/csslex/csslex/internal/test"
)

func FuzzTokenize(f *testing.F) {
	f.Add([]byte(`body { color: red }`))
	f.Add([]byte(`U+0025-00FF`))
	f.Add([]byte(`U+4??`))
	f.Add([]byte(`url(https://example.com/foo)`))
	f.Add([]byte(`url("https://example.com/foo")`))
	f.Add([]byte(`url(bad url with spaces)`))
	f.Add([]byte(`"unclosed string`))
	f.Add([]byte(`'unclosed string`))
	f.Add([]byte(`/* unclosed comment`))
	f.Add([]byte(`\61\62\63`))
	f.Add([]byte(`#hash .class ::pseudo :nth-child(2n+1)`))
	f.Add([]byte(`calc(100% - 2px) !important`))

	f.Fuzz(func(t *testing.T, data []byte) {
		source := test.SourceForTest(string(data))
		result, err := Tokenize(source, Options{})
		if err != nil {
			return
		}

		// Tokens are in order and never overlap
		end := int32(0)
		for i, r := range result.Ranges {
			if r.Loc.Start < end || r.Len <= 0 {
				t.Fatalf("token %d has range %v after offset %d", i, r, end)
			}
			if result.Locations[i].Start.Offset != r.Loc.Start || result.Locations[i].End.Offset != r.End() {
				t.Fatalf("token %d has location %v but range %v", i, result.Locations[i], r)
			}
			end = r.End()
		}
	})
}
