package jerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_MessageIncludesKindAndLine(t *testing.T) {
	testData := []struct {
		name string
		err  error
		want string
	}{
		{"lex", Lexf(3, 5, "unexpected character %q", '$'), "lex error at line 3: unexpected character '$'"},
		{"parse", Parsef(7, "expected %s", "identifier"), "syntax error at line 7: expected identifier"},
		{"symbol", Symbolf(9, "undeclared identifier %q", "foo"), `symbol error at line 9: undeclared identifier "foo"`},
	}
	for _, testD := range testData {
		t.Run(testD.name, func(t *testing.T) {
			assert.Equal(t, testD.want, testD.err.Error())
		})
	}
}
