package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGramError(t *testing.T) {
	err := New(ErrCodeGrammarInvalid, "bad grammar")
	assert.Equal(t, "GRAMMAR_INVALID: bad grammar", err.Error())
	assert.Nil(t, err.Unwrap())

	cause := fmt.Errorf("underlying")
	wrapped := Wrap(cause, ErrCodeInternal, "something broke")
	assert.Equal(t, "INTERNAL_ERROR: something broke (caused by: underlying)", wrapped.Error())
	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, stderrors.Is(wrapped, cause))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeGrammarNotFound, "not found").
		WithDetail("path", "calc.gram").
		WithDetail("attempts", 2)

	assert.Equal(t, "calc.gram", err.Details["path"])
	assert.Equal(t, 2, err.Details["attempts"])
}

func TestIs(t *testing.T) {
	err := New(ErrCodeConfigNotFound, "missing")
	assert.True(t, Is(err, ErrCodeConfigNotFound))
	assert.False(t, Is(err, ErrCodeConfigInvalid))
	assert.False(t, Is(nil, ErrCodeConfigNotFound))
	assert.False(t, Is(fmt.Errorf("plain"), ErrCodeConfigNotFound))

	// Wrapped GramErrors are found through Unwrap.
	outer := fmt.Errorf("context: %w", err)
	assert.True(t, Is(outer, ErrCodeConfigNotFound))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeSyntaxError, GetCode(New(ErrCodeSyntaxError, "x")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
	assert.Equal(t, ErrorCode(""), GetCode(fmt.Errorf("plain")))
}

func TestToJSON(t *testing.T) {
	err := New(ErrCodeInputNotFound, "no match").WithDetail("pattern", "*.calc")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(err.ToJSON()), &decoded))
	assert.Equal(t, "INPUT_NOT_FOUND", decoded["code"])
	assert.Equal(t, "no match", decoded["message"])
	assert.Equal(t, "*.calc", decoded["details"].(map[string]interface{})["pattern"])
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, ErrCodeConfigNotFound, GetCode(ConfigNotFound("gram.yml")))
	assert.Equal(t, ErrCodeGrammarNotFound, GetCode(GrammarNotFound("calc.gram")))
	assert.Equal(t, ErrCodeGrammarStale, GetCode(GrammarStale("calc.gram", "gen/rules.go")))
	assert.Equal(t, ErrCodeInputNotFound, GetCode(InputNotFound("*.calc")))

	cause := fmt.Errorf("boom")
	assert.Equal(t, ErrCodeSyntaxError, GetCode(SyntaxError("in.calc", cause)))
	assert.Equal(t, ErrCodeGenerateFailed, GetCode(GenerateFailed("gen/rules.go", cause)))
	assert.Equal(t, ErrCodeWatchFailed, GetCode(WatchFailed("calc.gram", cause)))

	stale := GrammarStale("calc.gram", "gen/rules.go")
	assert.Contains(t, stale.Error(), "gen/rules.go is out of date with calc.gram")
}
