package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendMessageRules(t *testing.T) {
	assert.NoError(t, Struct(AppendMessage{Body: "hi", From: "creator"}))
	assert.NoError(t, Struct(AppendMessage{Body: "hi", From: "fan"}))

	assert.Error(t, Struct(AppendMessage{Body: "", From: "creator"}))
	assert.Error(t, Struct(AppendMessage{Body: "hi", From: "bot"}))
	assert.Error(t, Struct(AppendMessage{Body: strings.Repeat("x", 5001), From: "fan"}))
	assert.NoError(t, Struct(AppendMessage{Body: strings.Repeat("x", 5000), From: "fan"}))
}

func TestReplaceTagsRules(t *testing.T) {
	tags := []string{"whale", "collector"}
	assert.NoError(t, Struct(ReplaceTags{Tags: &tags}))

	// explicit empty list clears tags; a missing field does not
	empty := []string{}
	assert.NoError(t, Struct(ReplaceTags{Tags: &empty}))
	assert.Error(t, Struct(ReplaceTags{}))

	blank := []string{"ok", ""}
	assert.Error(t, Struct(ReplaceTags{Tags: &blank}))

	long := []string{strings.Repeat("x", 65)}
	assert.Error(t, Struct(ReplaceTags{Tags: &long}))
}

func TestFieldErrorMessage(t *testing.T) {
	err := Struct(AppendMessage{})
	assert.Error(t, err)
	fe, ok := err.(*FieldError)
	assert.True(t, ok)
	assert.Contains(t, fe.Message, "body")
	assert.Contains(t, fe.Message, "from")
}
