package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsToString(t *testing.T) {
	assert.Equal(t, "productive,motivated", TagsToString([]string{" Productive", "MOTIVATED "}))
	assert.Equal(t, "", TagsToString(nil))
	assert.Equal(t, "solo", TagsToString([]string{"", "  ", "Solo"}))
}

func TestStringToTags(t *testing.T) {
	assert.Equal(t, []string{"productive", "motivated"}, StringToTags("productive,motivated"))
	assert.Empty(t, StringToTags(""))
	assert.Equal(t, []string{"tired"}, StringToTags(" tired , "))
}
