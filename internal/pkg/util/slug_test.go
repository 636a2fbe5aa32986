package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "a-b-c", Slugify("  a  b---c  "))
	assert.Equal(t, "2025-review", Slugify("2025 Review"))

	// 空结果回退到随机后缀
	fallback := Slugify("！！！")
	assert.True(t, strings.HasPrefix(fallback, "post-"))
	assert.Len(t, fallback, len("post-")+8)

	long := Slugify(strings.Repeat("a", 300))
	assert.LessOrEqual(t, len(long), 200)
}

func TestUniqueSlug(t *testing.T) {
	s := UniqueSlug("hello-world")
	assert.True(t, strings.HasPrefix(s, "hello-world-"))
	assert.NotEqual(t, s, UniqueSlug("hello-world"))
}
