package util

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// Slugify 标题转 slug，空结果回退到随机短后缀
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return "post-" + uuid.NewString()[:8]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// UniqueSlug 为冲突的 slug 追加随机短后缀
func UniqueSlug(slug string) string {
	return slug + "-" + uuid.NewString()[:8]
}
