// Package markdown holds the small pure-text helpers the codecs and filters
// share: tag extraction, link and image detection, block-anchor stripping.
package markdown

import (
	"regexp"

	"tableflip.dev/micropost/pkg/id"
)

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]*`")
	tagRe        = regexp.MustCompile(`#[a-zA-Z\x{3000}-\x{9fff}\x{f900}-\x{faff}][^\s#]*`)

	anchorRe       = regexp.MustCompile(`\s*\^` + id.BlockPrefix + `[a-z0-9]{4}\s*$`)
	internalLinkRe = regexp.MustCompile(`\[\[.+?\]\]`)
	externalLinkRe = regexp.MustCompile(`https?://[^\s)>]+`)
	mdImageRe      = regexp.MustCompile(`!\[.*?\]\(.+?\)`)
	wikiImageRe    = regexp.MustCompile(`!\[\[.+?\]\]`)
)

// ExtractTags returns the distinct #tags in content, in first-seen order.
// Code spans are ignored so a #define in a snippet is not a tag.
func ExtractTags(content string) []string {
	cleaned := fencedCodeRe.ReplaceAllString(content, "")
	cleaned = inlineCodeRe.ReplaceAllString(cleaned, "")

	var tags []string
	seen := map[string]bool{}
	for _, m := range tagRe.FindAllString(cleaned, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		tags = append(tags, m)
	}
	return tags
}

// StripAnchor removes a trailing ^mpXXXX block anchor, if present.
func StripAnchor(content string) string {
	return anchorRe.ReplaceAllString(content, "")
}

// HasInternalLink reports whether content contains a [[wiki link]].
func HasInternalLink(content string) bool {
	return internalLinkRe.MatchString(content)
}

// HasExternalLink reports whether content contains an http(s) URL.
func HasExternalLink(content string) bool {
	return externalLinkRe.MatchString(content)
}

// HasImage reports whether content embeds an image, Markdown or wiki style.
func HasImage(content string) bool {
	return mdImageRe.MatchString(content) || wikiImageRe.MatchString(content)
}
