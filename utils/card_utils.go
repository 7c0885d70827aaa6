package utils

import "strings"

const (
	codePrefix      = "Код: "
	thumbnailSuffix = "_220x220_1.jpg"
)

// DisplayCode returns the code caption shown on a card, without leading zeros
func DisplayCode(code string) string {
	return codePrefix + strings.TrimLeft(code, "0")
}

// ThumbnailURL returns the CDN variant of a product image sized for a card
func ThumbnailURL(primaryImageURL string) string {
	return strings.Replace(primaryImageURL, ".jpg", thumbnailSuffix, 1)
}

// FormatAssocTags punctuates associated products for inline display:
// " A," "B," "C."
func FormatAssocTags(tags []string) []string {
	formatted := make([]string, len(tags))
	for i, tag := range tags {
		if i == 0 {
			tag = " " + tag
		}
		if i < len(tags)-1 {
			tag += ","
		} else {
			tag += "."
		}
		formatted[i] = tag
	}
	return formatted
}
