// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// stripMarks decomposes accented runes and drops the combining marks,
	// so "Çağrı" becomes "Cagri" before the ASCII pass.
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// ligatures maps runes that don't decompose into base letter + mark.
var ligatures = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"đ", "d",
	"ł", "l",
	"ı", "i",
)

// Generate creates a URL-friendly slug from the given string. Identical
// titles always yield identical slugs — uniqueness is enforced by the
// database index, not here.
// Example: "Çağrı's Post, 2026!" → "cagris-post-2026"
func Generate(s string) string {
	result, _, err := transform.String(stripMarks, strings.TrimSpace(s))
	if err != nil {
		result = strings.TrimSpace(s)
	}
	result = ligatures.Replace(strings.ToLower(result))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
