package services

import (
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	svgNamespace     = "http://www.w3.org/2000/svg"
	defaultViewSize  = "512"
	svgDataURLPrefix = "data:image/svg+xml;base64,"
)

var (
	svgCommentRe   = regexp.MustCompile(`(?s)<!--.*?-->`)
	svgXMLDeclRe   = regexp.MustCompile(`(?is)<\?xml.*?\?>`)
	svgDoctypeRe   = regexp.MustCompile(`(?is)<!DOCTYPE[^>]*>`)
	svgElementRe   = regexp.MustCompile(`(?is)<svg\b.*</svg\s*>`)
	svgOpenTagRe   = regexp.MustCompile(`(?is)^<svg\b[^>]*>`)
	svgXMLNSRe     = regexp.MustCompile(`\sxmlns\s*=`)
	svgViewBoxRe   = regexp.MustCompile(`(?i)\sviewBox\s*=`)
	svgWidthRe     = regexp.MustCompile(`\swidth\s*=\s*["']\s*([0-9]*\.?[0-9]+)\s*(?:px)?\s*["']`)
	svgHeightRe    = regexp.MustCompile(`\sheight\s*=\s*["']\s*([0-9]*\.?[0-9]+)\s*(?:px)?\s*["']`)
	svgNoiseRe     = regexp.MustCompile(`(?is)<(metadata|title|desc)\b[^>]*>.*?</(metadata|title|desc)\s*>|<(metadata|title|desc)\b[^>]*/>`)
	svgSpaceRe     = regexp.MustCompile(`[\t\n\r ]+`)
	svgBetweenRe   = regexp.MustCompile(`>\s+<`)
	svgSelfCloseRe = regexp.MustCompile(`\s+/>`)
	svgTagEndRe    = regexp.MustCompile(`\s+>`)
	svgEmptyGRe    = regexp.MustCompile(`<g\b[^>]*>\s*</g\s*>|<g\b[^>]*/>`)
	svgEmptyDefsRe = regexp.MustCompile(`<defs\b[^>]*>\s*</defs\s*>|<defs\b[^>]*/>`)
	svgNumberRe    = regexp.MustCompile(`-?\d+\.\d{4,}`)
	svgTextRe      = regexp.MustCompile(`(?is)<text\b[^>]*>.*?</text\s*>`)
	svgAttrValueRe = regexp.MustCompile(`=\s*"[^"]*"|=\s*'[^']*'`)
)

// NormalizeSVG extracts the <svg> element from model output and gives it a
// canonical root: namespace declared and a viewBox present.
func NormalizeSVG(raw string) (string, error) {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = svgCommentRe.ReplaceAllString(s, "")
	s = svgXMLDeclRe.ReplaceAllString(s, "")
	s = svgDoctypeRe.ReplaceAllString(s, "")

	svg := svgElementRe.FindString(s)
	if svg == "" {
		return "", ErrInvalidSVG
	}

	open := svgOpenTagRe.FindString(svg)
	if open == "" {
		return "", ErrInvalidSVG
	}

	var attrs strings.Builder
	if !svgXMLNSRe.MatchString(open) {
		fmt.Fprintf(&attrs, ` xmlns="%s"`, svgNamespace)
	}
	if !svgViewBoxRe.MatchString(open) {
		width := firstSubmatch(svgWidthRe, open, defaultViewSize)
		height := firstSubmatch(svgHeightRe, open, width)
		fmt.Fprintf(&attrs, ` viewBox="0 0 %s %s"`, width, height)
	}

	if attrs.Len() > 0 {
		svg = svg[:len("<svg")] + attrs.String() + svg[len("<svg"):]
	}

	return strings.TrimSpace(svg), nil
}

// OptimizeSVG strips markup that does not affect rendering: comments,
// metadata, empty groups, whitespace between tags and excess precision in
// attribute values. <text> elements are copied verbatim since whitespace
// and digits inside them are rendered.
func OptimizeSVG(svg string) string {
	s := svgCommentRe.ReplaceAllString(svg, "")
	s = svgNoiseRe.ReplaceAllString(s, "")

	var b strings.Builder
	last := 0
	for _, loc := range svgTextRe.FindAllStringIndex(s, -1) {
		b.WriteString(compactMarkup(s[last:loc[0]]))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(compactMarkup(s[last:]))
	s = b.String()

	for {
		next := svgEmptyDefsRe.ReplaceAllString(svgEmptyGRe.ReplaceAllString(s, ""), "")
		if next == s {
			break
		}
		s = next
	}

	return strings.TrimSpace(s)
}

// compactMarkup minifies a run of markup that holds no text content.
func compactMarkup(s string) string {
	s = svgSpaceRe.ReplaceAllString(s, " ")
	s = svgBetweenRe.ReplaceAllString(s, "><")
	s = svgSelfCloseRe.ReplaceAllString(s, "/>")
	s = svgTagEndRe.ReplaceAllString(s, ">")
	s = svgAttrValueRe.ReplaceAllStringFunc(s, func(value string) string {
		return svgNumberRe.ReplaceAllStringFunc(value, trimPrecision)
	})
	return strings.TrimSpace(s)
}

// SVGToDataURL encodes markup as an embeddable base64 data URL.
func SVGToDataURL(svg string) string {
	return svgDataURLPrefix + base64.StdEncoding.EncodeToString([]byte(svg))
}

func trimPrecision(number string) string {
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return number
	}
	rounded := math.Round(f*1000) / 1000
	if rounded == 0 {
		return "0"
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func firstSubmatch(re *regexp.Regexp, s, fallback string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return fallback
}
