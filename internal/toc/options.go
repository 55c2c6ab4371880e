// Package toc derives a table of contents from Markdown headings and keeps it in sync inside the document.
package toc

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Collision policies for duplicate anchors.
const (
	CollisionNone   = "none"
	CollisionGitHub = "github"
)

// Options controls heading extraction, rendering and placement.
type Options struct {
	// Title is the heading line emitted at the top of every rendered TOC.
	Title string
	// ReservedLabels are heading titles that mark a TOC and are never listed in it.
	ReservedLabels []string
	// ExistingPatterns match a line holding an existing TOC heading.
	ExistingPatterns []string
	// SummaryHeadings are line prefixes introducing a summary section the TOC goes after.
	SummaryHeadings []string
	// AnchorCollisions is CollisionNone or CollisionGitHub.
	AnchorCollisions string
	// SkipCodeFences ignores heading-looking lines inside fenced code blocks.
	SkipCodeFences bool
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Title:          "## 目录",
		ReservedLabels: []string{"目录", "Table of Contents", "目錄"},
		ExistingPatterns: []string{
			`^## 目录\s*$`,
			`^## Table of Contents\s*$`,
			`^## 目錄\s*$`,
		},
		SummaryHeadings:  []string{"## 摘要", "## 概述", "## 简介", "## Abstract"},
		AnchorCollisions: CollisionNone,
	}
}

// Fingerprint identifies the options that affect rendered output.
func (o Options) Fingerprint() string {
	h := sha256.New()
	parts := [][]string{
		{o.Title, o.AnchorCollisions, fmt.Sprint(o.SkipCodeFences)},
		o.ReservedLabels,
		o.ExistingPatterns,
		o.SummaryHeadings,
	}
	for _, p := range parts {
		h.Write([]byte(strings.Join(p, "\x1f")))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// Synchronizer holds compiled options. It is safe for concurrent use.
type Synchronizer struct {
	opts     Options
	existing []*regexp.Regexp
	reserved map[string]bool
}

// New validates opts and compiles its patterns.
func New(opts Options) (*Synchronizer, error) {
	if strings.TrimSpace(opts.Title) == "" {
		return nil, fmt.Errorf("toc title must not be empty")
	}
	switch opts.AnchorCollisions {
	case "":
		opts.AnchorCollisions = CollisionNone
	case CollisionNone, CollisionGitHub:
	default:
		return nil, fmt.Errorf("unknown anchor collision policy %q", opts.AnchorCollisions)
	}

	s := &Synchronizer{
		opts:     opts,
		reserved: make(map[string]bool, len(opts.ReservedLabels)),
	}
	for _, l := range opts.ReservedLabels {
		s.reserved[strings.TrimSpace(l)] = true
	}
	for _, p := range opts.ExistingPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid toc pattern %q: %w", p, err)
		}
		s.existing = append(s.existing, re)
	}

	// The rendered title must be found again on the next run and never listed as a heading.
	title := strings.TrimSpace(opts.Title)
	if label := titleLabel(title); label != "" {
		s.reserved[label] = true
	}
	s.existing = append(s.existing, regexp.MustCompile(`^\s*`+regexp.QuoteMeta(title)+`\s*$`))
	return s, nil
}

// titleLabel returns the heading text of a title line such as "## Contents".
func titleLabel(title string) string {
	m := headingRegex.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[2])
}

// Options returns the options the synchronizer was built with.
func (s *Synchronizer) Options() Options { return s.opts }
