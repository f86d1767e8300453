// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vanity

import (
	"regexp"
	"strings"
)

// Match decides whether a rendered account address is a hit. The four
// variants mirror the matching modes the original vanity tool
// exposed: a prefix after the fixed network tag, a suffix, either of
// the two, or an arbitrary regular expression over the whole address.
type Match struct {
	kind    matchKind
	pattern string
	re      *regexp.Regexp
}

type matchKind int

const (
	matchStartsWith matchKind = iota
	matchEndsWith
	matchStartOrEnd
	matchRegex
)

// StartsWith matches addresses whose body (the part after the network
// prefix and its leading digit) starts with s.
func StartsWith(s string) Match { return Match{kind: matchStartsWith, pattern: s} }

// EndsWith matches addresses ending in s.
func EndsWith(s string) Match { return Match{kind: matchEndsWith, pattern: s} }

// StartOrEnd matches addresses starting or ending with s.
func StartOrEnd(s string) Match { return Match{kind: matchStartOrEnd, pattern: s} }

// Regexp matches addresses against an arbitrary regular expression.
func Regexp(expr string) (Match, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Match{}, err
	}
	return Match{kind: matchRegex, re: re}, nil
}

// bodyOffset skips the network prefix and its underscore plus the
// address's leading digit, the same skip the reference tool applies
// before testing a StartsWith/StartOrEnd pattern, so that every vanity
// address doesn't trivially start with the prefix itself.
const bodyOffset = len(addressPrefix) + 2

func (m Match) matches(addr string) bool {
	body := addr
	if len(addr) > bodyOffset {
		body = addr[bodyOffset:]
	}

	switch m.kind {
	case matchStartsWith:
		return strings.HasPrefix(body, m.pattern)
	case matchEndsWith:
		return strings.HasSuffix(addr, m.pattern)
	case matchStartOrEnd:
		return strings.HasPrefix(body, m.pattern) || strings.HasSuffix(addr, m.pattern)
	case matchRegex:
		return m.re.MatchString(addr)
	default:
		return false
	}
}
