// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package store

import "strings"

// MatchesPattern reports whether name matches a glob-like pattern: '*'
// matches any sequence of characters, every other character matches
// literally, matching is case-insensitive, and a nil or empty pattern
// matches everything.
func MatchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	return matchGlob(strings.ToLower(name), strings.ToLower(pattern))
}

// matchGlob implements '*'-only globbing with a small DP over
// (name-position, pattern-position), which is simpler to reason about than
// backtracking recursion and has no pathological-input blowup.
func matchGlob(name, pattern string) bool {
	n, p := len(name), len(pattern)
	// dp[i][j] = name[i:] matches pattern[j:]
	dp := make([][]bool, n+1)
	for i := range dp {
		dp[i] = make([]bool, p+1)
	}
	dp[n][p] = true
	for j := p - 1; j >= 0; j-- {
		if pattern[j] == '*' {
			dp[n][j] = dp[n][j+1]
		}
	}
	for i := n - 1; i >= 0; i-- {
		for j := p - 1; j >= 0; j-- {
			if pattern[j] == '*' {
				dp[i][j] = dp[i+1][j] || dp[i][j+1]
			} else if pattern[j] == name[i] {
				dp[i][j] = dp[i+1][j+1]
			}
		}
	}
	return dp[0][0]
}
