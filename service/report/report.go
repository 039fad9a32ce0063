package report

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// Result describes how a rendered run differs from its expected rendering
type Result struct {
	Name    string
	Equal   bool
	Diff    string
	Hunks   int
	Added   int
	Removed int
}

// String returns a one line summary
func (r *Result) String() string {
	if r.Equal {
		return fmt.Sprintf("%s: matches expected output", r.Name)
	}
	return fmt.Sprintf("%s: %d hunk(s), +%d -%d lines", r.Name, r.Hunks, r.Added, r.Removed)
}

// Compare diffs expected against actual; name labels both sides of the diff
func Compare(expected, actual []byte, name string) (*Result, error) {
	if name == "" {
		name = "trace"
	}
	ret := &Result{Name: name}
	if bytes.Equal(expected, actual) {
		ret.Equal = true
		return ret, nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actual)),
		FromFile: "expected/" + name,
		ToFile:   "actual/" + name,
		Context:  3,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, fmt.Errorf("diff generation: %w", err)
	}
	ret.Diff = patch
	if patch == "" {
		ret.Equal = true
		return ret, nil
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}
	ret.Hunks = len(fileDiff.Hunks)
	for _, hunk := range fileDiff.Hunks {
		scanner := bufio.NewScanner(bytes.NewReader(hunk.Body))
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			switch line[0] {
			case '+':
				ret.Added++
			case '-':
				ret.Removed++
			}
		}
	}
	return ret, nil
}
