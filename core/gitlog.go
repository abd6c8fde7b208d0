package core

import (
	"strconv"
	"strings"
	"time"
)

// FileChange is one file touched by a commit, with numstat churn data.
// Binary files report zero added/deleted lines.
type FileChange struct {
	Path    string
	Added   int
	Deleted int
}

// Commit is one parsed commit from the activity log.
type Commit struct {
	Hash   string
	Author string
	Date   time.Time
	Files  []FileChange
}

// ParseActivityLog parses the output of
// `git log --numstat --pretty=format:--%H|%an|%ad --date=iso-strict`
// into a list of commits, newest first. Malformed lines are skipped.
func ParseActivityLog(out []byte) []Commit {
	var commits []Commit

	for line := range strings.SplitSeq(string(out), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "--") {
			if c, ok := parseCommitHeader(line); ok {
				commits = append(commits, c)
			}
			continue
		}

		if len(commits) == 0 {
			continue // stats line before any header
		}
		if fc, ok := parseFileStatsLine(line); ok {
			last := &commits[len(commits)-1]
			last.Files = append(last.Files, fc)
		}
	}

	return commits
}

// parseCommitHeader extracts hash, author and date from a header line of
// the form --<hash>|<author>|<iso date>.
func parseCommitHeader(line string) (Commit, bool) {
	parts := strings.SplitN(line[2:], "|", 3)
	if len(parts) != 3 {
		return Commit{}, false
	}
	date, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return Commit{}, false
	}
	return Commit{Hash: parts[0], Author: parts[1], Date: date}, true
}

// parseFileStatsLine parses a numstat line of the form
// <added>\t<deleted>\t<path>. Binary files show "-" for both counts.
func parseFileStatsLine(line string) (FileChange, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return FileChange{}, false
	}
	added, _ := strconv.Atoi(parts[0])
	deleted, _ := strconv.Atoi(parts[1])
	return FileChange{Path: parts[2], Added: added, Deleted: deleted}, true
}
