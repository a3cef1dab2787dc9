package domain

import (
	"sort"
	"strings"
)

// jobTitleMarker introduces the title line of a job description.
const jobTitleMarker = "JOB TITLE:"

// RolePresets are the target roles offered to users by default.
var RolePresets = []string{
	"Junior ML Engineer",
	"Junior AI Engineer",
	"Backend Developer",
	"Data Scientist",
	"Frontend Developer",
	"Full Stack Developer",
	"DevOps Engineer",
	"Mobile Developer",
}

// ReportFilename returns the download name of a gap report for a role.
func ReportFilename(role string) string {
	slug := strings.ReplaceAll(strings.ToLower(role), " ", "_")
	return "skill_gap_report_" + slug + ".md"
}

// ExtractJobTitle returns the job title from a chunk of job description text.
// Only the first line is inspected. It must contain "JOB TITLE:" in any case;
// the title is whatever follows the first colon.
func ExtractJobTitle(content string) (string, bool) {
	firstLine, _, _ := strings.Cut(content, "\n")
	if !strings.Contains(strings.ToUpper(firstLine), jobTitleMarker) {
		return "", false
	}
	_, title, _ := strings.Cut(firstLine, ":")
	title = strings.TrimSpace(title)
	return title, title != ""
}

// UniqueSortedTitles extracts, deduplicates and sorts job titles from chunks.
func UniqueSortedTitles(chunks []Chunk) []string {
	seen := make(map[string]struct{})
	titles := make([]string, 0)
	for i := range chunks {
		title, ok := ExtractJobTitle(chunks[i].Content)
		if !ok {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}
