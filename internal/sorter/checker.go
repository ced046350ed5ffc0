package sorter

// CheckEntry is one file listed in a CheckReport.
type CheckEntry struct {
	Name    string
	Message string
}

// CheckReport groups the files that would not be sorted cleanly.
type CheckReport struct {
	NoTimestamp []CheckEntry
	Empty       []CheckEntry
	Unreadable  []CheckEntry
	Unwritable  []CheckEntry
	// NonMedia lists files whose content is neither image nor video.
	NonMedia []CheckEntry
}

// CheckCategory is a titled list of entries, in report order.
type CheckCategory struct {
	Title   string
	Entries []CheckEntry
}

// CheckFiles classifies the issues found while analysing records.
func CheckFiles(records []*FileRecord) *CheckReport {
	report := &CheckReport{}
	for _, r := range records {
		entry := CheckEntry{Name: r.NameOld, Message: r.Error}
		switch r.Issue {
		case IssueEmpty:
			report.Empty = append(report.Empty, entry)
		case IssueMissing, IssueUnreadable, IssueNoMetadata:
			report.Unreadable = append(report.Unreadable, entry)
		case IssueUnwritable:
			report.Unwritable = append(report.Unwritable, entry)
		case IssueNoTimestamp:
			report.NoTimestamp = append(report.NoTimestamp, entry)
		}

		if r.MediaType != "" && r.MediaType != "image" && r.MediaType != "video" {
			report.NonMedia = append(report.NonMedia, CheckEntry{
				Name:    r.NameOld,
				Message: "Not an image or video (" + r.MediaType + ").",
			})
		}
	}
	return report
}

// Categories returns the non-empty issue lists in display order.
func (c *CheckReport) Categories() []CheckCategory {
	all := []CheckCategory{
		{Title: "Files without EXIF date", Entries: c.NoTimestamp},
		{Title: "Empty files", Entries: c.Empty},
		{Title: "Unreadable files", Entries: c.Unreadable},
		{Title: "Unwritable files", Entries: c.Unwritable},
		{Title: "Non-media files", Entries: c.NonMedia},
	}
	var out []CheckCategory
	for _, cat := range all {
		if len(cat.Entries) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Total returns the number of entries across all categories.
func (c *CheckReport) Total() int {
	return len(c.NoTimestamp) + len(c.Empty) + len(c.Unreadable) + len(c.Unwritable) + len(c.NonMedia)
}

// HasIssues reports whether any file was flagged.
func (c *CheckReport) HasIssues() bool {
	return c.Total() > 0
}
