package detector

import "github.com/ccollicutt/chatbackup/pkg/chat"

// ExportFormat describes a chat export shape the detector can recognize.
type ExportFormat struct {
	Name        string      // Human-readable name
	Format      chat.Format // Parser format identifier
	Description string      // How the format is recognized
	Examples    []string    // Example lines
}

// DefaultFormats returns the export formats the detector scores.
func DefaultFormats() []*ExportFormat {
	return []*ExportFormat{
		{
			Name:        "KakaoTalk text export",
			Format:      chat.FormatTxt,
			Description: "lines starting with a Korean 12-hour timestamp header",
			Examples: []string{
				"2024년 1월 5일 오전 9:03, Alice : Hello",
				"2024년 1월 5일 오후 5:30 Bob : Hi",
			},
		},
		{
			Name:        "CSV export",
			Format:      chat.FormatCSV,
			Description: "comma-separated rows under a Date,User,Message header",
			Examples: []string{
				"Date,User,Message",
				"2024-01-05 09:03:00,Alice,Hello",
			},
		},
	}
}

// FormatByID returns the ExportFormat for f, or nil if unknown.
func FormatByID(f chat.Format) *ExportFormat {
	for _, ef := range DefaultFormats() {
		if ef.Format == f {
			return ef
		}
	}
	return nil
}
