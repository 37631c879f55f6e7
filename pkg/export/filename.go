package export

import "github.com/ccollicutt/chatbackup/pkg/chat"

// BackupFileName is the file name of the full backup.
const BackupFileName = "chat-backup.txt"

// DateFileName returns the file name of a single-date backup.
func DateFileName(key chat.DateKey) string {
	return "chat-" + key.String() + ".txt"
}

// FileName returns the file name of a range backup, chosen by which bounds
// are present.
func (r Range) FileName() string {
	switch {
	case r.Start != "" && r.End != "":
		return "chat-" + r.Start.String() + "-to-" + r.End.String() + ".txt"
	case r.Start != "":
		return "chat-from-" + r.Start.String() + ".txt"
	case r.End != "":
		return "chat-until-" + r.End.String() + ".txt"
	default:
		return "chat-full.txt"
	}
}
