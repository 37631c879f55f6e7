// chatbackup - KakaoTalk chat export backup tool
//
// chatbackup parses KakaoTalk text and CSV chat exports, groups the messages
// by date and writes plain-text backups.
package main

import (
	"os"

	"github.com/ccollicutt/chatbackup/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
