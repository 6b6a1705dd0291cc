package cli

import (
	"fmt"
	"os"
	"strings"
)

// previewText renders the content of the selected week files, each under a
// header naming its path. An unreadable file is reported inline so a wrong
// week number shows up before the push instead of mid-run.
func previewText(paths []string) string {
	var b strings.Builder
	b.WriteString("This is the content of the .md file(s):\n\n")
	for _, path := range paths {
		fmt.Fprintf(&b, "--- %s ---\n", path)
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(&b, "(unreadable: %v)\n\n", err)
			continue
		}
		b.Write(data)
		if len(data) == 0 || data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
