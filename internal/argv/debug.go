// SPDX-License-Identifier: MPL-2.0

package argv

import (
	"strings"

	"github.com/mattn/go-shellwords"
)

// SplitDebug turns a single debug line into an argument vector using shell
// quoting rules. Unbalanced quotes fall back to plain whitespace splitting, so
// every line yields some vector.
func SplitDebug(line string) []string {
	words, err := shellwords.Parse(line)
	if err != nil {
		return strings.Fields(line)
	}
	return words
}
