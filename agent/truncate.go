package agent

import (
	"fmt"
	"strings"
)

// TruncationMode specifies how tool output is truncated before it is folded
// into the conversation.
type TruncationMode string

const (
	TruncateHeadTail TruncationMode = "head_tail"
	TruncateTail     TruncationMode = "tail"
)

// TruncateOutput applies character-based truncation to tool output. A
// non-positive maxChars disables truncation.
func TruncateOutput(output string, maxChars int, mode TruncationMode) string {
	if maxChars <= 0 || len(output) <= maxChars {
		return output
	}

	removed := len(output) - maxChars
	switch mode {
	case TruncateHeadTail:
		half := maxChars / 2
		return output[:half] +
			fmt.Sprintf("\n[tool output truncated: %d characters removed from the middle]\n", removed) +
			output[len(output)-half:]
	default:
		return strings.TrimRight(output[:maxChars], " \t") +
			fmt.Sprintf("\n[tool output truncated: %d characters removed from the end]", removed)
	}
}
