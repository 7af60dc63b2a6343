package workout

import "fmt"

// FormatTime formats seconds as MM:SS. Minutes keep counting past 59.
func FormatTime(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
