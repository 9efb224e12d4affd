package forecast

import "time"

// WindowSize is the number of hourly entries analysed.
const WindowSize = 12

// SelectWindow picks up to WindowSize entries, preferring those at or after
// now. Entries with unparseable timestamps never count as upcoming but can
// still fill the window.
func SelectWindow(entries []HourlyEntry, now time.Time) []HourlyEntry {
	window := make([]HourlyEntry, 0, WindowSize)
	if len(entries) == 0 {
		return window
	}

	isUpcoming := make([]bool, len(entries))
	for i, entry := range entries {
		if ts, ok := entry.ParseTime(now.Location()); ok && !ts.Before(now) {
			isUpcoming[i] = true
			if len(window) < WindowSize {
				window = append(window, entry)
			}
		}
	}

	switch {
	case len(window) == WindowSize:
		return window
	case len(window) == 0:
		return append(window, entries[:min(WindowSize, len(entries))]...)
	}

	for i := len(window); i < len(entries) && len(window) < WindowSize; i++ {
		if !isUpcoming[i] {
			window = append(window, entries[i])
		}
	}
	return window
}
