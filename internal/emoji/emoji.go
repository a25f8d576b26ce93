package emoji

// emojiMap holds emoji and ASCII fallback mappings for everything the
// client renders, including the per-classification segment icons.
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"voiced":     {"🔊", "[VOI]"},
	"unvoiced":   {"💨", "[UNV]"},
	"silence":    {"🔇", "[SIL]"},
	"unknown":    {"❓", "[???]"},
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"statistics": {"📊", "[STATS]"},
	"file":       {"📄", "[FILE]"},
	"search":     {"🔍", "[SEG]"},
	"loading":    {"⏳", "[...]"},
	"microphone": {"🎙️", "[MIC]"},
	"server":     {"🌐", "[SRV]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

// ForSegmentType returns the icon for a segment classification label.
// Unrecognized labels get a generic marker rather than one of the three
// known icons.
func ForSegmentType(segmentType string) string {
	switch segmentType {
	case "VOICED":
		return GetEmoji("voiced")
	case "UNVOICED":
		return GetEmoji("unvoiced")
	case "SILENCE":
		return GetEmoji("silence")
	default:
		return GetEmoji("unknown")
	}
}
