package diary

import "strings"

// Mood is the LaTeX emoji macro name shown in an entry's mood box.
type Mood string

// The closed set of mood markers.
const (
	MoodAmazed   Mood = "emoamazed"
	MoodBeer     Mood = "emobeer"
	MoodCoffee   Mood = "emocoffee"
	MoodConfused Mood = "emoconfused"
	MoodHeadbang Mood = "emoheadbang"
	MoodShutCalc Mood = "emoshutcalc"
	MoodCode     Mood = "emocode"
)

// DefaultMood is used when no mood is given or the marker is not recognised.
const DefaultMood = MoodHeadbang

// Moods lists every marker in menu order (1-7).
var Moods = []Mood{
	MoodAmazed,
	MoodBeer,
	MoodCoffee,
	MoodConfused,
	MoodHeadbang,
	MoodShutCalc,
	MoodCode,
}

var moodSymbols = map[Mood]string{
	MoodAmazed:   "😄",
	MoodBeer:     "🍺",
	MoodCoffee:   "☕",
	MoodConfused: "😕",
	MoodHeadbang: "😠",
	MoodShutCalc: "🧮",
	MoodCode:     "💻",
}

// moodKeywords is checked in order; the first keyword contained in the
// feeling wins.
var moodKeywords = []struct {
	keyword string
	mood    Mood
}{
	{"amazing", MoodAmazed},
	{"happy", MoodAmazed},
	{"excited", MoodAmazed},
	{"relaxed", MoodBeer},
	{"chill", MoodBeer},
	{"tired", MoodCoffee},
	{"sleepy", MoodCoffee},
	{"confused", MoodConfused},
	{"unsure", MoodConfused},
	{"frustrated", MoodHeadbang},
	{"angry", MoodHeadbang},
	{"focused", MoodShutCalc},
	{"productive", MoodCode},
	{"coding", MoodCode},
}

// ParseMood maps a marker name to a Mood, coercing anything outside the
// closed set to DefaultMood. A leading backslash is tolerated.
func ParseMood(marker string) Mood {
	m := Mood(strings.TrimPrefix(strings.TrimSpace(marker), `\`))
	if _, ok := moodSymbols[m]; ok {
		return m
	}
	return DefaultMood
}

// Symbol returns the display emoji for the mood.
func (m Mood) Symbol() string {
	if s, ok := moodSymbols[m]; ok {
		return s
	}
	return moodSymbols[DefaultMood]
}

// Keywords returns the feeling keywords that select this mood.
func (m Mood) Keywords() []string {
	var words []string
	for _, k := range moodKeywords {
		if k.mood == m {
			words = append(words, k.keyword)
		}
	}
	return words
}

// MoodForFeeling maps free text to a mood. A menu number (1-7) selects
// directly; otherwise the first known keyword found in the text decides.
func MoodForFeeling(feeling string) Mood {
	feeling = strings.TrimSpace(feeling)
	if len(feeling) == 1 && feeling[0] >= '1' && feeling[0] <= '7' {
		return Moods[feeling[0]-'1']
	}
	lower := strings.ToLower(feeling)
	for _, k := range moodKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.mood
		}
	}
	// Accept a marker name typed verbatim.
	return ParseMood(lower)
}
