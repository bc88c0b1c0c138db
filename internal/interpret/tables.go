package interpret

const (
	lcdTextLimit = 13
	lcdHardLimit = 16

	fallbackName = "Artie Robot"
	fallbackDots = "..."

	fallbackL1Thinking   = "Thinking..."
	fallbackL2Thinking   = "Wait a sec >_<"
	fallbackChatThinking = "음... 무슨 말인지 곰곰이 생각 중이에요."

	fallbackL1Unknown  = "Unknown..."
	fallbackL2Unknown  = "?_?"
	fallbackChatRepeat = "다시 한 번 말씀해 주시겠어요?"

	angryL1     = "-^-"
	angryL2     = "Sorry..."
	apologyChat = "히익! 제가 잘못했어요... 용서해주세요 ㅠㅠ"
)

// angerKeywords trip the anger override when any of them appears anywhere
// in the user query. Matching is substring, not word boundary.
var angerKeywords = []string{
	"빡쳐", "짜증", "성질", "꺼져", "닥쳐", "씨발", "개빡", "화나", "죽을",
}

// apologyMarkers suppress the forced apology when the model already
// apologised on its own.
var apologyMarkers = []string{"죄송", "미안"}

// emoticons are appended to short display lines, keyed by mood. Unknown
// moods fall back to the neutral set.
var emoticons = map[string][]string{
	MoodHappy:   {"^_^", "^o^", "<3", ":)", "B-)", ":D", "XD"},
	MoodSad:     {"T_T", "(ToT)", ";_;", "T.T", "..", ">_<"},
	MoodAngry:   {"-^-", ">_<", "-_-", "!!!!", "Orz"},
	MoodNeutral: {"OoO", "OwO", "Hmm", ":]", "?_?", "(?)"},
}
