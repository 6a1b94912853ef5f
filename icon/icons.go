package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Lua
	Go
	Play
	Pause
	Stop
	Live
	Volume
	Rolloff
	Interruption
	Link
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╯°□°)╯",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "ᕙ(⇀‸↼‶)ᕗ",
		squares: "🟨",
	},
	Lua: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "Lua",
		kaomoji: "(=^･ω･^=)",
		squares: "🟪",
	},
	Go: {
		emoji:   "🐹",
		nerd:    "",
		plain:   "Go",
		kaomoji: "ʕ•ᴥ•ʔ",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "ヽ(・∀・)ﾉ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣) zzZ",
		squares: "🟨",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(・・；)",
		squares: "🟥",
	},
	Live: {
		emoji:   "🔴",
		nerd:    "",
		plain:   "LIVE",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟥",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "♪(´ε` )",
		squares: "🟦",
	},
	Rolloff: {
		emoji:   "📡",
		nerd:    "",
		plain:   "roll",
		kaomoji: "((( ・_・)))",
		squares: "🟪",
	},
	Interruption: {
		emoji:   "📣",
		nerd:    "",
		plain:   "!",
		kaomoji: "(ﾟДﾟ)",
		squares: "🟧",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "~>",
		kaomoji: "(￢‿￢)",
		squares: "🟫",
	},
}
