package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Progress
	Mark
	Search
	Link
	Play
	Folder
	Series
	Movie
	Account
	Premium
	Previous
	Next
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    " ",
		plain:   "[ok]",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "▣",
	},
	Fail: {
		emoji:   "💀",
		nerd:    " ",
		plain:   "[x]",
		kaomoji: "(╥﹏╥)",
		squares: "▨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    " ",
		plain:   "...",
		kaomoji: "(￣▽￣)",
		squares: "▤",
	},
	Mark: {
		emoji:   "✔",
		nerd:    " ",
		plain:   "*",
		kaomoji: "(＾▽＾)",
		squares: "■",
	},
	Search: {
		emoji:   "🔍",
		nerd:    " ",
		plain:   "?",
		kaomoji: "(・_・ヾ",
		squares: "◫",
	},
	Link: {
		emoji:   "🔗",
		nerd:    " ",
		plain:   "->",
		kaomoji: "(=^･ｪ･^=)",
		squares: "◨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    " ",
		plain:   ">",
		kaomoji: "(⌐■_■)",
		squares: "▶",
	},
	Folder: {
		emoji:   "📁",
		nerd:    " ",
		plain:   "+",
		kaomoji: "(◕‿◕)",
		squares: "▦",
	},
	Series: {
		emoji:   "📺",
		nerd:    " ",
		plain:   "[tv]",
		kaomoji: "(°ロ°)",
		squares: "▥",
	},
	Movie: {
		emoji:   "🎬",
		nerd:    " ",
		plain:   "[film]",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "▧",
	},
	Account: {
		emoji:   "👤",
		nerd:    " ",
		plain:   "@",
		kaomoji: "(•‿•)",
		squares: "◧",
	},
	Premium: {
		emoji:   "⭐",
		nerd:    " ",
		plain:   "$",
		kaomoji: "(★‿★)",
		squares: "◆",
	},
	Previous: {
		emoji:   "⬅️",
		nerd:    " ",
		plain:   "<<",
		kaomoji: "(←_←)",
		squares: "◀",
	},
	Next: {
		emoji:   "➡️",
		nerd:    " ",
		plain:   ">>",
		kaomoji: "(→_→)",
		squares: "▷",
	},
}
