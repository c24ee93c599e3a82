package transcript

import "strings"

// DemoVideoID is the video that ships with a hand-written transcript.
const DemoVideoID = "_3YNL0OWio0"

// DefaultTopic is used when a video has no known transcript.
const DefaultTopic = "General English Conversation"

// DemoTranscript is the transcript of the demo video.
var DemoTranscript = []Line{
	{ID: "1", StartTime: 0, EndTime: 4.5, TextEn: "Tom Nook here! Welcome to your new island life.", TextZh: "我是狸克！歡迎來到你的新島嶼生活。"},
	{ID: "2", StartTime: 4.5, EndTime: 8.5, TextEn: "The getaway package includes a tent, a lamp, and a radio.", TextZh: "無人島移居套餐包含一個帳篷、一盞燈和一台收音機。"},
	{ID: "3", StartTime: 8.5, EndTime: 13, TextEn: "Explore the wilderness, catch bugs, and fish in the river.", TextZh: "探索荒野、捕捉昆蟲，並在河邊釣魚。"},
	{ID: "4", StartTime: 13, EndTime: 17, TextEn: "Don't forget to pay your mortgage with bells!", TextZh: "別忘了用鈴錢支付你的房貸！"},
	{ID: "5", StartTime: 17, EndTime: 22, TextEn: "Create your own paradise and invite friends over.", TextZh: "創造你自己的天堂並邀請朋友過來。"},
	{ID: "6", StartTime: 22, EndTime: 27, TextEn: "The possibilities are endless on the horizon.", TextZh: "在地平線上，可能性是無限的。"},
}

var (
	cookingPairs = []Pair{
		{En: "First, chop the onions finely.", Zh: "首先，把洋蔥切碎。"},
		{En: "Heat the pan with some olive oil.", Zh: "用一些橄欖油加熱平底鍋。"},
		{En: "Sauté the vegetables until golden brown.", Zh: "把蔬菜炒到金黃色。"},
		{En: "Add a pinch of salt and pepper.", Zh: "加一小撮鹽和胡椒。"},
		{En: "Serve immediately while it's hot.", Zh: "趁熱立即上菜。"},
	}

	travelPairs = []Pair{
		{En: "Make sure to pack your passport.", Zh: "確保帶上你的護照。"},
		{En: "We are arriving at the airport terminal.", Zh: "我們即將抵達機場航廈。"},
		{En: "The view from the hotel is amazing.", Zh: "飯店的景色非常棒。"},
		{En: "Let's ask the locals for recommendations.", Zh: "我們來問問當地人的推薦吧。"},
		{En: "This is the best vacation ever.", Zh: "這是最棒的假期。"},
	}

	genericPairs = []Pair{
		{En: "Learning English is a journey, not a race.", Zh: "學英文是一趟旅程，不是比賽。"},
		{En: "Practice makes perfect, so don't give up.", Zh: "熟能生巧，所以不要放棄。"},
		{En: "Try to listen to English every single day.", Zh: "試著每天都聽英文。"},
		{En: "Vocabulary helps you express your ideas.", Zh: "單字能幫助你表達想法。"},
		{En: "You are doing a great job!", Zh: "你做得很好！"},
	}
)

// TopicPairs returns the preset sentences matching topic by keyword.
func TopicPairs(topic string) []Pair {
	t := strings.ToLower(topic)
	var src []Pair
	switch {
	case strings.Contains(t, "food"), strings.Contains(t, "cooking"):
		src = cookingPairs
	case strings.Contains(t, "travel"):
		src = travelPairs
	default:
		src = genericPairs
	}
	out := make([]Pair, len(src))
	copy(out, src)
	return out
}

// Demo returns a copy of the demo transcript.
func Demo() []Line {
	out := make([]Line, len(DemoTranscript))
	copy(out, DemoTranscript)
	return out
}
