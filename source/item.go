package source

// Item is a single title as returned by a provider's "detail" action.
//
// PlayURL packs one or more source groups separated by "$$$"; each group is a
// "#"-separated list of "label$url" entries. PlayFrom names the groups in the same order.
type Item struct {
	Name     string `json:"vod_name"`
	PlayURL  string `json:"vod_play_url"`
	PlayFrom string `json:"vod_play_from"`
	Remarks  string `json:"vod_remarks"`
}
