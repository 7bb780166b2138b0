package main

// Board owns an ordered sequence of list ids. The order of Lists is the
// display order; list content lives in its own document.
type Board struct {
	ID    string   `json:"id" bson:"_id"`
	Title string   `json:"title" bson:"title"`
	Lists []string `json:"lists" bson:"lists"`
}

// List belongs to exactly one board and owns an ordered sequence of card ids.
type List struct {
	ID    string   `json:"id" bson:"_id"`
	Title string   `json:"title" bson:"title"`
	Board string   `json:"board" bson:"board"`
	Cards []string `json:"cards" bson:"cards"`
}

// Card carries the back-reference to its owning list. The back-reference and
// the owning list's cards array must always agree after every operation.
type Card struct {
	ID          string `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	List        string `json:"list" bson:"list"`
}

// BoardSummary is the dashboard projection (id and title only).
type BoardSummary struct {
	ID    string `json:"id" bson:"_id"`
	Title string `json:"title" bson:"title"`
}

// BoardView is a board expanded with its lists and their cards, both in
// order-array order.
type BoardView struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Lists []ListView `json:"lists"`
}

type ListView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Board string `json:"board"`
	Cards []Card `json:"cards"`
}
