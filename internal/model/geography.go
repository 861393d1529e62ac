package model

// Country is seeded reference data; name and code are unique.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// State belongs to a Country and is rendered with it nested.
type State struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Country Country `json:"country"`
}

// City belongs to a State and is rendered with the full hierarchy nested.
type City struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State State  `json:"state"`
}
