package models

// Reference data: read-only lookup collections owned by the backend, used
// to populate the admin selectors.

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SubCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
