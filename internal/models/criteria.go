package models

// MainCriteria is a top level classification.
type MainCriteria struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// SubCriteria belongs to a main criteria referenced by id or embedded object.
type SubCriteria struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	MainCriteria Ref    `json:"mainCriteria"`
}
