package model

// ClassifiedRecord is one entry of the model's batch classification output
// and one row of the categorized spreadsheet. It carries no linkage to an
// input Transaction beyond its position in the response sequence.
type ClassifiedRecord struct {
	Transaction string `json:"transaction"`
	Category    string `json:"category"`
}
