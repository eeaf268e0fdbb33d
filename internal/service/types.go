package service

import (
	"strconv"
	"time"
)

// NotFoundMessage is the response text for an unknown drug id.
const NotFoundMessage = "Drug not found"

// LookupRequest asks for the pathway count of one drug
type LookupRequest struct {
	DrugbankID string `json:"drugbank_id"`
}

// LookupResult is the answer to a LookupRequest. An unknown id is a normal
// result with Found set to false.
type LookupResult struct {
	DrugbankID  string `json:"drugbank_id"`
	NumPathways int    `json:"num_pathways"`
	Found       bool   `json:"found"`
}

// Message renders the result as the plain response string: the count in
// decimal, or NotFoundMessage.
func (r LookupResult) Message() string {
	if !r.Found {
		return NotFoundMessage
	}
	return strconv.Itoa(r.NumPathways)
}

// SnapshotInfo describes the snapshot currently served
type SnapshotInfo struct {
	Source  string    `json:"source"`
	Drugs   int       `json:"drugs"`
	BuiltAt time.Time `json:"built_at"`
}
