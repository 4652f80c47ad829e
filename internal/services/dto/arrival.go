package dto

const (
	ArrivalImported    = "imported"
	ArrivalExists      = "exists"
	ArrivalUnsupported = "unsupported"
)

// ArrivalResult reports what happened to one file of an intake folder.
type ArrivalResult struct {
	Source string `json:"source"`
	Target string `json:"target,omitempty"`
	Status string `json:"status"`
}
