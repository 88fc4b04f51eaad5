package market

// Asset is a holding of VCType priced in Base, as served by
// /private/markets/{exchange}/assets/{base}.
type Asset struct {
	Base   string  `json:"base"`           // Quote currency the rate is expressed in (e.g., "BTC")
	VCType string  `json:"vcType"`         // Held currency (e.g., "ETH")
	Units  float64 `json:"units"`          // Amount held, never negative
	Rate   float64 `json:"rate"`           // Acquisition rate in Base per unit
	UUID   string  `json:"uuid,omitempty"` // Set once the record is persisted
}

// ID returns the identity used by selection and delete requests.
func (a Asset) ID() string {
	return a.UUID
}

// Ticker is the latest quote for a Base/VCType pair.
type Ticker struct {
	Base      string  `json:"base"`
	VCType    string  `json:"vcType"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	Timestamp int64   `json:"timestamp"` // Quote time (in milliseconds since epoch)
}

// Envelope is the fixed response body of the public account and session routes.
type Envelope struct {
	Status string `json:"status"` // "success" or "failure"
	Result string `json:"result"`
}

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// MergeMode is the query value selecting merge semantics on PUT.
const MergeMode = "merge"
