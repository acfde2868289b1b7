package remote

import (
	"fmt"
	"math"
	"strconv"
)

// HostID is the numeric identifier the remote service assigns to a managed host.
type HostID int64

// maxExactFloat is the largest integer a float64 holds exactly.
const maxExactFloat = 1 << 53

// UnmarshalJSON accepts any JSON number with an integral value, so 42, 42.0
// and 4.2e1 all decode to 42.
func (id *HostID) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if raw == "null" {
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*id = HostID(n)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("host id %s is not a number", raw)
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return fmt.Errorf("host id %s is not an integer", raw)
	}
	*id = HostID(f)
	return nil
}

// Host is one entry of the host directory.
type Host struct {
	ID          HostID `json:"id"`
	Description string `json:"description"`
}

// Record is one row of a hardware inventory report.
type Record struct {
	HostID     HostID `json:"hostId"`
	ServiceTag string `json:"serviceTag"`
}

// Page is one page of a hardware inventory report.
type Page struct {
	// Records holds the page rows ordered by their row key.
	Records []Record
	// HasRecords is false when the payload carried no hosts object at all.
	HasRecords bool
	// NextToken continues the report. Empty means the report is exhausted.
	NextToken string
}

type hostsResponse struct {
	Hosts []Host `json:"hosts"`
}

type reportRequest struct {
	HostIDs []HostID `json:"hostIds"`
	Fields  []string `json:"fields"`
}

type reportTokenResponse struct {
	Token string `json:"token"`
}

type reportPageResponse struct {
	Hosts  map[string]Record `json:"hosts"`
	Report struct {
		Token *string `json:"token"`
	} `json:"report"`
}
