package match

// Customer is a read-only snapshot of a stored customer row. Missing
// fields are empty strings, never nulls: the engine treats absence as
// "contributes zero score".
type Customer struct {
	ID            int64
	AccountNumber string
	Name          string
	Phone         string
	Mobile        string
	Email         string
	Postcode      string
	Address       string
	CreatedAt     string
}

// Vehicle is a read-only snapshot of a stored vehicle row, with customer
// fields denormalized at query time for scoring convenience.
type Vehicle struct {
	ID           int64
	Registration string
	Make         string
	Model        string
	Year         int
	Color        string
	CustomerID   *int64

	CustomerName    string
	CustomerMobile  string
	CustomerAccount string
}

// Job is a read-only snapshot of a stored job row with denormalized
// customer and vehicle fields.
type Job struct {
	ID                 int64
	JobNumber          string
	Description        string
	Status             string
	CustomerID         *int64
	VehicleID          *int64
	CreatedDate        string
	AssignedTechnician string

	CustomerName        string
	CustomerMobile      string
	VehicleRegistration string
}

// Query carries a raw free-text query together with its normalized forms,
// computed once so candidate loops do not re-normalize per record.
type Query struct {
	Raw          string
	Text         string
	Phone        string
	Registration string
	Postcode     string
}

// NewQuery normalizes a raw query string once per field class.
func NewQuery(raw string) Query {
	return Query{
		Raw:          raw,
		Text:         NormalizeText(raw),
		Phone:        NormalizePhone(raw),
		Registration: NormalizeRegistration(raw),
		Postcode:     NormalizePostcode(raw),
	}
}

// CustomerResult is a scored customer. SearchScore exists only on search
// results and is never written back to storage.
type CustomerResult struct {
	Customer
	SearchScore float64
}

// VehicleResult is a scored vehicle.
type VehicleResult struct {
	Vehicle
	SearchScore float64
}

// JobResult is a scored job.
type JobResult struct {
	Job
	SearchScore float64
}

// LinkMatch pairs an existing record id with its linkage score.
type LinkMatch struct {
	ID    int64
	Score float64
}
