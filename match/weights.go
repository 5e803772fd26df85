package match

// FieldClass identifies how discriminative a field is for deciding that
// two records refer to the same real-world entity.
type FieldClass string

const (
	FieldMobilePhone  FieldClass = "mobile_phone"
	FieldAccount      FieldClass = "account_number"
	FieldRegistration FieldClass = "registration"
	FieldEmail        FieldClass = "email"
	FieldPostcode     FieldClass = "postal_code"
	FieldName         FieldClass = "name"
)

// Weights maps a field class to the multiplier applied to its similarity.
// Weights multiply the per-field similarity before taking the max across
// fields; they are never summed or averaged.
type Weights map[FieldClass]float64

// DefaultWeights returns the production weight table.
//
//	mobile_phone   1.00  most discriminative personal identifier
//	account_number 0.90  business-assigned unique-ish ID
//	registration   0.90  vehicle-unique identifier
//	email          0.80  fairly unique, can be shared by household
//	postal_code    0.70  geographic grouping only
//	name           0.60  common names collide
func DefaultWeights() Weights {
	return Weights{
		FieldMobilePhone:  1.00,
		FieldAccount:      0.90,
		FieldRegistration: 0.90,
		FieldEmail:        0.80,
		FieldPostcode:     0.70,
		FieldName:         0.60,
	}
}

// Gates and thresholds for scoring and linkage.
const (
	// MinScore is the relevance floor for search: results scoring at or
	// below it are dropped.
	MinScore = 0.3

	// phoneGate requires near-exact digit similarity before a phone field
	// is weighted in at all during search.
	phoneGate = 0.8

	// Linkage per-field gates. Stricter than search: a field contributes
	// nothing unless it clears its gate.
	linkPhoneGate    = 0.9
	linkEmailGate    = 0.9
	linkPostcodeGate = 0.9
	linkNameGate     = 0.8
	linkRegGate      = 0.95
	linkMakeGate     = 0.8
	linkModelGate    = 0.8

	// corroborationWeight is the flat weight for the make+model secondary
	// signal in vehicle linkage, distinct from the primary field table.
	corroborationWeight = 0.6

	// DefaultCustomerLinkThreshold and DefaultVehicleLinkThreshold are
	// the minimum overall scores for a linkage match.
	DefaultCustomerLinkThreshold = 0.8
	DefaultVehicleLinkThreshold  = 0.9
)
