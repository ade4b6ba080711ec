package models

// AssociationRule is a mined co-purchase rule: sessions containing every
// product in Antecedent tend to also contain the products in Consequent.
// Both sides are kept sorted by product id.
type AssociationRule struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
}

// HasAntecedent reports whether productID appears on the rule's left-hand side.
func (r AssociationRule) HasAntecedent(productID string) bool {
	for _, id := range r.Antecedent {
		if id == productID {
			return true
		}
	}
	return false
}
