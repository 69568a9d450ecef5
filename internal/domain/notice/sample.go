package notice

import (
	"time"

	"github.com/shopspring/decimal"
)

// SampleClaim returns the fixed claim used for template previews. Values are
// chosen so every merge field renders visibly in a preview document.
func SampleClaim() Claim {
	amount := decimal.NewFromFloat(2458.75)
	accident := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

	return Claim{
		ClaimNumber:           "CL-2024-00042",
		CustomerName:          "Jordan Matthews",
		CustomerAddress:       "1842 Harborview Lane, Apt 3C, Norfolk, VA 23501",
		RentalAgreementNumber: "RA-7781934",
		DamageDescription:     "Rear bumper and quarter panel damage sustained in parking lot collision",
		DamagesTotal:          &amount,
		AccidentDate:          &accident,
		AdjustorName:          "Patricia Reyes",
		AdjustorPhone:         "(757) 555-0146",
		Vehicle: Vehicle{
			Year:  "2023",
			Make:  "Toyota",
			Model: "Camry",
			Color: "Silver",
			VIN:   "4T1G11AK5PU123456",
		},
	}
}

// SampleFieldDictionary maps the sample claim and applies caller overrides
// on top. Override keys outside the required field set are ignored.
func SampleFieldDictionary(overrides map[string]string) FieldDictionary {
	dict := ToFieldDictionary(SampleClaim())
	for _, name := range RequiredMergeFields() {
		if v, ok := overrides[name]; ok {
			dict[name] = v
		}
	}
	return dict
}
