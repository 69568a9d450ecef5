package notice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFieldDictionary_SparseClaim(t *testing.T) {
	total := decimal.NewFromInt(1250)
	claim := Claim{
		ClaimNumber:  "CL-1",
		CustomerName: "A B",
		DamagesTotal: &total,
		// AccidentDate intentionally absent
	}

	dict := ToFieldDictionary(claim)

	assert.Equal(t, "CL-1", dict[FieldClaimNumber])
	assert.Equal(t, "A B", dict[FieldCustomerName])
	assert.Equal(t, "$1,250.00", dict[FieldClaimAmount])
	assert.Equal(t, "", dict[FieldIncidentDate])
	assert.Equal(t, "Budget Car Rental", dict[FieldCompanyName])

	// Every required key must be present, empty string at worst.
	for _, name := range RequiredMergeFields() {
		_, ok := dict[name]
		assert.True(t, ok, "missing required field %s", name)
	}
	assert.Len(t, dict, len(RequiredMergeFields()))
}

func TestToFieldDictionary_EmptyClaim(t *testing.T) {
	dict := ToFieldDictionary(Claim{})

	for _, name := range RequiredMergeFields() {
		v, ok := dict[name]
		require.True(t, ok, "missing required field %s", name)
		switch name {
		case FieldCompanyName, FieldCompanyAddress, FieldGeneratedDate:
			assert.NotEmpty(t, v)
		default:
			assert.Empty(t, v)
		}
	}
}

func TestToFieldDictionary_FullClaim(t *testing.T) {
	total := decimal.NewFromFloat(820.5)
	accident := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	claim := Claim{
		ClaimNumber:           "CL-2024-7",
		CustomerName:          "Dana Whitfield",
		CustomerAddress:       "77 Pine Rd, Suite 2, Richmond, VA 23220",
		RentalAgreementNumber: "RA-5512",
		DamageDescription:     "Cracked windshield",
		DamagesTotal:          &total,
		AccidentDate:          &accident,
		AdjustorName:          "Sam Ortega",
		AdjustorPhone:         "(804) 555-0133",
		Vehicle:               Vehicle{Year: "2022", Make: "Ford", Model: "Escape", Color: "Red"},
	}

	dict := ToFieldDictionary(claim)

	assert.Equal(t, "$820.50", dict[FieldClaimAmount])
	assert.Equal(t, "February 29, 2024", dict[FieldIncidentDate])
	assert.Equal(t, "77 Pine Rd\nSuite 2\nRichmond\nVA 23220", dict[FieldCustomerAddress])
	assert.Equal(t, "2022 Ford Escape (Red)", dict[FieldVehicleDescription])
	assert.NotEmpty(t, dict[FieldGeneratedDate])
}

func TestSampleFieldDictionary(t *testing.T) {
	dict := SampleFieldDictionary(nil)
	assert.Equal(t, "CL-2024-00042", dict[FieldClaimNumber])
	assert.Equal(t, "$2,458.75", dict[FieldClaimAmount])

	overridden := SampleFieldDictionary(map[string]string{
		FieldCustomerName: "Override Name",
		"notAField":       "ignored",
	})
	assert.Equal(t, "Override Name", overridden[FieldCustomerName])
	_, ok := overridden["notAField"]
	assert.False(t, ok)
}
