package notice

import "time"

// ToFieldDictionary flattens a claim into the fixed merge-field contract.
// Total over any claim shape: every required field is present in the result,
// with an empty string where the claim carries no value.
func ToFieldDictionary(c Claim) FieldDictionary {
	var amount interface{}
	if c.DamagesTotal != nil {
		amount = *c.DamagesTotal
	}
	var incident interface{}
	if c.AccidentDate != nil {
		incident = *c.AccidentDate
	}

	return FieldDictionary{
		FieldClaimNumber:           c.ClaimNumber,
		FieldCustomerName:          c.CustomerName,
		FieldCustomerAddress:       FormatAddress(c.CustomerAddress),
		FieldRentalAgreementNumber: c.RentalAgreementNumber,
		FieldVehicleDescription:    VehicleDescription(c.Vehicle),
		FieldDamageDescription:     c.DamageDescription,
		FieldClaimAmount:           FormatCurrency(amount),
		FieldIncidentDate:          FormatDate(incident),
		FieldGeneratedDate:         FormatDate(time.Now()),
		FieldAdjustorName:          c.AdjustorName,
		FieldAdjustorPhone:         c.AdjustorPhone,
		FieldCompanyName:           DefaultCompanyName,
		FieldCompanyAddress:        FormatAddress(DefaultCompanyAddress),
		FieldCompanyLogo:           "",
	}
}
