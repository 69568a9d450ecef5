package notice

// Merge-field names the notice templates must expose. This set is the fixed
// contract between claim data and every template format: the renderer never
// substitutes a field outside it.
const (
	FieldClaimNumber           = "claimNumber"
	FieldCustomerName          = "customerName"
	FieldCustomerAddress       = "customerAddress"
	FieldRentalAgreementNumber = "rentalAgreementNumber"
	FieldVehicleDescription    = "vehicleDescription"
	FieldDamageDescription     = "damageDescription"
	FieldClaimAmount           = "claimAmount"
	FieldIncidentDate          = "incidentDate"
	FieldGeneratedDate         = "generatedDate"
	FieldAdjustorName          = "adjustorName"
	FieldAdjustorPhone         = "adjustorPhone"
	FieldCompanyName           = "companyName"
	FieldCompanyAddress        = "companyAddress"
	FieldCompanyLogo           = "companyLogo"
)

// Company identity merged into every notice.
const (
	DefaultCompanyName    = "Budget Car Rental"
	DefaultCompanyAddress = "Budget Car Rental, Claims Department, P.O. Box 699000, Tulsa, OK 74169"
)

// RequiredMergeFields returns the closed set of merge-field names every
// template must expose, in contract order.
func RequiredMergeFields() []string {
	return []string{
		FieldClaimNumber,
		FieldCustomerName,
		FieldCustomerAddress,
		FieldRentalAgreementNumber,
		FieldVehicleDescription,
		FieldDamageDescription,
		FieldClaimAmount,
		FieldIncidentDate,
		FieldGeneratedDate,
		FieldAdjustorName,
		FieldAdjustorPhone,
		FieldCompanyName,
		FieldCompanyAddress,
		FieldCompanyLogo,
	}
}
