package notice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle describes the rental vehicle involved in a claim. All parts are
// optional; absent parts are simply omitted from the composed description.
type Vehicle struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Color string `json:"color"`
	VIN   string `json:"vin"`
}

// Claim is the source entity a notice document is generated from.
// Every attribute is optional: zero values and nil pointers map to empty
// merge-field values, so the field mapper is total over any claim shape.
type Claim struct {
	ClaimNumber           string           `json:"claimNumber"`
	CustomerName          string           `json:"customerName"`
	CustomerAddress       string           `json:"customerAddress"`
	RentalAgreementNumber string           `json:"rentalAgreementNumber"`
	DamageDescription     string           `json:"damageDescription"`
	DamagesTotal          *decimal.Decimal `json:"damagesTotal"`
	AccidentDate          *time.Time       `json:"accidentDate"`
	AdjustorName          string           `json:"adjustorName"`
	AdjustorPhone         string           `json:"adjustorPhone"`
	Vehicle               Vehicle          `json:"vehicle"`
}
