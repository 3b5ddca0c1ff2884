package domain

import "time"

// PaymentRecord is an immutable log entry of one donation against a
// campaign. Records are never updated; a reversal decrements the campaign
// total and removes the record.
type PaymentRecord struct {
	ID           string
	CampaignID   string
	DonatorEmail string
	DonatorName  string
	AmountCents  int64
	Date         time.Time
}

// DonatorPayment is a payment record joined with display fields of its
// campaign, used on the donator's history view.
type DonatorPayment struct {
	ID          string
	CampaignID  string
	AmountCents int64
	Date        time.Time
	PetName     string
	PetImage    string
}
