package models

import "github.com/shopspring/decimal"

// InventoryType distinguishes the two department-scoped stock collections.
type InventoryType string

const (
	InventoryMedicines InventoryType = "medicines"
	InventorySupplies  InventoryType = "supplies"
)

// UsageEntry records one consumption of an inventory item against a patient.
type UsageEntry struct {
	ItemName   string        `json:"itemName"`
	Quantity   int           `json:"quantity"`
	Timestamp  string        `json:"timestamp"`
	Department string        `json:"department"`
	Category   string        `json:"category,omitempty"`
	Brand      string        `json:"brand,omitempty"`
	Type       InventoryType `json:"type"`
	PatientID  string        `json:"patientId,omitempty"`
}

// InventoryItem is a department's local medicine or supply stock line.
type InventoryItem struct {
	ItemName   string        `json:"itemName"`
	Brand      string        `json:"brand,omitempty"`
	Category   string        `json:"category,omitempty"`
	Quantity   int           `json:"quantity"`
	Department string        `json:"department"`
	Type       InventoryType `json:"type"`
}

// PatientRecord carries the admission fields used for traffic and demographics.
type PatientRecord struct {
	PatientID  string `json:"patientId"`
	DateTime   string `json:"dateTime"`
	Age        int    `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
}

// BillingRecord is one charge against a patient.
type BillingRecord struct {
	BillingID  string          `json:"billingId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	Department string          `json:"department,omitempty"`
	PatientID  string          `json:"patientId,omitempty"`
}

// Billing statuses the analytics recognise.
const (
	BillingPaid    = "paid"
	BillingPending = "pending"
)

// SourceSnapshot holds the raw collections read from the backing store, each keyed by opaque record ID.
type SourceSnapshot struct {
	Departments map[string]any `json:"departments"`
	Patients    map[string]any `json:"patients"`
	Billing     map[string]any `json:"billing"`
}
