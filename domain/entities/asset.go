package entities

import (
	"strings"
	"time"
)

// AssetType classifies a piece of hardware
type AssetType string

const (
	AssetTypeComputer AssetType = "COMPUTER"
	AssetTypeMonitor  AssetType = "MONITOR"
	AssetTypeKeyboard AssetType = "KEYBOARD"
	AssetTypeMouse    AssetType = "MOUSE"
	AssetTypeHeadset  AssetType = "HEADSET"
	AssetTypeHub      AssetType = "HUB"
	AssetTypeCable    AssetType = "CABLE"
	AssetTypeOther    AssetType = "OTHER"
)

// AssetTypes lists every asset type in display order
var AssetTypes = []AssetType{
	AssetTypeComputer,
	AssetTypeMonitor,
	AssetTypeKeyboard,
	AssetTypeMouse,
	AssetTypeHeadset,
	AssetTypeHub,
	AssetTypeCable,
	AssetTypeOther,
}

// Valid reports whether t is one of the known asset types
func (t AssetType) Valid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AssetStatus is the lifecycle state of an asset
type AssetStatus string

const (
	AssetStatusAvailable   AssetStatus = "AVAILABLE"
	AssetStatusInUse       AssetStatus = "IN_USE"
	AssetStatusMaintenance AssetStatus = "MAINTENANCE"
	AssetStatusBroken      AssetStatus = "BROKEN"
	// AssetStatusDisposed marks a soft-deleted asset. It is never physically removed.
	AssetStatusDisposed AssetStatus = "DISPOSED"
)

// AssetStatuses lists every asset status in display order
var AssetStatuses = []AssetStatus{
	AssetStatusAvailable,
	AssetStatusInUse,
	AssetStatusMaintenance,
	AssetStatusBroken,
	AssetStatusDisposed,
}

// Valid reports whether s is one of the known statuses
func (s AssetStatus) Valid() bool {
	for _, known := range AssetStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Specifications holds free-text technical details of an asset
type Specifications struct {
	Processor string `json:"processor,omitempty"`
	RAM       string `json:"ram,omitempty"`
	Storage   string `json:"storage,omitempty"`
	Display   string `json:"display,omitempty"`
	Other     string `json:"other,omitempty"`
}

// Asset represents a tracked piece of IT hardware
type Asset struct {
	ID              string         `json:"id"`
	InventoryNumber string         `json:"inventoryNumber"`
	SerialNumber    string         `json:"serialNumber"`
	Model           string         `json:"model"`
	Type            AssetType      `json:"type"`
	Status          AssetStatus    `json:"status"`
	Specifications  Specifications `json:"specifications"`
	Location        string         `json:"location"`
	AssignedTo      string         `json:"assignedTo,omitempty"`
	PreviousUser    string         `json:"previousUser,omitempty"`
	PurchaseDate    string         `json:"purchaseDate,omitempty"`
	LastMaintenance string         `json:"lastMaintenance,omitempty"`
	Observations    string         `json:"observations"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	CreatedBy       string         `json:"createdBy"`
}

// IsDisposed reports whether the asset has been soft-deleted
func (a *Asset) IsDisposed() bool {
	return a.Status == AssetStatusDisposed
}

// Validate checks the fields every stored asset must carry
func (a *Asset) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(a.InventoryNumber) == "" {
		errs = append(errs, FieldError{Field: "inventoryNumber", Message: "is required"})
	}
	if strings.TrimSpace(a.SerialNumber) == "" {
		errs = append(errs, FieldError{Field: "serialNumber", Message: "is required"})
	}
	switch {
	case a.Type == "":
		errs = append(errs, FieldError{Field: "type", Message: "is required"})
	case !a.Type.Valid():
		errs = append(errs, FieldError{Field: "type", Message: "is not a known asset type"})
	}
	switch {
	case a.Status == "":
		errs = append(errs, FieldError{Field: "status", Message: "is required"})
	case !a.Status.Valid():
		errs = append(errs, FieldError{Field: "status", Message: "is not a known asset status"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AssetPatch is a partial asset. Nil fields are absent and leave the target untouched.
type AssetPatch struct {
	InventoryNumber *string         `json:"inventoryNumber,omitempty"`
	SerialNumber    *string         `json:"serialNumber,omitempty"`
	Model           *string         `json:"model,omitempty"`
	Type            *AssetType      `json:"type,omitempty"`
	Status          *AssetStatus    `json:"status,omitempty"`
	Specifications  *Specifications `json:"specifications,omitempty"`
	Location        *string         `json:"location,omitempty"`
	AssignedTo      *string         `json:"assignedTo,omitempty"`
	PreviousUser    *string         `json:"previousUser,omitempty"`
	PurchaseDate    *string         `json:"purchaseDate,omitempty"`
	LastMaintenance *string         `json:"lastMaintenance,omitempty"`
	Observations    *string         `json:"observations,omitempty"`
	CreatedBy       *string         `json:"createdBy,omitempty"`

	// SpecificationsOther replaces only the free-text part of the stored
	// specifications. It is applied after Specifications.
	SpecificationsOther *string `json:"-"`
}

// ApplyTo merges the present fields of the patch onto a.
// Identity and timestamps are never touched; CreatedBy is only honoured by NewAsset.
func (p AssetPatch) ApplyTo(a *Asset) {
	setString(&a.InventoryNumber, p.InventoryNumber)
	setString(&a.SerialNumber, p.SerialNumber)
	setString(&a.Model, p.Model)
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Specifications != nil {
		a.Specifications = *p.Specifications
	}
	setString(&a.Specifications.Other, p.SpecificationsOther)
	setString(&a.Location, p.Location)
	setString(&a.AssignedTo, p.AssignedTo)
	setString(&a.PreviousUser, p.PreviousUser)
	setString(&a.PurchaseDate, p.PurchaseDate)
	setString(&a.LastMaintenance, p.LastMaintenance)
	setString(&a.Observations, p.Observations)
}

// NewAsset builds an unsaved asset from a creation patch
func NewAsset(p AssetPatch) *Asset {
	a := &Asset{}
	p.ApplyTo(a)
	setString(&a.CreatedBy, p.CreatedBy)
	return a
}

// StatusPatch returns a patch that only changes the status
func StatusPatch(status AssetStatus) AssetPatch {
	return AssetPatch{Status: &status}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
