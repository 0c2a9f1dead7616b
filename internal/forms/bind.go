package forms

import (
	"net/url"
	"strings"

	"github.com/satriahrh/inventario/domain/entities"
)

// Form field names. They match the JSON names of the records.
const (
	FieldInventoryNumber = "inventoryNumber"
	FieldSerialNumber    = "serialNumber"
	FieldModel           = "model"
	FieldType            = "type"
	FieldStatus          = "status"
	FieldSpecifications  = "specifications.other"
	FieldLocation        = "location"
	FieldAssignedTo      = "assignedTo"
	FieldPreviousUser    = "previousUser"
	FieldPurchaseDate    = "purchaseDate"
	FieldLastMaintenance = "lastMaintenance"
	FieldObservations    = "observations"
	FieldCreatedBy       = "createdBy"

	FieldName  = "name"
	FieldEmail = "email"
	FieldRole  = "role"
	FieldArea  = "area"
)

func assetTypeNames() []string {
	out := make([]string, len(entities.AssetTypes))
	for i, t := range entities.AssetTypes {
		out[i] = string(t)
	}
	return out
}

func assetStatusNames() []string {
	out := make([]string, len(entities.AssetStatuses))
	for i, s := range entities.AssetStatuses {
		out[i] = string(s)
	}
	return out
}

func userRoleNames() []string {
	out := make([]string, len(entities.UserRoles))
	for i, r := range entities.UserRoles {
		out[i] = string(r)
	}
	return out
}

// AssetSchema is the asset registration form
var AssetSchema = Schema{
	{Name: FieldInventoryNumber, Label: "Número de Inventario", Required: true},
	{Name: FieldSerialNumber, Label: "Número de Serie", Required: true},
	{Name: FieldModel, Label: "Modelo"},
	{Name: FieldType, Label: "Tipo de Activo", Required: true, OneOf: assetTypeNames()},
	{Name: FieldStatus, Label: "Estado", Required: true, OneOf: assetStatusNames()},
	{Name: FieldSpecifications, Label: "Especificaciones"},
	{Name: FieldLocation, Label: "Ubicación"},
	{Name: FieldAssignedTo, Label: "Asignado a"},
	{Name: FieldPreviousUser, Label: "Usuario anterior"},
	{Name: FieldPurchaseDate, Label: "Fecha de compra"},
	{Name: FieldLastMaintenance, Label: "Último mantenimiento"},
	{Name: FieldObservations, Label: "Observaciones"},
}

// UserSchema is the user management form
var UserSchema = Schema{
	{Name: FieldName, Label: "Nombre", Required: true},
	{Name: FieldEmail, Label: "Email", Required: true, Pattern: entities.EmailPattern, Message: MessageInvalidEmail},
	{Name: FieldRole, Label: "Rol", Required: true, OneOf: userRoleNames()},
	{Name: FieldArea, Label: "Área", Required: true},
}

// Values flattens url.Values to the first value of every key
func Values(form url.Values) map[string]string {
	out := make(map[string]string, len(form))
	for k := range form {
		out[k] = form.Get(k)
	}
	return out
}

// optional returns a pointer to the trimmed value when the key was submitted
func optional(values map[string]string, key string) *string {
	v, ok := values[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// DecodeAsset maps submitted values onto a partial asset. Keys that were not
// submitted stay absent so an update retains their stored values.
func DecodeAsset(values map[string]string) entities.AssetPatch {
	p := entities.AssetPatch{
		InventoryNumber: optional(values, FieldInventoryNumber),
		SerialNumber:    optional(values, FieldSerialNumber),
		Model:           optional(values, FieldModel),
		Location:        optional(values, FieldLocation),
		AssignedTo:      optional(values, FieldAssignedTo),
		PreviousUser:    optional(values, FieldPreviousUser),
		PurchaseDate:    optional(values, FieldPurchaseDate),
		LastMaintenance: optional(values, FieldLastMaintenance),
		Observations:    optional(values, FieldObservations),
		CreatedBy:       optional(values, FieldCreatedBy),
	}
	if v := optional(values, FieldType); v != nil {
		t := entities.AssetType(*v)
		p.Type = &t
	}
	if v := optional(values, FieldStatus); v != nil {
		s := entities.AssetStatus(*v)
		p.Status = &s
	}
	p.SpecificationsOther = optional(values, FieldSpecifications)
	return p
}

// DecodeUser maps submitted values onto a partial user
func DecodeUser(values map[string]string) entities.UserPatch {
	p := entities.UserPatch{
		Name:  optional(values, FieldName),
		Email: optional(values, FieldEmail),
		Area:  optional(values, FieldArea),
	}
	if v := optional(values, FieldRole); v != nil {
		r := entities.UserRole(*v)
		p.Role = &r
	}
	return p
}

// AssetValues pre-populates the asset form from a stored record
func AssetValues(a *entities.Asset) map[string]string {
	return map[string]string{
		FieldInventoryNumber: a.InventoryNumber,
		FieldSerialNumber:    a.SerialNumber,
		FieldModel:           a.Model,
		FieldType:            string(a.Type),
		FieldStatus:          string(a.Status),
		FieldSpecifications:  a.Specifications.Other,
		FieldLocation:        a.Location,
		FieldAssignedTo:      a.AssignedTo,
		FieldPreviousUser:    a.PreviousUser,
		FieldPurchaseDate:    a.PurchaseDate,
		FieldLastMaintenance: a.LastMaintenance,
		FieldObservations:    a.Observations,
	}
}

// UserValues pre-populates the user form from a stored record
func UserValues(u *entities.User) map[string]string {
	return map[string]string{
		FieldName:  u.Name,
		FieldEmail: u.Email,
		FieldRole:  string(u.Role),
		FieldArea:  u.Area,
	}
}
