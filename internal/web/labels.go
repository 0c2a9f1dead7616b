package web

import "github.com/satriahrh/inventario/domain/entities"

var typeLabels = map[entities.AssetType]string{
	entities.AssetTypeComputer: "Computadora",
	entities.AssetTypeMonitor:  "Monitor",
	entities.AssetTypeKeyboard: "Teclado",
	entities.AssetTypeMouse:    "Mouse",
	entities.AssetTypeHeadset:  "Auriculares",
	entities.AssetTypeHub:      "Hub",
	entities.AssetTypeCable:    "Cable",
	entities.AssetTypeOther:    "Otro",
}

var statusLabels = map[entities.AssetStatus]string{
	entities.AssetStatusAvailable:   "Disponible",
	entities.AssetStatusInUse:       "En Uso",
	entities.AssetStatusMaintenance: "En Mantenimiento",
	entities.AssetStatusBroken:      "Roto",
	entities.AssetStatusDisposed:    "Descartado",
}

var roleLabels = map[entities.UserRole]string{
	entities.UserRoleAdmin:    "Administrador",
	entities.UserRoleManager:  "Gestor",
	entities.UserRoleUser:     "Usuario",
	entities.UserRoleReadOnly: "Solo lectura",
}

// TypeLabel is the Spanish name of an asset type. Unknown values are shown as is.
func TypeLabel(t entities.AssetType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// StatusLabel is the Spanish name of an asset status
func StatusLabel(s entities.AssetStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// RoleLabel is the Spanish name of a user role
func RoleLabel(r entities.UserRole) string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// statusBadge picks the badge colour of a status in the asset table
func statusBadge(s entities.AssetStatus) string {
	switch s {
	case entities.AssetStatusAvailable:
		return "badge-green"
	case entities.AssetStatusInUse:
		return "badge-blue"
	case entities.AssetStatusMaintenance:
		return "badge-yellow"
	default:
		return "badge-red"
	}
}
