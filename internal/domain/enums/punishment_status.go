package enums

type PunishmentStatus string

const (
	PunishmentStatusBanned  PunishmentStatus = "BANNED"
	PunishmentStatusWarned  PunishmentStatus = "WARNED"
	PunishmentStatusTimeout PunishmentStatus = "TIMEOUT"
)
