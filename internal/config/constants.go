package config

const (
	DefaultDatabasePath = "./bookcrud.db"
	DefaultBcryptCost   = 12
	DefaultAgeLimit     = 18
)
