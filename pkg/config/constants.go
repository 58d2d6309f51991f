package config

const (
	// EnvPrefix is the envconfig namespace for every variable.
	EnvPrefix = "ECOM"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "ECOM_DB_DSN"
	EnvDBHost = "ECOM_DB_HOST"
	EnvDBUser = "ECOM_DB_USER"
	EnvDBName = "ECOM_DB_NAME"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
