package config

const (
	EnvKeyConfigPath = "PPAXE_CONFIG"

	EnvKeyEmailSMTPIdentity = "PPAXE_SMTP_IDENTITY"
	EnvKeyEmailSMTPHost     = "PPAXE_SMTP_HOST"
	EnvKeyEmailSMTPPort     = "PPAXE_SMTP_PORT"
	EnvKeyEmailSMTPUserName = "PPAXE_SMTP_USERNAME"
	EnvKeyEmailSMTPPassword = "PPAXE_SMTP_PASSWORD"

	EnvKeyMySQLPassword    = "PPAXE_MYSQL_PASSWORD"
	EnvKeyRabbitMQPassword = "PPAXE_RABBITMQ_PASSWORD"
	EnvKeyNeo4jPassword    = "PPAXE_NEO4J_PASSWORD"
)
