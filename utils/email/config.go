package email

type SMTPConfig struct {
	Identity string
	Host     string
	Port     int
	UserName string
	Password string
}

type Config struct {
	SMTP SMTPConfig
}

var globalConfig = Config{}

func Init(config *Config) {
	globalConfig = *config
}

// Enabled reports whether a SMTP host is configured; notification is skipped otherwise.
func Enabled() bool {
	return len(globalConfig.SMTP.Host) != 0
}

// GenerateTestConfig points at a local SMTP catcher such as MailHog.
func GenerateTestConfig() *Config {
	return &Config{SMTP: SMTPConfig{
		Identity: "ppaxe@localhost",
		Host:     "localhost",
		Port:     1025,
		UserName: "ppaxe@localhost",
	}}
}
