package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"ppaxe-backend-controller/utils"
)

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	DebugMode bool   `yaml:"debug"`
}

type LoggingConfig struct {
	FileLevel      string `yaml:"file_level"`
	ConsoleLevel   string `yaml:"console_level"`
	FileDir        string `yaml:"file_dir"`
	DisableConsole bool   `yaml:"disable_console"`
}

type MySQLConfig struct {
	// "mysql" or "sqlite"
	Driver   string `yaml:"driver"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Database string `yaml:"database"`
	// database file used when Driver is sqlite
	Path           string `yaml:"path"`
	CheckMigration bool   `yaml:"check_migration"`
}

type RabbitMQConfig struct {
	User     string `yaml:"user"`
	Pwd      string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Prefetch int    `yaml:"prefetch"`
}

type Neo4jConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pwd  string `yaml:"password"`
}

type SMTPConfig struct {
	Identity string `yaml:"identity"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	UserName string `yaml:"username"`
	Password string `yaml:"password"`
}

type CoreNLPConfig struct {
	URL          string        `yaml:"url"`
	ProteinLabel string        `yaml:"protein_label"`
	NERModel     string        `yaml:"ner_model"`
	Timeout      time.Duration `yaml:"timeout"`
}

type ClassifierConfig struct {
	// "http", "onnx" or "" for no scoring
	Kind string `yaml:"kind"`

	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`

	ModelPath         string `yaml:"model_path"`
	SharedLibraryPath string `yaml:"shared_library_path"`
	InputName         string `yaml:"input_name"`
	OutputName        string `yaml:"output_name"`
}

type PipelineConfig struct {
	Concurrency      int  `yaml:"concurrency"`
	MaxSentenceRunes int  `yaml:"max_sentence_runes"`
	RequireAccepted  bool `yaml:"require_accepted"`
}

type TaskConfig struct {
	Worker          bool          `yaml:"worker"`
	MonitorInterval time.Duration `yaml:"monitor_interval"`
	PubMedURL       string        `yaml:"pubmed_url"`
}

type MetricsConfig struct {
	Prometheus bool `yaml:"prometheus"`
}

type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	MySQL      MySQLConfig      `yaml:"mysql"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Neo4j      Neo4jConfig      `yaml:"neo4j"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	CoreNLP    CoreNLPConfig    `yaml:"corenlp"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Task       TaskConfig       `yaml:"task"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

/*
GenerateTestConfig returns the settings of a single developer machine: every service on localhost
with its default port and credentials.
*/
func GenerateTestConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Port: 8003, DebugMode: true},
		Logging: LoggingConfig{
			FileLevel:    "debug",
			ConsoleLevel: "info",
			FileDir:      "logs",
		},
		MySQL: MySQLConfig{
			Driver:         "mysql",
			User:           "metadata_test",
			Password:       "metadata_test",
			Host:           "localhost",
			Database:       "metadata_test",
			CheckMigration: true,
		},
		RabbitMQ: RabbitMQConfig{User: "guest", Pwd: "guest", Host: "localhost", Port: "5672"},
		Neo4j:    Neo4jConfig{Host: "localhost", Port: 7687, User: "neo4j", Pwd: "neo4j"},
		SMTP:     SMTPConfig{Host: "localhost", Port: 25},
		CoreNLP: CoreNLPConfig{
			URL:          "http://localhost:9000",
			ProteinLabel: "P",
			Timeout:      30 * time.Second,
		},
		Pipeline: PipelineConfig{Concurrency: 4, MaxSentenceRunes: 4000},
		Task: TaskConfig{
			Worker:          true,
			MonitorInterval: time.Minute,
			PubMedURL:       "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
		},
	}
}

/*
Load reads the YAML file at path on top of GenerateTestConfig. A missing file is not an error.
Secrets named by the EnvKey* constants override the file.
*/
func Load(path string) (*AppConfig, error) {
	cfg := GenerateTestConfig()

	if len(path) != 0 {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, utils.WrapErrorf(err, "read config [%s] fail", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, utils.WrapErrorf(err, "yaml unmarshal config [%s] fail", path)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, utils.WrapError(err, "apply env fail")
	}

	return cfg, nil
}

func (c *AppConfig) applyEnv() error {
	overrideString(&c.SMTP.Identity, EnvKeyEmailSMTPIdentity)
	overrideString(&c.SMTP.Host, EnvKeyEmailSMTPHost)
	overrideString(&c.SMTP.UserName, EnvKeyEmailSMTPUserName)
	overrideString(&c.SMTP.Password, EnvKeyEmailSMTPPassword)
	overrideString(&c.MySQL.Password, EnvKeyMySQLPassword)
	overrideString(&c.RabbitMQ.Pwd, EnvKeyRabbitMQPassword)
	overrideString(&c.Neo4j.Pwd, EnvKeyNeo4jPassword)

	if port, ok := os.LookupEnv(EnvKeyEmailSMTPPort); ok {
		n, err := strconv.Atoi(port)
		if err != nil {
			return utils.WrapErrorf(err, "env %s=[%s] is not a port", EnvKeyEmailSMTPPort, port)
		}
		c.SMTP.Port = n
	}

	return nil
}

func overrideString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*target = v
	}
}
