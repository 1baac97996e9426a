package neograph

import (
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"

	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/utils"
)

type Neo4jConfig struct {
	Host string
	Port int
	User string
	Pwd  string
}

func (c *Neo4jConfig) URI() string {
	return fmt.Sprintf("neo4j://%s:%d", c.Host, c.Port)
}

type Config struct {
	Neo4j Neo4jConfig
}

func GenerateTestConfig() *Config {
	return &Config{Neo4j: Neo4jConfig{
		Host: "localhost",
		Port: 7687,
		User: "neo4j",
		Pwd:  "neo4j",
	}}
}

var ErrNotInitialized = errors.New("neo4j driver not initialized")

var globalDriver neo4j.Driver

// Init leaves the package disabled when no host is configured.
func Init(config *Config) {
	if len(config.Neo4j.Host) == 0 {
		logging.Default().Warnf("neo4j host not configured, graph export disabled")
		return
	}

	driver, err := neo4j.NewDriver(config.Neo4j.URI(), neo4j.BasicAuth(config.Neo4j.User, config.Neo4j.Pwd, ""))
	if err != nil {
		panic(err)
	}

	globalDriver = driver
}

func Close() {
	if globalDriver == nil {
		return
	}

	if err := globalDriver.Close(); err != nil {
		logging.Default().WithError(err).Errorf("close neo4j driver fail: %s", err.Error())
	}
}

// Execute runs cypher in one write transaction and collects every record.
func Execute(cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	if globalDriver == nil {
		return nil, ErrNotInitialized
	}

	session := globalDriver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	records, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		result, err := tx.Run(cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Collect()
	})
	if err != nil {
		return nil, utils.WrapError(err, "run cypher fail")
	}

	return records.([]*neo4j.Record), nil
}
