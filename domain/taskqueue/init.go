package taskqueue

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ppaxe-backend-controller/domain/pipeline"
	"ppaxe-backend-controller/domain/report"
)

type Config struct {
	RabbitMQConfig      MQConnectionConfig
	GetMetadataDatabase func() *gorm.DB
	Logger              *logrus.Logger

	// consumes QueueArticleInput when set
	Processor *pipeline.Processor

	MonitorInterval time.Duration
	Policy          report.AcceptPolicy
}

type taskSetting struct {
	getMetadataDatabase func() *gorm.DB
	logger              *logrus.Logger
	monitorInterval     time.Duration
	policy              report.AcceptPolicy
	sender              articleSender
}

var (
	globalSetting taskSetting
	globalBroker  *articleBroker
)

func Init(config *Config) {
	var err error
	globalBroker, err = newArticleBroker(&config.RabbitMQConfig, defaultArticleQueues, config.Logger)
	if err != nil {
		panic(err)
	}

	globalSetting = taskSetting{
		getMetadataDatabase: config.GetMetadataDatabase,
		logger:              config.Logger,
		monitorInterval:     config.MonitorInterval,
		policy:              config.Policy,
		sender:              globalBroker,
	}

	err = globalBroker.ListenResults(buildReceive(config.GetMetadataDatabase))
	if err != nil {
		panic(err)
	}

	if config.Processor != nil {
		err = globalBroker.ListenArticles(buildWorker(config.Processor, globalBroker, config.Logger))
		if err != nil {
			panic(err)
		}
	}
}

func Close() {
	if globalBroker != nil {
		err := globalBroker.Close()
		if err != nil {
			globalBroker.logger.WithError(err).Errorf("globalBroker close fail with err:\n%v", err)
		}
	}
}
