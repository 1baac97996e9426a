package main

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"ppaxe-backend-controller/config"
	"ppaxe-backend-controller/domain/annotate"
	"ppaxe-backend-controller/domain/graph"
	"ppaxe-backend-controller/domain/pipeline"
	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/domain/scorer"
	"ppaxe-backend-controller/domain/tagger"
	"ppaxe-backend-controller/domain/taskqueue"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/metrics"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/repository/neograph"
	"ppaxe-backend-controller/repository/pubmed"
	"ppaxe-backend-controller/server"
	"ppaxe-backend-controller/utils/email"
)

func parseLevel(level string, fallback logrus.Level) logrus.Level {
	ret, err := logrus.ParseLevel(level)
	if err != nil {
		return fallback
	}
	return ret
}

func loggingConf(cfg *config.AppConfig) *logging.Config {
	return &logging.Config{
		FileLevel:      parseLevel(cfg.Logging.FileLevel, logrus.DebugLevel),
		ConsoleLevel:   parseLevel(cfg.Logging.ConsoleLevel, logrus.InfoLevel),
		FileDir:        cfg.Logging.FileDir,
		DisableConsole: cfg.Logging.DisableConsole,
	}
}

func emailConf(cfg *config.AppConfig) *email.Config {
	return &email.Config{SMTP: email.SMTPConfig{
		Identity: cfg.SMTP.Identity,
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		UserName: cfg.SMTP.UserName,
		Password: cfg.SMTP.Password,
	}}
}

func metadataConf(cfg *config.AppConfig) *metadata.Config {
	return &metadata.Config{
		Driver: cfg.MySQL.Driver,
		MySQL: metadata.MySQLConfig{
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			Host:     cfg.MySQL.Host,
			Database: cfg.MySQL.Database,
		},
		SQLitePath:     cfg.MySQL.Path,
		CheckMigration: cfg.MySQL.CheckMigration,
	}
}

func taggerConf() *tagger.TagSetting {
	return &tagger.TagSetting{
		Logger:              logging.NewLogger(),
		GetMetadataDatabase: metadata.DatabaseRaw,
	}
}

func annotateConf(cfg *config.AppConfig) *annotate.Config {
	return &annotate.Config{
		URL:          cfg.CoreNLP.URL,
		ProteinLabel: cfg.CoreNLP.ProteinLabel,
		NERModel:     cfg.CoreNLP.NERModel,
		Timeout:      cfg.CoreNLP.Timeout,
	}
}

func scorerConf(cfg *config.AppConfig) *scorer.Config {
	return &scorer.Config{
		Kind:    cfg.Classifier.Kind,
		URL:     cfg.Classifier.URL,
		Timeout: cfg.Classifier.Timeout,
		Onnx: scorer.OnnxConfig{
			SharedLibraryPath: cfg.Classifier.SharedLibraryPath,
			ModelPath:         cfg.Classifier.ModelPath,
			InputName:         cfg.Classifier.InputName,
			OutputName:        cfg.Classifier.OutputName,
		},
	}
}

func pipelineConf(cfg *config.AppConfig) *pipeline.Config {
	return &pipeline.Config{
		Concurrency:      cfg.Pipeline.Concurrency,
		MaxSentenceRunes: cfg.Pipeline.MaxSentenceRunes,
	}
}

func acceptPolicy(cfg *config.AppConfig) report.AcceptPolicy {
	if cfg.Pipeline.RequireAccepted {
		return report.RequireAccepted
	}
	return report.AcceptUnscored
}

func pubmedConf(cfg *config.AppConfig) *pubmed.Config {
	ret := pubmed.GenerateTestConfig()
	if len(cfg.Task.PubMedURL) != 0 {
		ret.URL = strings.TrimRight(cfg.Task.PubMedURL, "/") + "/efetch.fcgi"
	}
	return ret
}

func taskqueueConf(cfg *config.AppConfig, processor *pipeline.Processor) *taskqueue.Config {
	ret := &taskqueue.Config{
		RabbitMQConfig: taskqueue.MQConnectionConfig{
			User:     cfg.RabbitMQ.User,
			Pwd:      cfg.RabbitMQ.Pwd,
			Host:     cfg.RabbitMQ.Host,
			Port:     cfg.RabbitMQ.Port,
			Prefetch: cfg.RabbitMQ.Prefetch,
		},
		GetMetadataDatabase: metadata.DatabaseRaw,
		Logger:              logging.NewLogger(),
		MonitorInterval:     cfg.Task.MonitorInterval,
		Policy:              acceptPolicy(cfg),
	}
	if cfg.Task.Worker {
		ret.Processor = processor
	}
	return ret
}

func neographConf(cfg *config.AppConfig) *neograph.Config {
	return &neograph.Config{Neo4j: neograph.Neo4jConfig{
		Host: cfg.Neo4j.Host,
		Port: cfg.Neo4j.Port,
		User: cfg.Neo4j.User,
		Pwd:  cfg.Neo4j.Pwd,
	}}
}

func graphConf(cfg *config.AppConfig) *graph.GraphSetting {
	return &graph.GraphSetting{
		GetMetadataDatabase: metadata.DatabaseRaw,
		Execute:             neograph.Execute,
		Policy:              acceptPolicy(cfg),
		Logger:              logging.NewLogger(),
	}
}

func newProcessor(cfg *config.AppConfig, logger *logrus.Logger) *pipeline.Processor {
	classifier, err := scorer.NewClassifier(scorerConf(cfg))
	if err != nil {
		panic(err)
	}

	var sc *scorer.Scorer
	if classifier != nil {
		sc = scorer.New(classifier, logging.NewLogger())
	}

	var annotator annotate.Annotator
	if len(cfg.CoreNLP.URL) != 0 {
		coreNLP := annotate.NewCoreNLP(annotateConf(cfg), logging.NewLogger())
		if err := coreNLP.Ping(context.Background()); err != nil {
			logger.WithError(err).Warnf("corenlp [%s] not reachable yet: %s", cfg.CoreNLP.URL, err.Error())
		}
		annotator = coreNLP
	} else {
		dictionary, err := tagger.NewTaggerFromDatabase(context.Background())
		if err != nil {
			panic(err)
		}
		logger.Warnf("corenlp not configured, annotating with %d known protein symbols", dictionary.Size())
		annotator = dictionary
	}

	return pipeline.NewProcessor(pipelineConf(cfg), annotator, sc, logging.NewLogger())
}

func main() {
	cfg, err := config.Load(os.Getenv(config.EnvKeyConfigPath))
	if err != nil {
		panic(err)
	}

	logging.SetDefaultConfig(loggingConf(cfg))
	logger := logging.NewLogger()

	serverConf := &server.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		DebugMode: cfg.Server.DebugMode,
		Policy:    acceptPolicy(cfg),
	}

	if cfg.Metrics.Prometheus {
		serverConf.MetricsHandler = metrics.EnablePrometheus()
	}

	email.Init(emailConf(cfg))

	metadata.Init(metadataConf(cfg))

	tagger.Init(taggerConf())

	processor := newProcessor(cfg, logger)
	pipeline.Init(processor)

	pubmed.Init(pubmedConf(cfg), logging.NewLogger())

	if len(cfg.RabbitMQ.Host) != 0 {
		taskqueue.Init(taskqueueConf(cfg, processor))
		defer taskqueue.Close()
	} else {
		logger.Warnf("rabbitmq not configured, tasks are analyzed in-process")
		serverConf.StartTask = func(task *metadata.AnalysisTask, articles []metadata.Article) {
			err := taskqueue.RunLocal(context.Background(), metadata.DatabaseRaw(), processor, task, articles)
			if err != nil {
				logger.WithError(err).Errorf("run task [%d] locally fail: %s", task.ID, err.Error())
			}
		}
	}

	neograph.Init(neographConf(cfg))
	defer neograph.Close()

	graph.Init(graphConf(cfg))

	s := server.New(serverConf)
	err = s.RunServer()
	if err != nil {
		logger.WithError(err).Errorf("run server error=\n%v", err)
	}
}
