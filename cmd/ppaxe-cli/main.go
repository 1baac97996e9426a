package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"ppaxe-backend-controller/config"
	"ppaxe-backend-controller/domain/annotate"
	"ppaxe-backend-controller/domain/graph"
	"ppaxe-backend-controller/domain/pipeline"
	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/domain/scorer"
	"ppaxe-backend-controller/domain/tagger"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/repository/pubmed"
)

const (
	annotatorCoreNLP    = "corenlp"
	annotatorDictionary = "dictionary"
)

type cliOptions struct {
	configPath string
	inputPath  string
	pmids      []string
	annotator  string
	proteins   []string
	format     string
	table      string
	sortKey    report.ProteinSortKey
	outputPath string
	csvDir     string
	verbose    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("ppaxe-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("ppaxe-cli: %v", err)
	}
}

func splitList(raw string) []string {
	var ret []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if len(item) != 0 {
			ret = append(ret, item)
		}
	}
	return ret
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	var pmids, proteins, sortKey string

	flag.StringVar(&opts.configPath, "config", os.Getenv(config.EnvKeyConfigPath), "YAML config file")
	flag.StringVar(&opts.inputPath, "input", "", "text file, one article per line as PMID<TAB>text")
	flag.StringVar(&pmids, "pmids", "", "comma separated PMIDs fetched from PubMed")
	flag.StringVar(&opts.annotator, "annotator", annotatorCoreNLP, "corenlp or dictionary")
	flag.StringVar(&proteins, "proteins", "", "comma separated protein symbols for -annotator=dictionary")
	flag.StringVar(&opts.format, "format", "markdown", "markdown or html")
	flag.StringVar(&opts.table, "table", "full", "full, protein or interaction")
	flag.StringVar(&sortKey, "sort", "", "protein table order: total_count, int_count, left_count or right_count")
	flag.StringVar(&opts.outputPath, "output", "", "report file (default: STDOUT)")
	flag.StringVar(&opts.csvDir, "csv-dir", "", "also write proteins.csv and interactions.csv into this directory")
	flag.BoolVar(&opts.verbose, "verbose", false, "log every stage")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s (-input FILE | -pmids ID,ID) [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.pmids = splitList(pmids)
	opts.proteins = splitList(proteins)

	var err error
	opts.sortKey, err = report.ParseProteinSortKey(sortKey)
	if err != nil {
		return opts, err
	}

	if len(opts.inputPath) == 0 && len(opts.pmids) == 0 {
		flag.Usage()
		return opts, errors.New("missing -input file or -pmids")
	}
	if opts.annotator != annotatorCoreNLP && opts.annotator != annotatorDictionary {
		return opts, fmt.Errorf("unknown -annotator [%s]", opts.annotator)
	}
	if opts.annotator == annotatorDictionary && len(opts.proteins) == 0 {
		return opts, errors.New("-annotator=dictionary needs -proteins")
	}
	if opts.format != "markdown" && opts.format != "html" {
		return opts, fmt.Errorf("unknown -format [%s]", opts.format)
	}
	switch opts.table {
	case "full", "protein", "interaction":
	default:
		return opts, fmt.Errorf("unknown -table [%s]", opts.table)
	}
	return opts, nil
}

func newAnnotator(opts *cliOptions, cfg *config.AppConfig) annotate.Annotator {
	if opts.annotator == annotatorDictionary {
		return tagger.NewTagger(opts.proteins...)
	}

	return annotate.NewCoreNLP(&annotate.Config{
		URL:          cfg.CoreNLP.URL,
		ProteinLabel: cfg.CoreNLP.ProteinLabel,
		NERModel:     cfg.CoreNLP.NERModel,
		Timeout:      cfg.CoreNLP.Timeout,
	}, logging.NewLogger())
}

func newScorer(cfg *config.AppConfig) (*scorer.Scorer, error) {
	classifier, err := scorer.NewClassifier(&scorer.Config{
		Kind:    cfg.Classifier.Kind,
		URL:     cfg.Classifier.URL,
		Timeout: cfg.Classifier.Timeout,
		Onnx: scorer.OnnxConfig{
			SharedLibraryPath: cfg.Classifier.SharedLibraryPath,
			ModelPath:         cfg.Classifier.ModelPath,
			InputName:         cfg.Classifier.InputName,
			OutputName:        cfg.Classifier.OutputName,
		},
	})
	if err != nil || classifier == nil {
		return nil, err
	}
	return scorer.New(classifier, logging.NewLogger()), nil
}

func loadArticles(ctx context.Context, opts *cliOptions, cfg *config.AppConfig) ([]*ppi.Article, error) {
	var articles []*ppi.Article

	if len(opts.inputPath) != 0 {
		file, err := os.Open(opts.inputPath)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer file.Close()

		parsed, err := parseArticles(file)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		articles = append(articles, parsed...)
	}

	if len(opts.pmids) != 0 {
		pubmedConf := pubmed.GenerateTestConfig()
		if len(cfg.Task.PubMedURL) != 0 {
			pubmedConf.URL = strings.TrimRight(cfg.Task.PubMedURL, "/") + "/efetch.fcgi"
		}

		abstracts, err := pubmed.NewClient(pubmedConf, logging.NewLogger()).FetchAbstracts(ctx, opts.pmids)
		if err != nil {
			return nil, fmt.Errorf("fetch pubmed: %w", err)
		}
		for _, abstract := range abstracts {
			articles = append(articles, ppi.NewArticle(abstract.PMID, abstract.Text()))
		}
	}

	return articles, nil
}

func run(opts cliOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logConf := &logging.Config{FileLevel: logrus.DebugLevel, ConsoleLevel: logrus.WarnLevel}
	if opts.verbose {
		logConf.ConsoleLevel = logrus.DebugLevel
	}
	logging.SetDefaultConfig(logConf)

	ctx := context.Background()

	articles, err := loadArticles(ctx, &opts, cfg)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return errors.New("no article to analyze")
	}

	sc, err := newScorer(cfg)
	if err != nil {
		return fmt.Errorf("init scorer: %w", err)
	}

	processor := pipeline.NewProcessor(&pipeline.Config{
		Concurrency:      cfg.Pipeline.Concurrency,
		MaxSentenceRunes: cfg.Pipeline.MaxSentenceRunes,
	}, newAnnotator(&opts, cfg), sc, logging.NewLogger())

	if err := processor.ProcessAll(ctx, articles); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	policy := report.AcceptUnscored
	if cfg.Pipeline.RequireAccepted {
		policy = report.RequireAccepted
	}
	rep := report.NewReport(articles, policy)

	if err := writeOutput(opts.outputPath, renderReport(&opts, rep)); err != nil {
		return err
	}

	if len(opts.csvDir) != 0 {
		if err := writeCSV(opts.csvDir, rep, opts.sortKey); err != nil {
			return err
		}
	}

	return nil
}

func renderReport(opts *cliOptions, rep *report.Report) string {
	var table *report.Table
	switch opts.table {
	case "protein":
		table = rep.Proteins.Table(opts.sortKey)
	case "interaction":
		table = rep.Graph.Table()
	default:
		if opts.format == "html" {
			return rep.HTML(opts.sortKey)
		}
		return rep.Markdown(opts.sortKey)
	}

	if opts.format == "html" {
		return report.HTMLDocument(table.HTML())
	}
	return table.Markdown()
}

func writeOutput(path, content string) error {
	if len(path) == 0 {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeCSV(dir string, rep *report.Report, key report.ProteinSortKey) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}

	proteins, err := graph.ProteinCSV(rep.Proteins, key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "proteins.csv"), proteins, 0o644); err != nil {
		return fmt.Errorf("write proteins.csv: %w", err)
	}

	interactions, err := graph.InteractionCSV(rep.Graph)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "interactions.csv"), interactions, 0o644); err != nil {
		return fmt.Errorf("write interactions.csv: %w", err)
	}

	return nil
}
