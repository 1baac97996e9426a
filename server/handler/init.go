package handler

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/domain/taskqueue"
	"ppaxe-backend-controller/repository/metadata"
)

type Setting struct {
	Policy report.AcceptPolicy
	// runs a stored task in the background, taskqueue.DoAnalysis when nil
	StartTask func(task *metadata.AnalysisTask, articles []metadata.Article)
}

var (
	globalSetting = Setting{StartTask: taskqueue.DoAnalysis}
	reportPolicy  = newReportPolicy()
)

func Init(setting *Setting) {
	globalSetting = *setting
	if globalSetting.StartTask == nil {
		globalSetting.StartTask = taskqueue.DoAnalysis
	}
}

// newReportPolicy keeps the markup report tables are made of and nothing else.
func newReportPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("h1", "h2", "table", "thead", "tbody", "tr", "th", "td", "span")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^(prot|verb)$`)).OnElements("span")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowURLSchemes("https")
	policy.RequireParseableURLs(true)
	return policy
}
