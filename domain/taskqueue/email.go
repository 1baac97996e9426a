package taskqueue

import (
	"fmt"
	"html"

	"gorm.io/gorm"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/utils"
	emailutils "ppaxe-backend-controller/utils/email"
)

const analysisEmailHTMLTemplate = `
<h1>PPI extraction finished</h1>
<p>Task: %s</p>
<p>Articles: %d</p>
<p>Candidates: %d</p>
<p>Unique interactions: %d</p>

<h2>Proteins</h2>
%s

<h2>Interactions</h2>
%s

<p></p>
<p>Download the CSV tables from the task page for more.</p>
`

func sendAnalysisResult(db *gorm.DB, taskID uint, policy report.AcceptPolicy) error {
	var task metadata.AnalysisTask
	err := db.First(&task, taskID).Error
	if err != nil {
		return utils.WrapErrorf(err, "select task[%d] metadata fail", taskID)
	}

	if len(task.Email) == 0 {
		globalSetting.logger.Warnf("task[%d] has no notifying email", taskID)
		return nil
	}

	if !emailutils.Enabled() {
		globalSetting.logger.Warnf("smtp not configured, skip notifying task[%d]", taskID)
		return nil
	}

	rep, err := TaskReport(db, taskID, policy)
	if err != nil {
		return utils.WrapErrorf(err, "summarize task[%d] fail", taskID)
	}

	err = emailutils.SendHtml(task.Email, "[PPaxe] PPI extraction finished", renderAnalysisResultPage(task.Name, rep))
	if err != nil {
		return utils.WrapErrorf(err, "send email to [%s] fail", task.Email)
	}

	return nil
}

func renderAnalysisResultPage(taskName string, rep *report.Report) string {
	return fmt.Sprintf(analysisEmailHTMLTemplate,
		html.EscapeString(taskName),
		rep.Counts.Articles,
		rep.Counts.Candidates,
		rep.Counts.UniqueInteractions,
		rep.Proteins.Table(report.SortByIntCount).HTML(),
		rep.Graph.Table().HTML())
}
