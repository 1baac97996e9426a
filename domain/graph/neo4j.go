package graph

import (
	"errors"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/utils"
)

const mergeInteractionCypher = `
	UNWIND $rows AS row
	MERGE (a:Protein{symbol: row.protein_a})
	MERGE (b:Protein{symbol: row.protein_b})
	MERGE (a)-[r:INTERACTS{task: row.task}]-(b)
	SET r.confidence = row.confidence, r.pmid = row.pmid
`

const exportBatchSize = 500

var ErrNoExecutor = errors.New("no cypher executor configured")

func edgeRows(taskID uint, g *report.GraphSummary) []interface{} {
	edges := g.SortedEdges()
	rows := make([]interface{}, 0, len(edges))
	for _, edge := range edges {
		c := edge.Exemplar

		var confidence interface{}
		if edge.Confidence != nil {
			confidence = *edge.Confidence
		}

		rows = append(rows, map[string]interface{}{
			"protein_a":  c.Prot1.Canonical,
			"protein_b":  c.Prot2.Canonical,
			"task":       int64(taskID),
			"confidence": confidence,
			"pmid":       c.ArticleID(),
		})
	}
	return rows
}

func exportGraph(setting *GraphSetting, taskID uint, g *report.GraphSummary) (int, error) {
	if setting.Execute == nil {
		return 0, ErrNoExecutor
	}

	rows := edgeRows(taskID, g)

	for start := 0; start < len(rows); start += exportBatchSize {
		end := start + exportBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		_, err := setting.Execute(mergeInteractionCypher, map[string]interface{}{
			"rows": rows[start:end],
		})
		if err != nil {
			return start, utils.WrapErrorf(err, "merge edges [%d, %d) of task [%d] fail", start, end, taskID)
		}
	}

	setting.Logger.Infof("task [%d]: %d edges exported to neo4j", taskID, len(rows))
	return len(rows), nil
}
