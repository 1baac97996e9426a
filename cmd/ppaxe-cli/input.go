package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"ppaxe-backend-controller/domain/ppi"
)

// parseArticles reads PMID<TAB>text lines; a line without a tab is numbered by its position.
func parseArticles(r io.Reader) ([]*ppi.Article, error) {
	var articles []*ppi.Article

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(raw), "#") {
			continue
		}

		pmid := strconv.Itoa(line)
		text := strings.TrimSpace(raw)
		if idx := strings.IndexByte(raw, '\t'); idx >= 0 {
			pmid = strings.TrimSpace(raw[:idx])
			text = strings.TrimSpace(raw[idx+1:])
		}
		if len(text) == 0 {
			continue
		}

		articles = append(articles, ppi.NewArticle(pmid, text))
	}

	return articles, scanner.Err()
}
