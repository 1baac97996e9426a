package pubmed

import (
	"encoding/xml"
	"strings"

	"ppaxe-backend-controller/utils"
)

// xmlText keeps the character data of an element and of every nested markup element.
type xmlText string

func (t *xmlText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	depth := 0

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch v := token.(type) {
		case xml.CharData:
			sb.Write(v)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = xmlText(strings.TrimSpace(sb.String()))
				return nil
			}
			depth--
		}
	}
}

type xmlArticleSet struct {
	Articles []struct {
		Citation struct {
			PMID    string `xml:"PMID"`
			Article struct {
				Title    xmlText   `xml:"ArticleTitle"`
				Abstract []xmlText `xml:"Abstract>AbstractText"`
			} `xml:"Article"`
		} `xml:"MedlineCitation"`
	} `xml:"PubmedArticle"`
}

func parseArticleSet(body []byte) ([]Abstract, error) {
	var set xmlArticleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "xml unmarshal efetch response fail: %v", err)
	}

	ret := make([]Abstract, 0, len(set.Articles))
	for _, article := range set.Articles {
		parts := make([]string, 0, len(article.Citation.Article.Abstract))
		for _, part := range article.Citation.Article.Abstract {
			if len(part) != 0 {
				parts = append(parts, string(part))
			}
		}

		ret = append(ret, Abstract{
			PMID:     strings.TrimSpace(article.Citation.PMID),
			Title:    string(article.Citation.Article.Title),
			Abstract: strings.Join(parts, " "),
		})
	}

	return ret, nil
}
