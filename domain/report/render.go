package report

import (
	"fmt"
	"html"
	"net/url"

	"ppaxe-backend-controller/domain/feature"
	"ppaxe-backend-controller/domain/ppi"
)

const PubMedURL = "https://www.ncbi.nlm.nih.gov/pubmed/?term="

var InteractionHTMLStyle = ppi.HTMLStyle{
	ProtOpen:  `<span class="prot">`,
	ProtClose: `</span>`,
	Verb: func(token ppi.Token) bool {
		return token.IsVerb() && feature.IsInteractionKeyword(token.Word)
	},
	VerbOpen:  `<span class="verb">`,
	VerbClose: `</span>`,
}

func InteractionHTML(s *ppi.Sentence) string {
	return s.RenderHTML(InteractionHTMLStyle)
}

func PubMedAnchor(pmid string) string {
	return fmt.Sprintf(`<a href="%s%s">%s</a>`, PubMedURL, url.QueryEscape(pmid), html.EscapeString(pmid))
}
