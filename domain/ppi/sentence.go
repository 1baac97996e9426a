package ppi

import (
	"context"
	"html"
	"strings"

	"ppaxe-backend-controller/utils"
)

type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Token, error)
}

/*
Sentence is owned by its Article.

	Tokens: reading order, filled once by Annotate or SetTokens
	Mentions: derived from Tokens, ordered by start
	Candidates: filled by GenerateCandidates, ordered by prot1 then prot2 position
*/
type Sentence struct {
	ArticleID string
	Index     int
	Text      string

	Tokens     []Token
	Mentions   []ProteinMention
	Candidates []*InteractionCandidate

	annotated bool
}

func (s *Sentence) Annotated() bool {
	return s.annotated
}

// Annotate calls the annotation service once; later calls are no-ops.
func (s *Sentence) Annotate(ctx context.Context, annotator Annotator) error {
	if s.annotated {
		return nil
	}

	tokens, err := annotator.Annotate(ctx, s.Text)
	if err != nil {
		return utils.WrapErrorf(err, "annotate sentence [%d] of article [%s] fail", s.Index, s.ArticleID)
	}

	s.SetTokens(tokens)
	return nil
}

func (s *Sentence) SetTokens(tokens []Token) {
	s.Tokens = tokens
	s.Mentions = FindMentions(tokens)
	s.annotated = true
}

/*
HTMLStyle decides how Sentence.RenderHTML marks mentions and verbs.
Verb may be nil, then no token is marked as a verb.
*/
type HTMLStyle struct {
	ProtOpen  string
	ProtClose string
	Verb      func(Token) bool
	VerbOpen  string
	VerbClose string
}

var PlainHTMLStyle = HTMLStyle{
	ProtOpen:  "<prot>",
	ProtClose: "</prot>",
}

// ToHTML renders the sentence with every mention wrapped in <prot> ... </prot>.
func (s *Sentence) ToHTML() string {
	return s.RenderHTML(PlainHTMLStyle)
}

/*
RenderHTML joins the escaped token words with single spaces. Mention markers are separate words,
so "of <prot> THOC2 </prot> seems"; verb markers hug the word.
*/
func (s *Sentence) RenderHTML(style HTMLStyle) string {
	parts := make([]string, 0, len(s.Tokens)+2*len(s.Mentions))

	next := 0
	for i, token := range s.Tokens {
		if next < len(s.Mentions) && s.Mentions[next].Start == i {
			parts = append(parts, style.ProtOpen)
		}

		word := html.EscapeString(token.Word)
		inMention := next < len(s.Mentions) && s.Mentions[next].Start <= i
		if !inMention && style.Verb != nil && style.Verb(token) {
			word = style.VerbOpen + word + style.VerbClose
		}
		parts = append(parts, word)

		if next < len(s.Mentions) && s.Mentions[next].End == i+1 {
			parts = append(parts, style.ProtClose)
			next++
		}
	}

	return strings.Join(parts, " ")
}
