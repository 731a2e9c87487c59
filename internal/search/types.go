package search

import "context"

// DefaultNum is the default number of organic results requested.
const DefaultNum = 10

// Request is one search query.
type Request struct {
	Query    string `json:"q"`
	Num      int    `json:"num"`
	Country  string `json:"gl"`
	Location string `json:"location,omitempty"`
}

// OrganicResult is a single web result.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// PeopleAlsoAsk is a related question block.
type PeopleAlsoAsk struct {
	Question string `json:"question"`
	Snippet  string `json:"snippet"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

// Response is the subset of the search API response prospector consumes.
type Response struct {
	Organic        []OrganicResult `json:"organic"`
	KnowledgeGraph map[string]any  `json:"knowledgeGraph,omitempty"`
	AnswerBox      map[string]any  `json:"answerBox,omitempty"`
	PeopleAlsoAsk  []PeopleAlsoAsk `json:"peopleAlsoAsk,omitempty"`
}

// Searcher runs search queries. A nil response with a nil error means no
// result could be obtained; callers skip the query.
type Searcher interface {
	Search(ctx context.Context, req Request) (*Response, error)
	Available() bool
}
