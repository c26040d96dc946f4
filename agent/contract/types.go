package contract

// Product is an immutable catalog record. Loaded once per snapshot and never
// mutated during a query session.
type Product struct {
	ID       int64   `json:"product_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock_level"`
	Rating   float64 `json:"rating"`
	Sales    int     `json:"sales_count"`
}

// FaqEntry is a static question/answer pair with optional keyword tags.
type FaqEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags,omitempty"`
}

// ToolRequest is the raw tool proposal produced by the classifier before any
// schema validation has happened.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// RoutingDecision is a validated tool selection for a single query. It is
// produced by the router, consumed immediately by dispatch, and not retained.
// Confidence is 1.0 when the first classifier pass validated cleanly and 0.5
// when a correction retry was needed.
type RoutingDecision struct {
	Tool       string
	Params     map[string]any
	Confidence float64
}

// ClassifyRequest carries one classification attempt. Correction is set on
// the retry pass and describes why the previous proposal was rejected.
type ClassifyRequest struct {
	Query      string `json:"query"`
	Correction string `json:"correction,omitempty"`
}

// ToolOutput is the raw result of a tool handler, before answer formatting.
type ToolOutput struct {
	Products []Product `json:"products,omitempty"`
	Question string    `json:"question,omitempty"`
	Answer   string    `json:"answer,omitempty"`
	Summary  string    `json:"summary,omitempty"`
}

type AnswerKind string

const (
	AnswerProducts AnswerKind = "products"
	AnswerFaq      AnswerKind = "faq"
	AnswerFallback AnswerKind = "fallback"
)

// AnswerResult is the single public result type of the assistant.
type AnswerResult struct {
	Kind     AnswerKind `json:"kind"`
	Message  string     `json:"message"`
	Products []Product  `json:"products,omitempty"`
}
