package nodes

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalogx "github.com/panuwat-dev/storefront-agent/agent/catalog"
	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
	faqx "github.com/panuwat-dev/storefront-agent/agent/faq"
	toolx "github.com/panuwat-dev/storefront-agent/agent/tool"
)

func testSources(t *testing.T) toolx.Sources {
	t.Helper()
	return toolx.Sources{
		Catalog: catalogx.New([]contractx.Product{
			{ID: 1, Name: "Wireless Mouse", Category: "electronics", Price: 29, Stock: 14, Rating: 4.3, Sales: 310},
		}),
		Faq: faqx.New([]contractx.FaqEntry{
			{Question: "What is your return policy?", Answer: "30 days from delivery.", Tags: []string{"returns"}},
		}),
	}
}

func testRegistry(t *testing.T) *toolx.Registry {
	t.Helper()
	reg, err := toolx.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error: %v", err)
	}
	return reg
}

func TestValidateQueryTrims(t *testing.T) {
	t.Parallel()

	st, err := ValidateQuery(GraphInput{QueryID: " q1 ", Query: "  show me mice  "})
	if err != nil {
		t.Fatalf("ValidateQuery() error: %v", err)
	}
	if st.Query != "show me mice" || st.QueryID != "q1" {
		t.Fatalf("unexpected state: %+v", st)
	}
	if st.Routing != nil {
		t.Fatalf("unexpected routing failure: %v", st.Routing)
	}
}

func TestValidateQueryEmptyIsUnroutableNotError(t *testing.T) {
	t.Parallel()

	st, err := ValidateQuery(GraphInput{Query: "   "})
	if err != nil {
		t.Fatalf("ValidateQuery() error: %v", err)
	}
	if st.Routing == nil || st.Routing.Reason != contractx.ReasonNoConfidentMatch {
		t.Fatalf("expected no_confident_match routing failure, got %+v", st.Routing)
	}
}

func TestDispatchToolRevalidates(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		Query: "lamps",
		Decision: contractx.RoutingDecision{
			Tool:   toolx.ToolInventoryLookup,
			Params: map[string]any{"color": "red"}, // would never pass validation
		},
	}
	st, err := DispatchTool(context.Background(), st, testRegistry(t), testSources(t))
	if err != nil {
		t.Fatalf("DispatchTool() error: %v", err)
	}
	if !errors.Is(st.HandlerErr, contractx.ErrHandler) {
		t.Fatalf("expected ErrHandler from pre-dispatch validation, got %v", st.HandlerErr)
	}
}

func TestDispatchToolFaqMiss(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		Query: "how is the weather",
		Decision: contractx.RoutingDecision{
			Tool:   toolx.ToolFaqLookup,
			Params: map[string]any{"question": "how is the weather"},
		},
	}
	st, err := DispatchTool(context.Background(), st, testRegistry(t), testSources(t))
	if err != nil {
		t.Fatalf("DispatchTool() error: %v", err)
	}
	if !st.FaqMiss {
		t.Fatal("expected FaqMiss to be set")
	}
	if st.HandlerErr != nil {
		t.Fatalf("an FAQ miss is not a handler error: %v", st.HandlerErr)
	}
}

func TestDispatchToolSkipsOnRoutingFailure(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		Routing: &contractx.RoutingError{Reason: contractx.ReasonTimeout},
	}
	st, err := DispatchTool(context.Background(), st, testRegistry(t), testSources(t))
	if err != nil {
		t.Fatalf("DispatchTool() error: %v", err)
	}
	if st.HandlerErr != nil || st.FaqMiss {
		t.Fatalf("dispatch must be a no-op after a routing failure: %+v", st)
	}
}

func TestFormatAnswerProducts(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		Decision: contractx.RoutingDecision{Tool: toolx.ToolInventoryLookup},
		Output: contractx.ToolOutput{
			Products: []contractx.Product{
				{ID: 1, Name: "Wireless Mouse", Category: "electronics", Price: 29, Stock: 14, Rating: 4.3, Sales: 310},
			},
			Summary: `category "electronics"`,
		},
	}
	out, err := FormatAnswer(st, nil)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Kind != contractx.AnswerProducts {
		t.Fatalf("unexpected kind %q", out.Answer.Kind)
	}
	for _, want := range []string{
		`Found 1 products for category "electronics":`,
		"Wireless Mouse (ID: 1)",
		"Price: $29.00",
		"Rating: 4.3/5.0",
		"Stock: 14",
	} {
		if !strings.Contains(out.Answer.Message, want) {
			t.Errorf("message missing %q:\n%s", want, out.Answer.Message)
		}
	}
	if len(out.Answer.Products) != 1 {
		t.Fatalf("structured products missing: %+v", out.Answer.Products)
	}
}

func TestFormatAnswerEmptyProductsIsValidResult(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		Decision: contractx.RoutingDecision{Tool: toolx.ToolInventoryLookup},
		Output:   contractx.ToolOutput{Summary: `category "kitchen"`},
	}
	out, err := FormatAnswer(st, nil)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Kind != contractx.AnswerProducts {
		t.Fatalf("an empty catalog result is still a products answer, got %q", out.Answer.Kind)
	}
	if out.Answer.Message != "No products found matching your criteria." {
		t.Fatalf("unexpected message: %q", out.Answer.Message)
	}
}

func TestFormatAnswerFaq(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		Decision: contractx.RoutingDecision{Tool: toolx.ToolFaqLookup},
		Output: contractx.ToolOutput{
			Question: "What is your return policy?",
			Answer:   "30 days from delivery.",
		},
	}
	out, err := FormatAnswer(st, nil)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Kind != contractx.AnswerFaq {
		t.Fatalf("unexpected kind %q", out.Answer.Kind)
	}
	want := "I found a similar question in our FAQ:\n\nQ: What is your return policy?\n\nA: 30 days from delivery."
	if out.Answer.Message != want {
		t.Fatalf("unexpected message:\n%s", out.Answer.Message)
	}
}

func TestFormatAnswerFaqMiss(t *testing.T) {
	t.Parallel()

	out, err := FormatAnswer(&GraphState{FaqMiss: true}, nil)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Kind != contractx.AnswerFallback || out.Answer.Message != FallbackNoFaq {
		t.Fatalf("unexpected answer: %+v", out.Answer)
	}
}

func TestFormatAnswerHandlerErrorStaysInternal(t *testing.T) {
	t.Parallel()

	st := &GraphState{HandlerErr: errors.New("pq: connection reset by peer")}
	out, err := FormatAnswer(st, nil)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Message != FallbackHandler {
		t.Fatalf("unexpected message: %q", out.Answer.Message)
	}
	if strings.Contains(out.Answer.Message, "pq:") {
		t.Fatal("internal error detail leaked into the customer-facing answer")
	}
}

func TestFormatAnswerUnroutable(t *testing.T) {
	t.Parallel()

	st := &GraphState{
		Routing: &contractx.RoutingError{Reason: contractx.ReasonExceededRetries},
	}
	out, err := FormatAnswer(st, nil)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Kind != contractx.AnswerFallback || out.Answer.Message != FallbackDefault {
		t.Fatalf("unexpected answer: %+v", out.Answer)
	}
}

func TestFormatAnswerDegradedFaqPattern(t *testing.T) {
	t.Parallel()

	src := testSources(t)
	st := &GraphState{
		Query:   "what is the return policy",
		Routing: &contractx.RoutingError{Reason: contractx.ReasonModelUnavailable},
	}
	out, err := FormatAnswer(st, src.Faq)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Kind != contractx.AnswerFaq {
		t.Fatalf("degraded FAQ-pattern query should still get a real answer, got %+v", out.Answer)
	}
	if !strings.Contains(out.Answer.Message, "30 days from delivery.") {
		t.Fatalf("unexpected message: %q", out.Answer.Message)
	}
}

func TestFormatAnswerDegradedProductPattern(t *testing.T) {
	t.Parallel()

	src := testSources(t)
	st := &GraphState{
		Query:   "show me wireless keyboards under 50",
		Routing: &contractx.RoutingError{Reason: contractx.ReasonTimeout},
	}
	out, err := FormatAnswer(st, src.Faq)
	if err != nil {
		t.Fatalf("FormatAnswer() error: %v", err)
	}
	if out.Answer.Kind != contractx.AnswerFallback || out.Answer.Message != FallbackDegraded {
		t.Fatalf("expected service-degraded fallback, got %+v", out.Answer)
	}
}
