package nodes

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
	faqx "github.com/panuwat-dev/storefront-agent/agent/faq"
	toolx "github.com/panuwat-dev/storefront-agent/agent/tool"
)

// Fixed fallback responses. The assistant returns these instead of surfacing
// errors to the caller.
const (
	FallbackDefault = "I'm sorry, I couldn't work out how to answer that. Could you rephrase your question?"

	FallbackDegraded = "Our product search is temporarily unavailable. " +
		"I can still answer general questions about shipping, returns, and policies."

	FallbackNoFaq = "No relevant FAQ found for this query. " +
		"Please try rephrasing your question or contact support."

	FallbackHandler = "Something went wrong while answering your question. Please try again."
)

// FormatAnswer turns the pipeline state into the final AnswerResult. When the
// model collaborator was unreachable it falls back to the deterministic FAQ
// matcher, so FAQ-pattern queries still get real answers in degraded mode and
// product-pattern queries get a clear service-degraded message.
func FormatAnswer(st *GraphState, faq *faqx.Index) (GraphOutput, error) {
	if st == nil {
		return GraphOutput{}, fmt.Errorf("format answer: graph state is nil")
	}

	switch {
	case st.Routing != nil && st.Routing.Degraded():
		return degradedAnswer(st, faq), nil
	case st.Routing != nil:
		log.Warn().
			Str("query_id", st.QueryID).
			Str("reason", string(st.Routing.Reason)).
			Err(st.Routing.Err).
			Msg("query was not routable")
		return fallback(FallbackDefault), nil
	case st.FaqMiss:
		return fallback(FallbackNoFaq), nil
	case st.HandlerErr != nil:
		// Generic message outward; original detail only in the log.
		log.Error().
			Str("query_id", st.QueryID).
			Str("tool", st.Decision.Tool).
			Err(st.HandlerErr).
			Msg("tool handler failed")
		return fallback(FallbackHandler), nil
	}

	switch st.Decision.Tool {
	case toolx.ToolFaqLookup:
		return GraphOutput{Answer: contractx.AnswerResult{
			Kind:    contractx.AnswerFaq,
			Message: faqMessage(st.Output),
		}}, nil
	default:
		return GraphOutput{Answer: contractx.AnswerResult{
			Kind:     contractx.AnswerProducts,
			Message:  productMessage(st.Output),
			Products: st.Output.Products,
		}}, nil
	}
}

func degradedAnswer(st *GraphState, faq *faqx.Index) GraphOutput {
	log.Warn().
		Str("query_id", st.QueryID).
		Str("reason", string(st.Routing.Reason)).
		Msg("model collaborator unavailable, using keyword matching")

	if faq != nil {
		if m, err := faq.Match(st.Query); err == nil {
			return GraphOutput{Answer: contractx.AnswerResult{
				Kind:    contractx.AnswerFaq,
				Message: faqMessage(contractx.ToolOutput{Question: m.Entry.Question, Answer: m.Entry.Answer}),
			}}
		}
	}
	return fallback(FallbackDegraded)
}

func fallback(message string) GraphOutput {
	return GraphOutput{Answer: contractx.AnswerResult{
		Kind:    contractx.AnswerFallback,
		Message: message,
	}}
}

func faqMessage(out contractx.ToolOutput) string {
	return fmt.Sprintf("I found a similar question in our FAQ:\n\nQ: %s\n\nA: %s", out.Question, out.Answer)
}

func productMessage(out contractx.ToolOutput) string {
	if len(out.Products) == 0 {
		return "No products found matching your criteria."
	}

	header := fmt.Sprintf("Found %d products", len(out.Products))
	if out.Summary != "" {
		header += " for " + out.Summary
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(":\n")
	for _, p := range out.Products {
		fmt.Fprintf(&b, "\n- %s (ID: %d)\n  Category: %s\n  Price: $%.2f\n  Rating: %.1f/5.0\n  Stock: %d\n  Sales: %d\n",
			p.Name, p.ID, p.Category, p.Price, p.Rating, p.Stock, p.Sales)
	}
	return b.String()
}
