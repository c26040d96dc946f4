package tool

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

const ToolFaqLookup = "faq_lookup"

func FaqSpec() Spec {
	return Spec{
		Name: ToolFaqLookup,
		Desc: "Answer general customer-service questions about shipping, returns, " +
			"warranties, policies, and account management from the FAQ database.",
		Params: map[string]Param{
			"question": {
				Type:     schema.String,
				Desc:     "The customer's question to match against the FAQ database.",
				Required: true,
			},
		},
		Handler: runFaqLookup,
	}
}

func runFaqLookup(ctx context.Context, params map[string]any, src Sources) (contractx.ToolOutput, error) {
	if src.Faq == nil {
		return contractx.ToolOutput{}, errors.New("faq lookup: faq source is not configured")
	}

	question, _ := params["question"].(string)
	m, err := src.Faq.Match(question)
	if err != nil {
		return contractx.ToolOutput{}, err
	}

	return contractx.ToolOutput{
		Question: m.Entry.Question,
		Answer:   m.Entry.Answer,
	}, nil
}

// DefaultRegistry registers the fixed tool set the router selects from.
func DefaultRegistry() (*Registry, error) {
	reg := NewRegistry()
	if err := reg.Register(InventorySpec()); err != nil {
		return nil, err
	}
	if err := reg.Register(FaqSpec()); err != nil {
		return nil, err
	}
	return reg, nil
}
