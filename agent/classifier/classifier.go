// Package classifier implements the language-model collaborator: it binds the
// registry's tool schemas to an OpenAI-compatible chat model and turns one
// query into one proposed tool call. The proposal is untrusted; the router
// validates it.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/panuwat-dev/storefront-agent/agent/contract"
)

type LLM struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.Classifier = (*LLM)(nil)

// New compiles the classification graph once against the given tool schemas.
// The tool set is fixed for the lifetime of the classifier, matching the
// registry it was built from.
func New(ctx context.Context, chatModel einomodel.ToolCallingChatModel, infos []*schema.ToolInfo) (*LLM, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if len(infos) == 0 {
		return nil, errors.New("at least one tool schema is required")
	}

	toolModel, err := chatModel.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tool schemas: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileClassifierGraph(ctx, toolModel)
	if err != nil {
		return nil, err
	}
	return &LLM{runner: runner}, nil
}

func (c *LLM) Classify(ctx context.Context, req contractx.ClassifyRequest) (contractx.ToolRequest, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return contractx.ToolRequest{}, fmt.Errorf("%w: marshal classify payload: %v", contractx.ErrModelInvoke, err)
	}

	msg, err := c.runner.Invoke(ctx, map[string]any{
		"input": string(payload),
	})
	if err != nil {
		return contractx.ToolRequest{}, fmt.Errorf("%w: classify invoke: %w", contractx.ErrModelInvoke, err)
	}
	return toolRequest(msg)
}

// toolRequest extracts the single proposed tool call. Plain-text answers and
// multi-tool proposals are ErrNoToolSelected: multi-intent queries must route
// to one tool or fail.
func toolRequest(msg *schema.Message) (contractx.ToolRequest, error) {
	if msg == nil {
		return contractx.ToolRequest{}, fmt.Errorf("%w: empty model response", contractx.ErrNoToolSelected)
	}
	if len(msg.ToolCalls) == 0 {
		return contractx.ToolRequest{}, fmt.Errorf("%w: model answered with plain text", contractx.ErrNoToolSelected)
	}

	distinct := make(map[string]struct{})
	for _, call := range msg.ToolCalls {
		distinct[strings.TrimSpace(call.Function.Name)] = struct{}{}
	}
	if len(distinct) > 1 {
		return contractx.ToolRequest{}, fmt.Errorf("%w: model proposed %d different tools", contractx.ErrNoToolSelected, len(distinct))
	}

	call := msg.ToolCalls[0]
	name := strings.TrimSpace(call.Function.Name)
	if name == "" {
		return contractx.ToolRequest{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrNoToolSelected)
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return contractx.ToolRequest{}, fmt.Errorf("%w: invalid tool args for %s: %v", contractx.ErrNoToolSelected, name, err)
		}
	}

	return contractx.ToolRequest{Tool: name, Args: args}, nil
}
