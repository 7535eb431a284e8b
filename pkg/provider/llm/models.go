package llm

import (
	"log/slog"
	"slices"
)

// DefaultModel is substituted whenever a requested model is not on the
// whitelist. An unrecognised model therefore never fails a turn.
const DefaultModel = "gpt-4o-mini"

// SupportedModels is the whitelist of models the pipeline may request.
// Keep [DefaultModel] in this list.
var SupportedModels = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"gpt-4.1",
	"gpt-4.1-mini",
	"o3-mini",
	"claude-3-5-sonnet-latest",
	"claude-3-5-haiku-latest",
}

// ResolveModel maps a requested model name to one the backend may be asked
// for. Members of [SupportedModels] pass through unchanged; anything else
// (including the empty string) resolves to [DefaultModel] with a warning.
func ResolveModel(model string) string {
	if slices.Contains(SupportedModels, model) {
		return model
	}
	if model != "" {
		slog.Warn("unrecognised model, substituting default",
			"requested", model,
			"default", DefaultModel,
		)
	}
	return DefaultModel
}
