package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"langsync/internal/events"
)

// NewKeyRequest asks for one new string in several languages.
type NewKeyRequest struct {
	Section   string
	Key       string
	Value     string
	Languages []Language
}

// TranslateNewKey sends a single request for all languages and returns
// code → translation. Codes the reply leaves out are absent from the map; a
// short reply is logged, not an error. Transport and parse failures abort the
// whole request.
func (r *Reconciler) TranslateNewKey(ctx context.Context, req NewKeyRequest) (map[string]string, error) {
	sc := events.For(r.sink, "").InSection(req.Section)
	if len(req.Languages) == 0 {
		return map[string]string{}, nil
	}

	prompt := r.prompts.BuildNewKeyPrompt(req.Section, req.Key, req.Value, req.Languages)
	sc.Info(req.Key, fmt.Sprintf("Requesting translations into %d languages", len(req.Languages)))

	reply, err := r.client.Translate(ctx, r.prompts.GetSystemPrompt(), prompt)
	if err != nil {
		return nil, fmt.Errorf("translate new key %s: %w", req.Key, err)
	}

	raw, err := ParseLanguageMap(reply)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(req.Languages))
	for _, l := range req.Languages {
		wanted[l.Code] = true
	}

	out := make(map[string]string, len(req.Languages))
	for code, v := range raw {
		if !wanted[code] {
			sc.Warn(req.Key, "Ignoring unrequested language "+code)
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out[code] = v
	}
	if len(out) < len(req.Languages) {
		sc.Warn(req.Key, fmt.Sprintf("Reply covered %d of %d languages", len(out), len(req.Languages)))
	}
	return out, nil
}

// ParseLanguageMap decodes the span between the first '{' and the last '}' of
// reply as a string-valued JSON object.
func ParseLanguageMap(reply string) (map[string]string, error) {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrMalformedReply)
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(reply[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return out, nil
}
