package rest

import "github.com/roeshane/life-coach-reflections/internal/domain"

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *content `json:"content"`
}

func newGenerateRequest(prompt string, policy domain.GenerationPolicy) generateRequest {
	return generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     policy.Temperature,
			TopK:            policy.TopK,
			TopP:            policy.TopP,
			MaxOutputTokens: policy.MaxOutputTokens,
		},
	}
}

func (r generateResponse) firstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", &domain.EmptyResponseError{Reason: "candidates missing"}
	}
	first := r.Candidates[0]
	if first.Content == nil || len(first.Content.Parts) == 0 {
		return "", &domain.EmptyResponseError{Reason: "first candidate has no parts"}
	}
	return first.Content.Parts[0].Text, nil
}
