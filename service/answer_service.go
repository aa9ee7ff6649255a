package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/proposalops/docchat-be/types"
)

const answerSystemPrompt = `You are an assistant for a private repository of RFPs, case studies, proposals and win/loss analyses.
Ground every answer in the source documents provided with the question and cite documents by their title.
Do not invent documents, clients or figures that are not in the sources.`

const truncationMarker = "\n[content truncated]"

// AnswerService builds the grounding prompt from retrieved documents and
// delegates generation to the completion model. Completion failure is
// fatal for the request.
type AnswerService struct {
	completion    CompletionService
	contentBudget int
	timeout       time.Duration
}

func NewAnswerService(completion CompletionService, contentBudget int, timeout time.Duration) *AnswerService {
	return &AnswerService{
		completion:    completion,
		contentBudget: contentBudget,
		timeout:       timeout,
	}
}

// Synthesize generates the grounded answer for a query.
func (s *AnswerService) Synthesize(ctx context.Context, query string, result *types.RetrievalResult, analysis *types.QueryAnalysis) (string, error) {
	systemPrompt, userPrompt := s.BuildPrompt(query, result, analysis)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.completion.Complete(callCtx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("answer generation failed: %w", err)
	}
	return response, nil
}

// BuildPrompt assembles the system and user prompts. Document content is
// capped at the configured character budget with an explicit truncation
// marker; the answer structure adapts to the classified intent.
func (s *AnswerService) BuildPrompt(query string, result *types.RetrievalResult, analysis *types.QueryAnalysis) (string, string) {
	var system strings.Builder
	system.WriteString(answerSystemPrompt)

	if analysis != nil {
		if instruction := intentInstruction(analysis.Intent); instruction != "" {
			system.WriteString("\n")
			system.WriteString(instruction)
		}
	}

	var user strings.Builder
	user.WriteString("Question: ")
	user.WriteString(query)
	user.WriteString("\n\n")

	if result == nil || len(result.Documents) == 0 {
		user.WriteString("No matching documents were found in the repository. ")
		user.WriteString("Answer from general knowledge, say clearly that no repository documents matched, ")
		user.WriteString("and suggest how the user could make the question more specific.")
		return system.String(), user.String()
	}

	user.WriteString("Source documents:\n")
	for i, scored := range result.Documents {
		doc := scored.Document
		user.WriteString(fmt.Sprintf("\n--- Document %d: %s", i+1, doc.Title))
		var meta []string
		if doc.DocType != "" {
			meta = append(meta, doc.DocType)
		}
		if doc.ClientName != "" {
			meta = append(meta, "client: "+doc.ClientName)
		}
		if doc.Industry != "" {
			meta = append(meta, "industry: "+doc.Industry)
		}
		if doc.Year != 0 {
			meta = append(meta, fmt.Sprintf("year: %d", doc.Year))
		}
		if len(meta) > 0 {
			user.WriteString(" (" + strings.Join(meta, ", ") + ")")
		}
		user.WriteString("\n")
		if doc.Summary != "" {
			user.WriteString("Summary: " + doc.Summary + "\n")
		}

		content := doc.SearchableText()
		if len(content) > s.contentBudget {
			content = content[:s.contentBudget] + truncationMarker
		}
		user.WriteString(content)
		user.WriteString("\n")
	}

	return system.String(), user.String()
}

func intentInstruction(intent string) string {
	switch intent {
	case types.IntentComparison:
		return "The user is asking for a comparison: structure the answer as a point-by-point comparison of the items involved."
	case types.IntentSummarization:
		return "The user is asking for a summary: answer with concise bullet points covering the key facts."
	case types.IntentSpecificSearch:
		return "The user is looking for specific documents: name the matching documents explicitly and describe what each contains."
	case types.IntentInformationRetrieval:
		return "Answer with the concrete facts found in the sources, citing the document each fact comes from."
	default:
		return ""
	}
}
