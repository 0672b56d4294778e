package usecases

import "strings"

// RefusalSentence is the fixed answer the model is instructed to give when
// the retrieved context does not contain the answer. Embedding it in the
// prompt is the only defense against out-of-corpus hallucination; the
// generator offers no structured way to enforce groundedness.
const RefusalSentence = "関連ドキュメントに回答がありませんでした。"

const (
	promptPersona = "社内FAQチャットボットです。関連ドキュメントを参考にして、質問に答えてください。"
	promptGround  = "もし関連ドキュメントに答えがない場合は、「" + RefusalSentence + "」と回答してください。"
)

// ComposePrompt assembles the full LLM prompt from the query, the retrieval
// context block, and the formatted conversation history. The template is
// fixed; contexts are joined with newlines in rank order, duplicates
// preserved. Pure function.
func ComposePrompt(query string, contexts []string, historyText string) string {
	var sb strings.Builder
	sb.WriteString(promptPersona)
	sb.WriteString("\n")
	sb.WriteString(promptGround)
	sb.WriteString("\n\n関連ドキュメント:\n")
	sb.WriteString(strings.Join(contexts, "\n"))
	if historyText != "" {
		sb.WriteString("\n\n")
		sb.WriteString(historyText)
	}
	sb.WriteString("\n\n質問:\n")
	sb.WriteString(query)
	sb.WriteString("\n\n回答:")
	return sb.String()
}
