package llm

import "strings"

// BuildSystemPrompt composes the system instruction from the four configured
// fragments plus the non-negotiable output contract: JSON only, "produtos" as
// the top-level key, null for missing fields, numbers without currency
// symbols, and the empty-list sentinel when nothing is found.
func BuildSystemPrompt(p PromptConfig) string {
	var b strings.Builder
	if t := strings.TrimSpace(p.Task); t != "" {
		b.WriteString(t)
		b.WriteString("\n\n")
	}
	if r := strings.TrimSpace(p.Rules); r != "" {
		b.WriteString("REGRAS DE PROCESSAMENTO:\n")
		b.WriteString(r)
		b.WriteString("\n\n")
	}
	if f := strings.TrimSpace(p.Format); f != "" {
		b.WriteString("FORMATO DO RELATÓRIO:\n")
		b.WriteString(f)
		b.WriteString("\n\n")
	}
	if f := strings.TrimSpace(p.Fallback); f != "" {
		b.WriteString("REGRAS DE CONTINGÊNCIA:\n")
		b.WriteString(f)
		b.WriteString("\n\n")
	}

	b.WriteString(strings.Join([]string{
		"Responda APENAS com um objeto JSON válido, sem texto adicional.",
		"O objeto deve ter a chave \"produtos\" com a lista de produtos encontrados.",
		"Cada produto tem os campos: codigo, referencia, descricao, quantidade, valor_unitario, valor_total.",
		"Use null para campos não disponíveis (não aspas vazias).",
		"quantidade, valor_unitario e valor_total devem ser números, sem símbolos de moeda.",
		"Se não encontrar produtos, retorne: {\"produtos\": []}.",
	}, " "))
	return b.String()
}

// BuildUserPrompt frames the extracted document text for the model.
func BuildUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Por favor, analise o seguinte texto e extraia os dados dos produtos no formato JSON solicitado:\n\n")
	b.WriteString("---INÍCIO DO TEXTO---\n")
	b.WriteString(text)
	b.WriteString("\n---FIM DO TEXTO---")
	return b.String()
}
