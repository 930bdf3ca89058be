package llm

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt_SectionsAndContract(t *testing.T) {
	t.Parallel()

	p := PromptConfig{
		Task:     "Extrair produtos de pedidos.",
		Rules:    "Ignorar cabeçalhos.",
		Format:   "Campos: codigo, descricao.",
		Fallback: "Use null quando faltar.",
	}
	sys := BuildSystemPrompt(p)

	for _, want := range []string{
		"Extrair produtos de pedidos.",
		"REGRAS DE PROCESSAMENTO:",
		"FORMATO DO RELATÓRIO:",
		"REGRAS DE CONTINGÊNCIA:",
		`{"produtos": []}`,
		"APENAS com um objeto JSON",
	} {
		if !strings.Contains(sys, want) {
			t.Fatalf("system prompt missing %q:\n%s", want, sys)
		}
	}
}

func TestBuildSystemPrompt_EmptyFragmentsOmitHeaders(t *testing.T) {
	t.Parallel()

	sys := BuildSystemPrompt(PromptConfig{Task: "Tarefa."})
	if strings.Contains(sys, "REGRAS DE PROCESSAMENTO:") {
		t.Fatalf("empty rules fragment should omit its header:\n%s", sys)
	}
}

func TestBuildUserPrompt_FramesText(t *testing.T) {
	t.Parallel()

	user := BuildUserPrompt("PEDIDO DE VENDA #12345")
	if !strings.Contains(user, "---INÍCIO DO TEXTO---") || !strings.Contains(user, "---FIM DO TEXTO---") {
		t.Fatalf("missing framing markers:\n%s", user)
	}
	if !strings.Contains(user, "PEDIDO DE VENDA #12345") {
		t.Fatalf("document text missing:\n%s", user)
	}
}
