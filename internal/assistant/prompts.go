package assistant

import (
	"fmt"
	"strings"

	"github.com/bz-technologies/helpdesk/internal/domain"
)

// CompanyName is the organisation the assistant speaks for.
const CompanyName = "BZ Technologies"

// ChatInstruction is the system instruction for chat sessions.
var ChatInstruction = fmt.Sprintf(
	"Você é o assistente virtual de suporte de TI da %s. "+
		"Responda em português do Brasil, de forma curta e em passos numerados quando houver procedimento. "+
		"Use **negrito** apenas para destacar termos importantes. "+
		"Se o problema exigir intervenção presencial, acesso administrativo ou não for resolvido em poucas tentativas, "+
		"oriente o usuário a abrir um chamado em \"Novo Chamado\".", CompanyName)

// AnalysisInstruction is the system instruction for ticket triage.
var AnalysisInstruction = buildAnalysisInstruction()

func buildAnalysisInstruction() string {
	var cats, prios []string
	for _, c := range domain.Categories {
		cats = append(cats, fmt.Sprintf("%s (%s)", c, c.Label()))
	}
	for _, p := range domain.Priorities {
		prios = append(prios, fmt.Sprintf("%s (%s)", p, p.Label()))
	}
	return "Você faz a triagem de chamados de suporte de TI. " +
		"Classifique a descrição recebida e responda somente com um objeto JSON com os campos " +
		"\"category\", \"priority\", \"summary\" e, opcionalmente, \"suggestedSolution\". " +
		"category deve ser um de: " + strings.Join(cats, ", ") + ". " +
		"priority deve ser um de: " + strings.Join(prios, ", ") + ". " +
		"summary é um resumo técnico de uma frase. " +
		"suggestedSolution é uma ação simples que o usuário pode tentar antes do atendimento."
}

// CategoryCodes and PriorityCodes list the enum codes accepted in replies.
func CategoryCodes() []string {
	out := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, string(c))
	}
	return out
}

func PriorityCodes() []string {
	out := make([]string, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		out = append(out, string(p))
	}
	return out
}
