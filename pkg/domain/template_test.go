package domain_test

import (
	"testing"

	"github.com/aryarajalves/zapflow/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestTemplateFallback(t *testing.T) {
	tpl := domain.Template{
		Name:     "welcome",
		Language: "pt_BR",
		Components: []domain.TemplateComponent{
			{Type: "HEADER", Text: "Bem-vindo!"},
			{Type: "BODY", Text: "Seu pedido foi confirmado."},
			{Type: "FOOTER", Text: "Equipe de vendas"},
			{Type: "BUTTONS", Buttons: []string{"Ver pedido", "Falar com suporte"}},
		},
	}

	got := tpl.Fallback()
	assert.Equal(t, "Bem-vindo!\n\nSeu pedido foi confirmado.\n\nEquipe de vendas", got.Text)
	assert.Equal(t, []string{"Ver pedido", "Falar com suporte"}, got.Buttons)
}

func TestTemplateFallback_SkipsEmptyComponents(t *testing.T) {
	tpl := domain.Template{
		Components: []domain.TemplateComponent{
			{Type: "HEADER"},
			{Type: "body", Text: "só o corpo"},
		},
	}

	got := tpl.Fallback()
	assert.Equal(t, "só o corpo", got.Text, "empty blocks are dropped, type match is case-insensitive")
	assert.Empty(t, got.Buttons)
}
