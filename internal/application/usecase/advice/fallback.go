// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

const (
	// DefaultLocale is used when a requested locale has no catalog entry.
	DefaultLocale = "en"
	// AnyProvider keys the catalog entry used for providers without their own set.
	AnyProvider = "*"
)

// FallbackAdvice is a pre-authored advice item.
type FallbackAdvice struct {
	Title       string
	Content     string
	Category    string
	Priority    entity.AdvicePriority
	Confidence  float64
	ActionItems []string
	Tags        []string
}

// FallbackCatalog holds static advice per provider and locale.
type FallbackCatalog map[string]map[string][]FallbackAdvice

// Lookup returns the advice set for a provider and locale. It falls back to the base language
// ("pt" for "pt-BR"), then DefaultLocale, then the AnyProvider entry.
func (c FallbackCatalog) Lookup(providerID, locale string) []FallbackAdvice {
	for _, provider := range []string{providerID, AnyProvider} {
		byLocale, ok := c[provider]
		if !ok {
			continue
		}
		for _, l := range localeChain(locale) {
			if set, ok := byLocale[l]; ok {
				return set
			}
		}
	}
	return nil
}

// Items materializes the fallback set for a provider as advice items.
func (c FallbackCatalog) Items(providerID, locale string, profileID uuid.UUID, now time.Time) []*entity.AdviceItem {
	set := c.Lookup(providerID, locale)
	items := make([]*entity.AdviceItem, 0, len(set))
	for _, f := range set {
		items = append(items, &entity.AdviceItem{
			ID:          uuid.New(),
			ProfileID:   profileID,
			ProviderID:  providerID,
			Title:       f.Title,
			Content:     f.Content,
			Category:    f.Category,
			Priority:    f.Priority,
			Confidence:  f.Confidence,
			ActionItems: append([]string(nil), f.ActionItems...),
			Tags:        append([]string(nil), f.Tags...),
			IsFallback:  true,
			CreatedAt:   now,
		})
	}
	return items
}

func localeChain(locale string) []string {
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, _, found := strings.Cut(locale, "-"); found {
			chain = append(chain, base)
		}
	}
	return append(chain, DefaultLocale)
}

// DefaultFallbacks returns the built-in catalog.
func DefaultFallbacks() FallbackCatalog {
	return FallbackCatalog{
		"gemini": {
			"en": {
				{
					Title:       "Build an emergency fund",
					Content:     "Aim for three to six months of essential expenses in an easily accessible account before investing.",
					Category:    "savings",
					Priority:    entity.AdvicePriorityHigh,
					Confidence:  0.8,
					ActionItems: []string{"Calculate your monthly essential expenses", "Automate a fixed monthly transfer"},
					Tags:        []string{"savings", "emergency-fund"},
				},
				{
					Title:       "Review recurring subscriptions",
					Content:     "Small recurring charges add up. Cancel the ones you have not used in the last month.",
					Category:    "spending",
					Priority:    entity.AdvicePriorityMedium,
					Confidence:  0.7,
					ActionItems: []string{"List every recurring charge", "Cancel unused services"},
					Tags:        []string{"spending", "subscriptions"},
				},
			},
			"pt": {
				{
					Title:       "Monte uma reserva de emergencia",
					Content:     "Tenha de tres a seis meses de despesas essenciais em uma conta de facil acesso antes de investir.",
					Category:    "savings",
					Priority:    entity.AdvicePriorityHigh,
					Confidence:  0.8,
					ActionItems: []string{"Calcule suas despesas essenciais mensais", "Automatize uma transferencia mensal fixa"},
					Tags:        []string{"savings", "emergency-fund"},
				},
				{
					Title:       "Revise assinaturas recorrentes",
					Content:     "Pequenas cobrancas recorrentes se acumulam. Cancele as que voce nao usou no ultimo mes.",
					Category:    "spending",
					Priority:    entity.AdvicePriorityMedium,
					Confidence:  0.7,
					ActionItems: []string{"Liste todas as cobrancas recorrentes", "Cancele servicos nao utilizados"},
					Tags:        []string{"spending", "subscriptions"},
				},
			},
		},
		"openai": {
			"en": {
				{
					Title:       "Pay down high-interest debt first",
					Content:     "Direct any extra money to the loan with the highest interest rate while paying the minimum on the rest.",
					Category:    "debt",
					Priority:    entity.AdvicePriorityHigh,
					Confidence:  0.75,
					ActionItems: []string{"Sort your loans by interest rate", "Add extra payments to the top one"},
					Tags:        []string{"debt"},
				},
			},
			"pt": {
				{
					Title:       "Quite primeiro as dividas com juros altos",
					Content:     "Direcione o dinheiro extra para o emprestimo com maior taxa de juros e pague o minimo nos demais.",
					Category:    "debt",
					Priority:    entity.AdvicePriorityHigh,
					Confidence:  0.75,
					ActionItems: []string{"Ordene seus emprestimos pela taxa de juros", "Faca pagamentos extras no primeiro"},
					Tags:        []string{"debt"},
				},
			},
		},
		AnyProvider: {
			"en": {
				{
					Title:       "Track every expense this month",
					Content:     "Recording every expense for a month shows where your money really goes.",
					Category:    "budgeting",
					Priority:    entity.AdvicePriorityLow,
					Confidence:  0.6,
					ActionItems: []string{"Log expenses daily"},
					Tags:        []string{"budgeting"},
				},
			},
			"pt": {
				{
					Title:       "Registre todas as despesas deste mes",
					Content:     "Anotar cada despesa por um mes mostra para onde seu dinheiro realmente vai.",
					Category:    "budgeting",
					Priority:    entity.AdvicePriorityLow,
					Confidence:  0.6,
					ActionItems: []string{"Registre as despesas diariamente"},
					Tags:        []string{"budgeting"},
				},
			},
		},
	}
}
