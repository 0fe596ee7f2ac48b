package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/i18n"
)

const (
	LanguageContextKey    = dto.LanguageContextKey
	I18nServiceContextKey = dto.I18nServiceContextKey
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=fr (override explícito)
// 2. Accept-Language header (preferência do browser)
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		// 1. Verificar query parameter
		if queryLang := c.Query("lang"); queryLang != "" {
			if m.i18nService.IsLanguageSupported(queryLang) {
				lang = queryLang
			}
		}

		// 2. Se não encontrou, verificar Accept-Language header
		if lang == "" {
			acceptLang := c.GetHeader("Accept-Language")
			lang = m.parseAcceptLanguage(acceptLang)
		}

		// 3. Se ainda não encontrou, usar idioma padrão
		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

// parseAcceptLanguage devolve o idioma suportado de maior peso no header Accept-Language.
// Exemplo: "ln,fr-CD;q=0.9,en;q=0.8" -> "fr"; entradas com q=0 são descartadas.
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil {
		return ""
	}

	for _, tag := range tags {
		if lang := m.matchSupported(tag); lang != "" {
			return lang
		}
	}
	return ""
}

// matchSupported tenta a tag exata, depois a base (fr-CD -> fr) e por fim
// uma variante regional suportada da mesma base (pt -> pt-BR).
func (m *I18nMiddleware) matchSupported(tag language.Tag) string {
	if lang := tag.String(); m.i18nService.IsLanguageSupported(lang) {
		return lang
	}

	base, confidence := tag.Base()
	if confidence != language.Exact {
		return ""
	}
	if m.i18nService.IsLanguageSupported(base.String()) {
		return base.String()
	}

	prefix := base.String() + "-"
	for _, supported := range m.i18nService.GetSupportedLanguages() {
		if strings.HasPrefix(supported, prefix) {
			return supported
		}
	}
	return ""
}
