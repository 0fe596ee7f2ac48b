package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Service gerencia traduções e internacionalização
type Service struct {
	mu              sync.RWMutex
	translations    map[string]map[string]string // [language][key]message
	templates       map[string]*template.Template
	defaultLanguage string
}

// New carrega os arquivos embutidos no binário (en, fr, pt-BR).
// overrideDir, quando informado, sobrescreve chaves ou adiciona idiomas.
func New(defaultLang, overrideDir string) (*Service, error) {
	s := newEmpty(defaultLang)

	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded locales: %w", err)
	}
	if _, err := s.loadFS(sub); err != nil {
		return nil, err
	}

	if overrideDir != "" {
		if _, err := s.loadFS(os.DirFS(overrideDir)); err != nil {
			return nil, err
		}
	}

	return s, s.checkDefault()
}

// NewService cria um serviço de i18n somente a partir de um diretório
// localesDir: diretório contendo os arquivos JSON de tradução
// defaultLang: idioma padrão (fallback)
func NewService(localesDir, defaultLang string) (*Service, error) {
	s := newEmpty(defaultLang)

	n, err := s.loadFS(os.DirFS(localesDir))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("no locale files found in %s", localesDir)
	}

	return s, s.checkDefault()
}

func newEmpty(defaultLang string) *Service {
	return &Service{
		translations:    make(map[string]map[string]string),
		templates:       make(map[string]*template.Template),
		defaultLanguage: defaultLang,
	}
}

// loadFS mescla todos os *.json da raiz de fsys; retorna quantos arquivos leu
func (s *Service) loadFS(fsys fs.FS) (int, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return 0, fmt.Errorf("failed to find locale files: %w", err)
	}

	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".json")

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return 0, fmt.Errorf("failed to read locale file %s: %w", file, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return 0, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}

		if s.translations[lang] == nil {
			s.translations[lang] = make(map[string]string, len(translations))
		}
		for k, v := range translations {
			s.translations[lang][k] = v
			delete(s.templates, lang+"\x00"+k)
		}
	}

	return len(files), nil
}

func (s *Service) checkDefault() error {
	if _, ok := s.translations[s.defaultLanguage]; !ok {
		return fmt.Errorf("default language %s not found in locale files", s.defaultLanguage)
	}
	return nil
}

// T traduz uma chave para o idioma especificado
// Suporta interpolação de parâmetros usando templates Go ({{.Name}}, {{.Field}}, etc.)
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	s.mu.RLock()
	resolved := lang
	message := s.getTranslation(lang, key)
	if message == "" {
		resolved = s.defaultLanguage
		message = s.getTranslation(s.defaultLanguage, key)
	}
	s.mu.RUnlock()

	if message == "" {
		return key
	}

	if len(params) == 0 || !strings.Contains(message, "{{") {
		return message
	}

	tmpl, err := s.template(resolved, key, message)
	if err != nil {
		return message
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params[0]); err != nil {
		return message
	}

	return buf.String()
}

// template compila a mensagem uma única vez por idioma e chave
func (s *Service) template(lang, key, message string) (*template.Template, error) {
	cacheKey := lang + "\x00" + key

	s.mu.RLock()
	tmpl, ok := s.templates[cacheKey]
	s.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := template.New(key).Parse(message)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.templates[cacheKey] = tmpl
	s.mu.Unlock()
	return tmpl, nil
}

// getTranslation busca uma tradução sem lock (uso interno)
func (s *Service) getTranslation(lang, key string) string {
	if langMap, ok := s.translations[lang]; ok {
		if msg, ok := langMap[key]; ok {
			return msg
		}
	}
	return ""
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna lista ordenada de idiomas suportados
func (s *Service) GetSupportedLanguages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]string, 0, len(s.translations))
	for lang := range s.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsLanguageSupported verifica se um idioma é suportado
func (s *Service) IsLanguageSupported(lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.translations[lang]
	return ok
}
