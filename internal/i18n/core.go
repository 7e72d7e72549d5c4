package i18n

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/reobserve/reobserve/internal/common/cnst"
)

var (
	translatorOnce sync.Once
	translator     *I18n
	defaultLang    = cnst.LangDefault
)

// SetDefaultLanguage sets the default language for error messages
func SetDefaultLanguage(lang string) {
	defaultLang = lang
}

// InitTranslator initializes the global translator
func InitTranslator(translationsPath string) error {
	var initErr error
	translatorOnce.Do(func() {
		translator = NewI18n(language.BrazilianPortuguese)
		initErr = translator.LoadTranslations(translationsPath)
	})
	return initErr
}

// GetTranslator returns the global translator
func GetTranslator() *I18n {
	if translator == nil {
		_ = InitTranslator("configs/i18n")
	}
	return translator
}

// I18n manages internationalization and translations
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewI18n creates a new I18n instance with the specified default language
func NewI18n(defaultLang language.Tag) *I18n {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return &I18n{
		bundle:      bundle,
		defaultLang: defaultLang,
	}
}

// LoadTranslations loads translation files from the specified directory
func (i *I18n) LoadTranslations(translationsDir string) error {
	files, err := os.ReadDir(translationsDir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		i.bundle.MustLoadMessageFile(filepath.Join(translationsDir, file.Name()))
	}

	return nil
}

// Translate returns a localized string for the given message ID and language
func (i *I18n) Translate(msgID string, lang string, templateData map[string]interface{}) string {
	tag := language.Make(lang)
	localizer := i18n.NewLocalizer(i.bundle, tag.String(), i.defaultLang.String())

	lc := &i18n.LocalizeConfig{
		MessageID: msgID,
	}
	if len(templateData) > 0 {
		lc.TemplateData = templateData
	}

	msg, err := localizer.Localize(lc)
	if err != nil {
		return msgID // fall back to the message ID when no translation exists
	}

	return msg
}

// LanguageMiddleware stores the request's language preference in the gin
// context for later translation of responses.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.XLang, getLanguageFromRequest(c.Request))
		c.Next()
	}
}

// TranslateMessage translates a message ID using the context's language preference
func TranslateMessage(c *gin.Context, msgID string, data map[string]interface{}) string {
	lang := langFromContext(c)
	if t := GetTranslator(); t != nil {
		return t.Translate(msgID, lang, data)
	}
	return msgID
}

func langFromContext(c *gin.Context) string {
	lang, exists := c.Get(cnst.XLang)
	if !exists || lang == "" {
		return defaultLang
	}
	langStr, ok := lang.(string)
	if !ok {
		return defaultLang
	}
	return langStr
}

// getLanguageFromRequest extracts language preference from HTTP headers
func getLanguageFromRequest(r *http.Request) string {
	if lang := r.Header.Get(cnst.XLang); lang != "" {
		return normalizeLang(lang)
	}

	if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
		langs := strings.Split(acceptLang, ",")
		if len(langs) > 0 {
			firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
			return normalizeLang(firstLang)
		}
	}

	return defaultLang
}

// normalizeLang standardizes language codes to the supported set
func normalizeLang(lang string) string {
	if strings.EqualFold(lang, cnst.LangPTBR) || strings.HasPrefix(strings.ToLower(lang), "pt") {
		return cnst.LangPTBR
	}
	if strings.HasPrefix(strings.ToLower(lang), "en") {
		return cnst.LangEN
	}
	return defaultLang
}
