package i18n

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// SupportedLanguages lists the locales loaded at startup.
var SupportedLanguages []string

// InitI18n loads the TOML message files and returns the bundle.
func InitI18n(filePaths []string, defaultLang string) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.MustParse(defaultLang))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	SupportedLanguages = make([]string, 0)

	for _, filePath := range filePaths {
		file, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}

		lang := extractLanguageFromPath(filePath)
		SupportedLanguages = append(SupportedLanguages, lang)

		_, err = bundle.ParseMessageFileBytes(file, filePath)
		if err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

// extractLanguageFromPath assumes message files are named <lang>.toml.
func extractLanguageFromPath(filePath string) string {
	baseName := filepath.Base(filePath)
	return strings.TrimSuffix(baseName, filepath.Ext(baseName))
}

// T localizes a message key using the request-scoped localizer installed
// by the i18n middleware.
func T(ctx context.Context, key string, data map[string]interface{}) string {
	localizer := ctx.Value("i18n.Localizer").(*i18n.Localizer)
	config := &i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	}
	return localizer.MustLocalize(config)
}
