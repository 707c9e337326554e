package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

//go:embed translation/*.toml
var embeddedTranslations embed.FS

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

// InitTranslator loads the embedded translations, or the files in cfg.TranslationFolder when
// it is set and readable.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if cfg.TranslationFolder != "" {
		err := loadMessageFiles(os.DirFS(cfg.TranslationFolder), ".", cfg.SupportedLanguages)
		if err == nil {
			return
		}
		zap.L().Warn("failed to read translation folder, using embedded translations",
			zap.String("folder", cfg.TranslationFolder), zap.Error(err))
	}

	if err := loadMessageFiles(embeddedTranslations, "translation", cfg.SupportedLanguages); err != nil {
		zap.L().Error("failed to load embedded translations", zap.Error(err))
	}
}

func loadMessageFiles(fsys fs.FS, dir string, languages []string) error {
	lstFiles, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	for _, f := range lstFiles {
		if f.IsDir() || !isSupported(f.Name(), languages) {
			continue
		}

		_, err := Translator.LoadMessageFileFS(fsys, path.Join(dir, f.Name()))
		if err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
	return nil
}

// Localize renders messageID in lang, falling back to English and then to the id itself.
func Localize(lang, messageID string, data map[string]any) (string, error) {
	if Translator == nil {
		return messageID, nil
	}

	localizer := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID, err
	}
	return msg, nil
}

// isSupported keeps "en.toml" when "en" is listed. An empty list accepts every file.
func isSupported(fileName string, languages []string) bool {
	if len(languages) == 0 {
		return true
	}
	tag := strings.SplitN(fileName, ".", 2)[0]
	for _, lang := range languages {
		if strings.EqualFold(tag, lang) {
			return true
		}
	}
	return false
}
